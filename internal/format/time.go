package format

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSeconds "90", "01:30", "00:01:30.5" gibi zaman ifadelerini saniyeye çevirir.
// Ondalık ayırıcı olarak virgül de kabul edilir.
func ParseSeconds(value string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	if normalized == "" {
		return 0, fmt.Errorf("boş değer")
	}

	if !strings.Contains(normalized, ":") {
		v, err := strconv.ParseFloat(normalized, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("geçersiz sayı: %s", value)
		}
		return v, nil
	}

	parts := strings.Split(normalized, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("zaman formatı hatalı: %s", value)
	}

	parsed := make([]float64, len(parts))
	for i, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			return 0, fmt.Errorf("zaman formatı hatalı: %s", value)
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("zaman formatı hatalı: %s", value)
		}
		parsed[i] = v
	}

	if len(parsed) == 2 {
		if parsed[1] >= 60 {
			return 0, fmt.Errorf("saniye 60'tan küçük olmalı")
		}
		return parsed[0]*60 + parsed[1], nil
	}

	if parsed[1] >= 60 || parsed[2] >= 60 {
		return 0, fmt.Errorf("dakika/saniye 60'tan küçük olmalı")
	}
	return parsed[0]*3600 + parsed[1]*60 + parsed[2], nil
}

// HumanSeconds saniyeyi HH:MM:SS yazar, milisaniye varsa .mmm ekler.
func HumanSeconds(value float64) string {
	if value < 0 {
		value = 0
	}
	millis := int64(value*1000 + 0.5)
	hours := millis / 3600000
	minutes := (millis % 3600000) / 60000
	seconds := (millis % 60000) / 1000
	ms := millis % 1000

	if ms == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, ms)
}
