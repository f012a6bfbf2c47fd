// Package interval orijinal video zaman çizelgesindeki [start, end) aralıklarını modeller.
package interval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mlihgenel/videopartitioner/internal/format"
)

// TimeInterval saniye cinsinden yarı açık bir zaman aralığıdır.
type TimeInterval struct {
	StartSecs float64 `json:"start_secs" yaml:"start_secs"`
	EndSecs   float64 `json:"end_secs" yaml:"end_secs"`
}

// New uç noktaları sıralayarak yeni bir aralık oluşturur.
func New(a, b float64) TimeInterval {
	return TimeInterval{StartSecs: a, EndSecs: b}.Normalize()
}

// Normalize start <= end olacak şekilde uç noktaları yer değiştirir.
func (iv TimeInterval) Normalize() TimeInterval {
	if iv.StartSecs > iv.EndSecs {
		iv.StartSecs, iv.EndSecs = iv.EndSecs, iv.StartSecs
	}
	return iv
}

// Len aralığın süresidir; ters aralıklar için negatif olabilir.
func (iv TimeInterval) Len() float64 {
	return iv.EndSecs - iv.StartSecs
}

// Valid 0 <= start < end <= duration koşulunu kontrol eder.
func (iv TimeInterval) Valid(duration float64) bool {
	return iv.StartSecs >= 0 && iv.StartSecs < iv.EndSecs && iv.EndSecs <= duration
}

// Overlaps iki aralığın pozitif uzunlukta kesişip kesişmediğini döner.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return iv.StartSecs < other.EndSecs && other.StartSecs < iv.EndSecs
}

// Contains t anının aralık içinde olup olmadığını döner.
func (iv TimeInterval) Contains(t float64) bool {
	return t >= iv.StartSecs && t < iv.EndSecs
}

// Clamp aralığı [0, duration] içine sıkıştırır.
func (iv TimeInterval) Clamp(duration float64) TimeInterval {
	iv = iv.Normalize()
	iv.StartSecs = clamp(iv.StartSecs, 0, duration)
	iv.EndSecs = clamp(iv.EndSecs, 0, duration)
	return iv
}

func (iv TimeInterval) String() string {
	return fmt.Sprintf("%s-%s", format.HumanSeconds(iv.StartSecs), format.HumanSeconds(iv.EndSecs))
}

// SortByStart başlangıca göre sıralanmış bir kopya döner; girdi değişmez.
func SortByStart(set []TimeInterval) []TimeInterval {
	sorted := make([]TimeInterval, len(set))
	copy(sorted, set)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartSecs < sorted[j].StartSecs
	})
	return sorted
}

// ExcludedDuration aralık sürelerinin toplamıdır. Çakışan aralıklar birleştirilmez,
// her biri ayrı sayılır.
func ExcludedDuration(set []TimeInterval) float64 {
	total := 0.0
	for _, iv := range set {
		total += iv.EndSecs - iv.StartSecs
	}
	return total
}

// ClampAll her aralığı [0, duration] içine sıkıştırır, boş kalanları atar.
// Girdi değiştirilmez; sıra korunur.
func ClampAll(set []TimeInterval, duration float64) []TimeInterval {
	var clamped []TimeInterval
	for _, iv := range set {
		iv = iv.Clamp(duration)
		if iv.Valid(duration) {
			clamped = append(clamped, iv)
		}
	}
	return clamped
}

// Included [0, duration] içinde hariç tutulmayan aralıkları (tümleyen) döner.
func Included(exclusions []TimeInterval, duration float64) []TimeInterval {
	var included []TimeInterval
	pos := 0.0

	for _, ex := range SortByStart(exclusions) {
		if ex.StartSecs > pos {
			end := ex.StartSecs
			if end > duration {
				end = duration
			}
			if end > pos {
				included = append(included, TimeInterval{StartSecs: pos, EndSecs: end})
			}
		}
		if ex.EndSecs > pos {
			pos = ex.EndSecs
		}
	}

	if pos < duration {
		included = append(included, TimeInterval{StartSecs: pos, EndSecs: duration})
	}
	return included
}

// Clip verilen aralıkların [start, end] penceresine düşen parçalarını döner.
func Clip(set []TimeInterval, start, end float64) []TimeInterval {
	var clipped []TimeInterval
	for _, iv := range set {
		s := iv.StartSecs
		if start > s {
			s = start
		}
		e := iv.EndSecs
		if end < e {
			e = end
		}
		if e > s {
			clipped = append(clipped, TimeInterval{StartSecs: s, EndSecs: e})
		}
	}
	return clipped
}

// ParseList "5-8,00:01:00-00:01:30" biçimindeki aralık listesini çözer.
// Aralıklar birleştirilmez, girildiği sırada döner.
func ParseList(list string) ([]TimeInterval, error) {
	tokens := strings.Split(list, ",")
	ranges := make([]TimeInterval, 0, len(tokens))

	for _, token := range tokens {
		raw := strings.TrimSpace(token)
		if raw == "" {
			continue
		}
		startRaw, endRaw, ok := strings.Cut(raw, "-")
		if !ok {
			return nil, fmt.Errorf("geçersiz aralık: %s (örn: 00:00:05-00:00:08)", raw)
		}

		startSec, err := format.ParseSeconds(startRaw)
		if err != nil {
			return nil, fmt.Errorf("geçersiz aralık başlangıcı: %s", strings.TrimSpace(startRaw))
		}
		endSec, err := format.ParseSeconds(endRaw)
		if err != nil {
			return nil, fmt.Errorf("geçersiz aralık bitişi: %s", strings.TrimSpace(endRaw))
		}
		if endSec <= startSec {
			return nil, fmt.Errorf("aralıkta bitiş başlangıçtan büyük olmalı: %s", raw)
		}

		ranges = append(ranges, TimeInterval{StartSecs: startSec, EndSecs: endSec})
	}

	return ranges, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
