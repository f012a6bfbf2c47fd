package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mlihgenel/videopartitioner/internal/ui"
)

// --output-format değerleri. json çıktısı betiklerden okunmak içindir;
// o modda ilerleme ve bilgi satırları basılmaz.
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

func NormalizeOutputFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", OutputFormatText:
		return OutputFormatText
	case OutputFormatJSON:
		return OutputFormatJSON
	default:
		return ""
	}
}

func isJSONOutput() bool {
	return NormalizeOutputFormat(outputFormat) == OutputFormatJSON
}

// checkOutputFormat komutlar iş yapmadan önce --output-format değerini doğrular.
func checkOutputFormat() error {
	if NormalizeOutputFormat(outputFormat) == "" {
		return fmt.Errorf("gecersiz output-format: %s (text|json)", outputFormat)
	}
	return nil
}

// emit json modunda payload'ı, aksi halde text çıktısını basar.
func emit(payload any, text func()) error {
	if isJSONOutput() {
		return printJSON(payload)
	}
	if text != nil {
		text()
	}
	return nil
}

func printJSON(payload any) error {
	enc := json.NewEncoder(ui.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
