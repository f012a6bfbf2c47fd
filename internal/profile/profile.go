package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/mlihgenel/videopartitioner/internal/report"
	"github.com/mlihgenel/videopartitioner/internal/splitter"
)

// Definition hazır parça boyutu profilidir.
// nil pointer alanlar "profil bu alanı zorlamıyor" anlamına gelir.
type Definition struct {
	Name        string
	Description string
	TargetGb    float64
	OnConflict  string
	Retry       *int
	RetryDelay  *time.Duration
	Report      string
}

var builtins = map[string]Definition{
	"fat32": {
		Name:        "fat32",
		Description: "FAT32 dosya boyutu sınırı (4 GB - 1 bayt)",
		TargetGb:    3.99,
		OnConflict:  splitter.ConflictVersioned,
	},
	"dvd": {
		Name:        "dvd",
		Description: "Tek katmanlı DVD (4.7 GB)",
		TargetGb:    4.37,
		OnConflict:  splitter.ConflictVersioned,
		Retry:       intPtr(1),
		RetryDelay:  durationPtr(500 * time.Millisecond),
		Report:      report.TXT,
	},
	"dvd-dl": {
		Name:        "dvd-dl",
		Description: "Çift katmanlı DVD (8.5 GB)",
		TargetGb:    7.95,
		OnConflict:  splitter.ConflictVersioned,
		Retry:       intPtr(1),
		RetryDelay:  durationPtr(500 * time.Millisecond),
		Report:      report.TXT,
	},
	"bluray": {
		Name:        "bluray",
		Description: "Tek katmanlı Blu-ray (25 GB)",
		TargetGb:    23.3,
		OnConflict:  splitter.ConflictVersioned,
		Retry:       intPtr(2),
		RetryDelay:  durationPtr(1 * time.Second),
		Report:      report.PDF,
	},
	"cd": {
		Name:        "cd",
		Description: "CD-R (700 MB)",
		TargetGb:    0.68,
		OnConflict:  splitter.ConflictVersioned,
	},
	"email": {
		Name:        "email",
		Description: "E-posta eki (25 MB)",
		TargetGb:    0.0244,
		OnConflict:  splitter.ConflictOverwrite,
		Retry:       intPtr(0),
		RetryDelay:  durationPtr(0),
	},
}

var aliases = map[string]string{
	"fat":     "fat32",
	"usb":     "fat32",
	"dvd5":    "dvd",
	"dvd9":    "dvd-dl",
	"blu-ray": "bluray",
	"bd":      "bluray",
	"mail":    "email",
}

// Resolve isimden profile döner.
func Resolve(name string) (Definition, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Definition{}, fmt.Errorf("profil adi bos")
	}
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	p, ok := builtins[key]
	if !ok {
		return Definition{}, fmt.Errorf("profil bulunamadi: %s (gecerli: %s)", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names built-in profil isimlerini boyut sırasıyla döner.
func Names() []string {
	return []string{"email", "cd", "fat32", "dvd", "dvd-dl", "bluray"}
}

// All built-in profilleri boyut sırasıyla döner.
func All() []Definition {
	out := make([]Definition, 0, len(builtins))
	for _, name := range Names() {
		out = append(out, builtins[name])
	}
	return out
}

func intPtr(v int) *int { return &v }

func durationPtr(v time.Duration) *time.Duration { return &v }
