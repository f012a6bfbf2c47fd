package splitter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	ConflictOverwrite = "overwrite"
	ConflictSkip      = "skip"
	ConflictVersioned = "versioned"
)

// NormalizeConflictPolicy geçersiz/boş değerlerde varsayılan policy döner.
func NormalizeConflictPolicy(policy string) string {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case ConflictOverwrite:
		return ConflictOverwrite
	case ConflictSkip:
		return ConflictSkip
	case ConflictVersioned, "":
		return ConflictVersioned
	default:
		return ""
	}
}

// OutputName n. parçanın (1'den başlar) dosya adını üretir: film_part1.mp4
func OutputName(inputPath string, n int) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = "output"
	}
	if ext == "" {
		ext = ".mp4"
	}
	return fmt.Sprintf("%s_part%d%s", stem, n, ext)
}

// ResolveOutputPathConflict hedef dosya adı çakışmasını verilen policy'ye göre çözer.
// skip=true dönerse ilgili parça atlanmalıdır.
func ResolveOutputPathConflict(path, policy string) (resolvedPath string, skip bool, err error) {
	normalized := NormalizeConflictPolicy(policy)
	if normalized == "" {
		return "", false, fmt.Errorf("gecersiz on-conflict politikasi: %s", policy)
	}

	_, statErr := os.Stat(path)
	if statErr != nil {
		if errors.Is(statErr, os.ErrNotExist) {
			return path, false, nil
		}
		return "", false, statErr
	}

	switch normalized {
	case ConflictOverwrite:
		return path, false, nil
	case ConflictSkip:
		return path, true, nil
	default:
		ext := filepath.Ext(path)
		base := strings.TrimSuffix(path, ext)
		for i := 1; i < 100000; i++ {
			candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
			if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
				return candidate, false, nil
			} else if err != nil {
				return "", false, err
			}
		}
		return "", false, fmt.Errorf("uygun versioned dosya adi bulunamadi")
	}
}
