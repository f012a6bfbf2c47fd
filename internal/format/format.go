package format

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

const bytesPerGB = 1024 * 1024 * 1024

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FileSize byte değerini 1024 tabanlı okunabilir metne çevirir ("1.50 GB").
func FileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	value, exp := float64(bytes), 0
	for value >= 1024 && exp < len(sizeUnits)-1 {
		value /= 1024
		exp++
	}

	if exp == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.2f %s", value, sizeUnits[exp])
}

// Duration saniyeyi MM:SS, saat varsa HH:MM:SS olarak yazar.
func Duration(secs float64) string {
	if secs < 0 || math.IsNaN(secs) {
		secs = 0
	}
	total := int64(secs)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FFmpegTime saniyeyi ffmpeg'in kabul ettiği HH:MM:SS.mmm formatına çevirir.
func FFmpegTime(secs float64) string {
	if secs < 0 || math.IsNaN(secs) {
		secs = 0
	}
	millis := int64(math.Round(secs * 1000))
	hours := millis / 3600000
	minutes := (millis % 3600000) / 60000
	seconds := (millis % 60000) / 1000
	ms := millis % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, ms)
}

// GbToBytes GB değerini (1024^3) en yakın byte sayısına yuvarlar.
func GbToBytes(gb float64) int64 {
	return int64(math.Round(gb * bytesPerGB))
}

// BytesToGb byte değerini GB'a çevirir.
func BytesToGb(bytes int64) float64 {
	return float64(bytes) / bytesPerGB
}

// IsValidPartitionSize parça boyutunun (GB) kabul edilebilir olup olmadığını kontrol eder.
func IsValidPartitionSize(gb float64) bool {
	if math.IsNaN(gb) || math.IsInf(gb, 0) {
		return false
	}
	return gb > 0 && gb <= 100
}

var partitionableExtensions = map[string]bool{
	".mp4": true, ".mkv": true, ".avi": true, ".mov": true,
	".wmv": true, ".flv": true, ".webm": true,
}

// IsVideoFile dosyanın bölünebilir bir video uzantısına sahip olup olmadığını döner.
func IsVideoFile(name string) bool {
	return partitionableExtensions[strings.ToLower(filepath.Ext(name))]
}
