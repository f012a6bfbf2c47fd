package cmd

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videopartitioner/internal/config"
	"github.com/mlihgenel/videopartitioner/internal/session"
	"github.com/mlihgenel/videopartitioner/internal/thumbnail"
)

const (
	envOutput      = "VIDEOPARTITIONER_OUTPUT"
	envWorkers     = "VIDEOPARTITIONER_WORKERS"
	envSize        = "VIDEOPARTITIONER_SIZE"
	envConflict    = "VIDEOPARTITIONER_ON_CONFLICT"
	envRetry       = "VIDEOPARTITIONER_RETRY"
	envRetryDelay  = "VIDEOPARTITIONER_RETRY_DELAY"
	envReport      = "VIDEOPARTITIONER_REPORT"
	envLogLevel    = "VIDEOPARTITIONER_LOG_LEVEL"
	envThumbs      = "VIDEOPARTITIONER_THUMBNAILS"
	envThumbHeight = "VIDEOPARTITIONER_THUMBNAIL_HEIGHT"
)

func applyRootDefaults(cmd *cobra.Command) error {
	if !cmd.Flags().Changed("output") {
		if v := strings.TrimSpace(os.Getenv(envOutput)); v != "" {
			outputDir = v
		} else if activeProjectConfig != nil && strings.TrimSpace(activeProjectConfig.DefaultOutput) != "" {
			outputDir = strings.TrimSpace(activeProjectConfig.DefaultOutput)
		} else if v := config.GetDefaultOutputDir(); v != "" && outputDir == "" {
			outputDir = v
		}
	}

	if !cmd.Flags().Changed("workers") {
		if v, ok := readEnvInt(envWorkers); ok && v > 0 {
			workers = v
		} else if activeProjectConfig != nil && activeProjectConfig.Workers > 0 {
			workers = activeProjectConfig.Workers
		}
	}

	return nil
}

// applyTargetSizeDefault hedef parça boyutunu bayrak > ortam > proje > kullanıcı ayarı > varsayılan sırasıyla belirler.
func applyTargetSizeDefault(cmd *cobra.Command, flagName string, value *float64) {
	if cmd.Flags().Changed(flagName) {
		return
	}
	if v, ok := readEnvFloat(envSize); ok && v > 0 {
		*value = v
		return
	}
	if activeProjectConfig != nil && activeProjectConfig.TargetGb > 0 {
		*value = activeProjectConfig.TargetGb
		return
	}
	if v := config.GetDefaultTargetGb(); v > 0 {
		*value = v
		return
	}
	if *value <= 0 {
		*value = session.DefaultTargetSizeGb
	}
}

func applyOnConflictDefault(cmd *cobra.Command, flagName string, value *string) {
	if cmd.Flags().Changed(flagName) {
		return
	}
	if v := strings.TrimSpace(os.Getenv(envConflict)); v != "" {
		*value = strings.ToLower(v)
		return
	}
	if activeProjectConfig != nil && strings.TrimSpace(activeProjectConfig.OnConflict) != "" {
		*value = strings.ToLower(strings.TrimSpace(activeProjectConfig.OnConflict))
	}
}

func applyRetryDefaults(cmd *cobra.Command, retryFlag string, retryValue *int, delayFlag string, delayValue *time.Duration) {
	if !cmd.Flags().Changed(retryFlag) {
		if v, ok := readEnvInt(envRetry); ok && v >= 0 {
			*retryValue = v
		} else if activeProjectConfig != nil && activeProjectConfig.Retry > 0 {
			*retryValue = activeProjectConfig.Retry
		}
	}

	if !cmd.Flags().Changed(delayFlag) {
		if v, ok := readEnvDuration(envRetryDelay); ok {
			*delayValue = v
		} else if activeProjectConfig != nil && activeProjectConfig.RetryDelay > 0 {
			*delayValue = activeProjectConfig.RetryDelay
		}
	}
}

func applyReportDefault(cmd *cobra.Command, flagName string, value *string) {
	if cmd.Flags().Changed(flagName) {
		return
	}
	if v := strings.TrimSpace(os.Getenv(envReport)); v != "" {
		*value = strings.ToLower(v)
		return
	}
	if activeProjectConfig != nil && strings.TrimSpace(activeProjectConfig.ReportFormat) != "" {
		*value = strings.ToLower(strings.TrimSpace(activeProjectConfig.ReportFormat))
	}
}

func applyThumbnailDefaults(cmd *cobra.Command, countFlag string, count *int, heightFlag string, height *int) {
	if !cmd.Flags().Changed(countFlag) {
		if v, ok := readEnvInt(envThumbs); ok && v > 0 {
			*count = v
		} else if activeProjectConfig != nil && activeProjectConfig.Thumbnails > 0 {
			*count = activeProjectConfig.Thumbnails
		}
	}
	if !cmd.Flags().Changed(heightFlag) {
		if v, ok := readEnvInt(envThumbHeight); ok && v > 0 {
			*height = v
		} else if activeProjectConfig != nil && activeProjectConfig.ThumbnailHeight > 0 {
			*height = activeProjectConfig.ThumbnailHeight
		}
	}
	if *count <= 0 {
		*count = thumbnail.DefaultCount
	}
	if *height <= 0 {
		*height = thumbnail.DefaultHeight
	}
}

// resolveLogLevel kayıt seviyesini bayrak > ortam > proje > kullanıcı ayarı sırasıyla belirler.
func resolveLogLevel() string {
	if v := strings.TrimSpace(logLevel); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		return v
	}
	if activeProjectConfig != nil && activeProjectConfig.LogLevel != "" {
		return activeProjectConfig.LogLevel
	}
	if cfg, _ := config.LoadConfig(); cfg.LogLevel != "" {
		return cfg.LogLevel
	}
	if verbose {
		return "debug"
	}
	return "info"
}

func readEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func readEnvFloat(name string) (float64, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func readEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
