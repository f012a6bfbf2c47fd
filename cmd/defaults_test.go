package cmd

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videopartitioner/internal/config"
	"github.com/mlihgenel/videopartitioner/internal/session"
	"github.com/mlihgenel/videopartitioner/internal/thumbnail"
)

func TestApplyRootDefaultsEnvOverridesConfig(t *testing.T) {
	prevCfg := activeProjectConfig
	defer func() { activeProjectConfig = prevCfg }()

	activeProjectConfig = &config.ProjectConfig{
		DefaultOutput: "/from-config",
		Workers:       3,
	}
	outputDir = ""
	workers = 1

	t.Setenv("VIDEOPARTITIONER_HOME", t.TempDir())
	t.Setenv(envOutput, "/from-env")
	t.Setenv(envWorkers, "9")

	c := newTestRootCommand()
	if err := applyRootDefaults(c); err != nil {
		t.Fatalf("applyRootDefaults failed: %v", err)
	}

	if outputDir != "/from-env" {
		t.Fatalf("expected env output, got %s", outputDir)
	}
	if workers != 9 {
		t.Fatalf("expected env workers 9, got %d", workers)
	}
}

func TestApplyRootDefaultsRespectsChangedFlags(t *testing.T) {
	prevCfg := activeProjectConfig
	defer func() { activeProjectConfig = prevCfg }()

	activeProjectConfig = &config.ProjectConfig{
		DefaultOutput: "/from-config",
		Workers:       5,
	}
	outputDir = "/manual"
	workers = 11

	c := newTestRootCommand()
	if err := c.Flags().Set("output", "/manual"); err != nil {
		t.Fatalf("set output flag failed: %v", err)
	}
	if err := c.Flags().Set("workers", "11"); err != nil {
		t.Fatalf("set workers flag failed: %v", err)
	}

	if err := applyRootDefaults(c); err != nil {
		t.Fatalf("applyRootDefaults failed: %v", err)
	}

	if outputDir != "/manual" {
		t.Fatalf("expected manual output unchanged, got %s", outputDir)
	}
	if workers != 11 {
		t.Fatalf("expected manual workers unchanged, got %d", workers)
	}
}

func newTestRootCommand() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.Flags().String("output", "", "")
	c.Flags().Int("workers", 0, "")
	return c
}

func TestReadEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "12")
	if v, ok := readEnvInt("X_INT"); !ok || v != 12 {
		t.Fatalf("unexpected int parse result")
	}

	t.Setenv("X_DUR", "2s")
	if _, ok := readEnvDuration("X_DUR"); !ok {
		t.Fatalf("expected duration parse success")
	}

	_ = os.Unsetenv("X_INT")
	_ = os.Unsetenv("X_DUR")
}

func TestApplyTargetSizeDefaultPrecedence(t *testing.T) {
	prevCfg := activeProjectConfig
	defer func() { activeProjectConfig = prevCfg }()
	t.Setenv("VIDEOPARTITIONER_HOME", t.TempDir())

	c := &cobra.Command{Use: "test"}
	c.Flags().Float64("size", 0, "")

	activeProjectConfig = nil
	var got float64
	applyTargetSizeDefault(c, "size", &got)
	if got != session.DefaultTargetSizeGb {
		t.Fatalf("expected built-in default, got %v", got)
	}

	if err := config.SetDefaultTargetGb(2.5); err != nil {
		t.Fatalf("SetDefaultTargetGb failed: %v", err)
	}
	got = 0
	applyTargetSizeDefault(c, "size", &got)
	if got != 2.5 {
		t.Fatalf("expected user config 2.5, got %v", got)
	}

	activeProjectConfig = &config.ProjectConfig{TargetGb: 1.5}
	got = 0
	applyTargetSizeDefault(c, "size", &got)
	if got != 1.5 {
		t.Fatalf("expected project 1.5, got %v", got)
	}

	t.Setenv(envSize, "0,7")
	got = 0
	applyTargetSizeDefault(c, "size", &got)
	if got != 0.7 {
		t.Fatalf("expected env 0.7, got %v", got)
	}

	if err := c.Flags().Set("size", "3"); err != nil {
		t.Fatalf("set size flag failed: %v", err)
	}
	got = 3
	applyTargetSizeDefault(c, "size", &got)
	if got != 3 {
		t.Fatalf("expected flag value unchanged, got %v", got)
	}
}

func TestApplySplitDefaultsFromProjectConfig(t *testing.T) {
	prevCfg := activeProjectConfig
	defer func() { activeProjectConfig = prevCfg }()

	activeProjectConfig = &config.ProjectConfig{
		OnConflict:      "Skip",
		Retry:           2,
		RetryDelay:      3 * time.Second,
		Thumbnails:      12,
		ThumbnailHeight: 90,
	}

	c := &cobra.Command{Use: "test"}
	c.Flags().String("on-conflict", "", "")
	c.Flags().Int("retry", 0, "")
	c.Flags().Duration("retry-delay", 0, "")

	policy := "versioned"
	applyOnConflictDefault(c, "on-conflict", &policy)
	if policy != "skip" {
		t.Fatalf("expected project policy skip, got %s", policy)
	}

	retry, delay := 0, time.Second
	applyRetryDefaults(c, "retry", &retry, "retry-delay", &delay)
	if retry != 2 || delay != 3*time.Second {
		t.Fatalf("unexpected retry defaults: %d %s", retry, delay)
	}

	t.Setenv(envRetry, "0")
	retry = 5
	applyRetryDefaults(c, "retry", &retry, "retry-delay", &delay)
	if retry != 0 {
		t.Fatalf("expected env retry 0 to win, got %d", retry)
	}

	count, height := 0, 0
	applyThumbnailDefaults(c, "thumbnails", &count, "thumbnail-height", &height)
	if count != 12 || height != 90 {
		t.Fatalf("unexpected thumbnail defaults: %d %d", count, height)
	}

	activeProjectConfig = nil
	count, height = 0, 0
	applyThumbnailDefaults(c, "thumbnails", &count, "thumbnail-height", &height)
	if count != thumbnail.DefaultCount || height != thumbnail.DefaultHeight {
		t.Fatalf("expected built-in thumbnail defaults, got %d %d", count, height)
	}
}

func TestResolveLogLevelPrecedence(t *testing.T) {
	prevCfg, prevLevel, prevVerbose := activeProjectConfig, logLevel, verbose
	defer func() { activeProjectConfig, logLevel, verbose = prevCfg, prevLevel, prevVerbose }()
	t.Setenv("VIDEOPARTITIONER_HOME", t.TempDir())

	activeProjectConfig, logLevel, verbose = nil, "", false
	if got := resolveLogLevel(); got != "info" {
		t.Fatalf("expected info, got %s", got)
	}
	verbose = true
	if got := resolveLogLevel(); got != "debug" {
		t.Fatalf("expected debug with verbose, got %s", got)
	}
	activeProjectConfig = &config.ProjectConfig{LogLevel: "warn"}
	if got := resolveLogLevel(); got != "warn" {
		t.Fatalf("expected project warn, got %s", got)
	}
	t.Setenv(envLogLevel, "error")
	if got := resolveLogLevel(); got != "error" {
		t.Fatalf("expected env error, got %s", got)
	}
	logLevel = "debug"
	if got := resolveLogLevel(); got != "debug" {
		t.Fatalf("expected flag debug, got %s", got)
	}
}
