package logging

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestWithComponentWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	l := WithComponent("splitter")
	l.Debug().Str(FieldPath, "movie.mp4").Msg("parça yazıldı")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unexpected log output %q: %v", buf.String(), err)
	}
	if entry[FieldComponent] != "splitter" || entry[FieldPath] != "movie.mp4" || entry["message"] != "parça yazıldı" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
}

func TestLevelFiltersEntries(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	l := Base()
	l.Info().Msg("gizli")
	l.Warn().Msg("görünür")

	out := buf.String()
	if strings.Contains(out, "gizli") || !strings.Contains(out, "görünür") {
		t.Fatalf("unexpected filtered output: %q", out)
	}
}

func TestNilOutputDiscards(t *testing.T) {
	Configure(Config{Level: "debug"})
	l := Base()
	l.Error().Msg("nothing")
}

func TestValidLevel(t *testing.T) {
	for _, lvl := range []string{"", "debug", "info", "warn", "error"} {
		if !ValidLevel(lvl) {
			t.Fatalf("expected %q to be valid", lvl)
		}
	}
	if ValidLevel("loud") {
		t.Fatalf("expected invalid level")
	}
}

func TestOpenFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.Close()
}
