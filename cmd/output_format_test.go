package cmd

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/mlihgenel/videopartitioner/internal/media"
	"github.com/mlihgenel/videopartitioner/internal/report"
)

func TestNormalizeOutputFormat(t *testing.T) {
	if got := NormalizeOutputFormat(""); got != OutputFormatText {
		t.Fatalf("expected text for empty, got %s", got)
	}
	if got := NormalizeOutputFormat(" TEXT "); got != OutputFormatText {
		t.Fatalf("expected text for TEXT, got %s", got)
	}
	if got := NormalizeOutputFormat("json"); got != OutputFormatJSON {
		t.Fatalf("expected json, got %s", got)
	}
	if got := NormalizeOutputFormat("yaml"); got != "" {
		t.Fatalf("expected empty for invalid format, got %s", got)
	}
}

func TestInvalidOutputFormatIsRejected(t *testing.T) {
	useFakeToolkit(t)
	video := writeMovie(t)

	for _, name := range []string{"info", "plan"} {
		out, err := runRoot(t, name, video, "--output-format", "yaml")
		if err == nil || !strings.Contains(err.Error(), "output-format") {
			t.Fatalf("%s: expected output-format error, got %v", name, err)
		}
		if out != "" {
			t.Fatalf("%s: nothing must be printed before validation, got %q", name, out)
		}
	}
}

func TestInfoJSONOutput(t *testing.T) {
	useFakeToolkit(t)
	video := writeMovie(t)

	out, err := runRoot(t, "info", video, "--output-format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var meta media.Metadata
	if err := json.Unmarshal([]byte(out), &meta); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, out)
	}
	if meta.DurationSecs != 6000 || meta.Width != 1280 || meta.VideoCodec != "h264" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if meta.FileSize != 100<<20 {
		t.Fatalf("unexpected file size: %d", meta.FileSize)
	}
}

func TestInfoTextOutput(t *testing.T) {
	useFakeToolkit(t)
	video := writeMovie(t)

	out, err := runRoot(t, "info", video)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("text mode must not print json:\n%s", out)
	}
	if !strings.Contains(out, "1280x720") {
		t.Fatalf("expected resolution in output:\n%s", out)
	}
}

func TestPlanJSONClampsExclusionPastEnd(t *testing.T) {
	useFakeToolkit(t)
	video := writeMovie(t)

	out, err := runRoot(t, "plan", video, "--size", "0.05", "--exclude", "01:30:00-02:00:00", "--output-format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rep report.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, out)
	}
	if math.Abs(rep.Summary.ExcludedSecs-600) > 1e-6 {
		t.Fatalf("expected exclusion clamped to 600s, got %v", rep.Summary.ExcludedSecs)
	}
	if rep.Summary.PartitionCount != 2 || len(rep.Items) != 2 {
		t.Fatalf("expected 2 partitions, got %d", rep.Summary.PartitionCount)
	}
	if end := rep.Items[1].EndSecs; math.Abs(end-6000) > 1e-6 {
		t.Fatalf("last partition must reach the end of the video, got %v", end)
	}
}
