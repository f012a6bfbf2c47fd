package splitter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mlihgenel/videopartitioner/internal/ffmpeg"
	"github.com/mlihgenel/videopartitioner/internal/interval"
	"github.com/mlihgenel/videopartitioner/internal/partition"
)

type recordingRunner struct {
	mu        sync.Mutex
	calls     [][]string
	concat    []string
	failMatch string
	info      string
}

func (r *recordingRunner) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, args)

	joined := strings.Join(args, " ")
	if r.failMatch != "" && strings.Contains(joined, r.failMatch) {
		return []byte("Conversion failed!"), errors.New("exit status 1")
	}
	if strings.Contains(joined, "-hide_banner") {
		return []byte(r.info), errors.New("exit status 1")
	}
	for i, a := range args {
		if a == "-f" && i+1 < len(args) && args[i+1] == "concat" {
			data, err := os.ReadFile(args[i+5])
			if err != nil {
				return nil, err
			}
			r.concat = append(r.concat, string(data))
		}
	}
	out := args[len(args)-1]
	return nil, os.WriteFile(out, []byte("video"), 0644)
}

func (r *recordingRunner) extractCalls() int {
	n := 0
	for _, c := range r.calls {
		if strings.Contains(strings.Join(c, " "), "-avoid_negative_ts make_zero") {
			n++
		}
	}
	return n
}

func setup(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "movie.mp4")
	if err := os.WriteFile(input, []byte("source"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	return input, out
}

func newExecutor(r *recordingRunner, opts Options) *Executor {
	if opts.Workers == 0 {
		opts.Workers = 2
	}
	return New(&ffmpeg.Toolkit{Runner: r, FFmpeg: "ffmpeg"}, opts)
}

var sixGB = &partition.Metadata{DurationSecs: 600, FileSizeBytes: 6_000_000_000}

func TestSplitWithoutExclusions(t *testing.T) {
	input, out := setup(t)
	r := &recordingRunner{}
	e := newExecutor(r, Options{})

	var last float64
	var mu sync.Mutex
	e.OnProgress = func(p float64) {
		mu.Lock()
		last = p
		mu.Unlock()
	}

	res, err := e.Split(context.Background(), Request{
		InputPath: input, OutputDir: out, TargetSizeBytes: 1_000_000_000, Metadata: sixGB,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Message() != "Split complete: 6 partition(s) created" {
		t.Fatalf("unexpected message: %s", res.Message())
	}
	if last != 100 {
		t.Fatalf("expected final progress 100, got %v", last)
	}
	if r.extractCalls() != 6 || len(r.concat) != 0 {
		t.Fatalf("expected 6 direct extractions, got %d calls", len(r.calls))
	}
	for i, p := range res.Outputs {
		want := filepath.Join(out, OutputName(input, i+1))
		if p != want {
			t.Fatalf("unexpected output %d: %s", i, p)
		}
	}
}

func TestSplitConcatenatesAroundExclusion(t *testing.T) {
	input, out := setup(t)
	r := &recordingRunner{}
	e := newExecutor(r, Options{Workers: 1})

	res, err := e.Split(context.Background(), Request{
		InputPath:       input,
		OutputDir:       out,
		TargetSizeBytes: 2_500_000_000,
		Exclusions:      []interval.TimeInterval{interval.New(100, 200)},
		Metadata:        sixGB,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created() != 2 {
		t.Fatalf("expected 2 partitions, got %d", res.Created())
	}
	if r.extractCalls() != 3 || len(r.concat) != 1 {
		t.Fatalf("expected 3 extractions and one concat, got %d/%d", r.extractCalls(), len(r.concat))
	}

	first := strings.Join(r.calls[0], " ")
	second := strings.Join(r.calls[1], " ")
	if !strings.Contains(first, "-ss 00:00:00.000 -to 00:01:40.000") || !strings.Contains(second, "-ss 00:03:20.000 -to 00:05:50.000") {
		t.Fatalf("unexpected segment bounds:\n%s\n%s", first, second)
	}
	if strings.Count(r.concat[0], "file '") != 2 {
		t.Fatalf("unexpected concat list:\n%s", r.concat[0])
	}

	entries, _ := os.ReadDir(out)
	var names []string
	for _, en := range entries {
		names = append(names, en.Name())
	}
	if diff := cmp.Diff([]string{"movie_part1.mp4", "movie_part2.mp4"}, names); diff != "" {
		t.Fatalf("temporary files left behind (-want +got):\n%s", diff)
	}
}

func TestSplitClampsExclusionPastEnd(t *testing.T) {
	input, out := setup(t)
	r := &recordingRunner{}
	e := newExecutor(r, Options{Workers: 1})

	res, err := e.Split(context.Background(), Request{
		InputPath:       input,
		OutputDir:       out,
		TargetSizeBytes: 1_000_000_000,
		Exclusions:      []interval.TimeInterval{interval.New(500, 700)},
		Metadata:        sixGB,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created() != 5 {
		t.Fatalf("expected 5 partitions, got %d", res.Created())
	}
	last := strings.Join(r.calls[len(r.calls)-1], " ")
	if !strings.Contains(last, "-ss 00:06:40.000 -to 00:08:20.000") {
		t.Fatalf("last partition must cover 400-500s, got:\n%s", last)
	}
}

func TestSegmentsUseOriginalTimeline(t *testing.T) {
	excl := []interval.TimeInterval{interval.New(100, 200), interval.New(300, 320)}
	included := interval.Included(excl, 600)
	got := Segments(partition.Point{StartSecs: 50, EndSecs: 350}, included)
	want := []interval.TimeInterval{{StartSecs: 50, EndSecs: 100}, {StartSecs: 200, EndSecs: 300}, {StartSecs: 320, EndSecs: 350}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected segments (-want +got):\n%s", diff)
	}
}

func TestSplitWholeFileExcluded(t *testing.T) {
	input, out := setup(t)
	_, err := newExecutor(&recordingRunner{}, Options{}).Split(context.Background(), Request{
		InputPath: input, OutputDir: out, TargetSizeBytes: 1_000_000_000, Metadata: sixGB,
		Exclusions: []interval.TimeInterval{interval.New(0, 600)},
	})
	if !errors.Is(err, ErrNoPartitions) {
		t.Fatalf("expected ErrNoPartitions, got %v", err)
	}
}

func TestSplitValidatesPaths(t *testing.T) {
	input, out := setup(t)
	e := newExecutor(&recordingRunner{}, Options{})
	ctx := context.Background()

	if _, err := e.Split(ctx, Request{InputPath: filepath.Join(out, "missing.mp4"), OutputDir: out, TargetSizeBytes: 1, Metadata: sixGB}); err == nil {
		t.Fatalf("expected error for missing input")
	}
	if _, err := e.Split(ctx, Request{InputPath: input, OutputDir: input, TargetSizeBytes: 1, Metadata: sixGB}); err == nil {
		t.Fatalf("expected error for file output dir")
	}
	missing := filepath.Join(out, "nested")
	if _, err := e.Split(ctx, Request{InputPath: input, OutputDir: missing, TargetSizeBytes: 1_000_000_000, Metadata: sixGB}); err == nil {
		t.Fatalf("expected error for missing output dir")
	}

	e.Options.CreateOutputDir = true
	if _, err := e.Split(ctx, Request{InputPath: input, OutputDir: missing, TargetSizeBytes: 3_000_000_000, Metadata: sixGB}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSplitConflictPolicies(t *testing.T) {
	input, out := setup(t)
	existing := filepath.Join(out, "movie_part1.mp4")
	if err := os.WriteFile(existing, []byte("old"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	req := Request{InputPath: input, OutputDir: out, TargetSizeBytes: 3_000_000_000, Metadata: sixGB}

	res, err := newExecutor(&recordingRunner{}, Options{OnConflict: ConflictSkip}).Split(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Summary.Skipped != 1 || res.Created() != 1 {
		t.Fatalf("unexpected summary: %+v", res.Summary)
	}
	data, _ := os.ReadFile(existing)
	if string(data) != "old" {
		t.Fatalf("skipped output was overwritten")
	}

	res, err = newExecutor(&recordingRunner{}, Options{OnConflict: ConflictVersioned}).Split(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outputs[0] != filepath.Join(out, "movie_part1 (1).mp4") {
		t.Fatalf("unexpected versioned output: %s", res.Outputs[0])
	}

	if _, err := newExecutor(&recordingRunner{}, Options{OnConflict: "ask"}).Split(context.Background(), req); err == nil {
		t.Fatalf("expected error for invalid policy")
	}
}

func TestSplitReportsFailure(t *testing.T) {
	input, out := setup(t)
	r := &recordingRunner{failMatch: "movie_part2"}
	res, err := newExecutor(r, Options{Retry: 1}).Split(context.Background(), Request{
		InputPath: input, OutputDir: out, TargetSizeBytes: 3_000_000_000, Metadata: sixGB,
	})
	if err == nil || !strings.Contains(err.Error(), "Conversion failed!") {
		t.Fatalf("expected wrapped ffmpeg output, got %v", err)
	}
	if res == nil || res.Summary.Failed != 1 || res.Created() != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Results[1].Attempts != 2 {
		t.Fatalf("expected retry, got %d attempts", res.Results[1].Attempts)
	}
}

func TestSplitProbesDurationWhenMissing(t *testing.T) {
	input, out := setup(t)
	r := &recordingRunner{info: "  Duration: 00:10:00.00, start: 0.000000, bitrate: 80000 kb/s\n"}
	res, err := newExecutor(r, Options{}).Split(context.Background(), Request{
		InputPath: input, OutputDir: out, TargetSizeBytes: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Dosya boyutu 6 bayt, hedef 3 bayt: iki parça.
	if len(res.Points) != 2 || res.Points[1].EndSecs != 600 {
		t.Fatalf("unexpected points: %+v", res.Points)
	}
}

func TestOutputName(t *testing.T) {
	cases := map[string]string{
		"/v/movie.mkv":  "movie_part3.mkv",
		"/v/movie":      "movie_part3.mp4",
		"/v/my.clip.ts": "my.clip_part3.ts",
	}
	for in, want := range cases {
		if got := OutputName(in, 3); got != want {
			t.Fatalf("OutputName(%s) = %s, want %s", in, got, want)
		}
	}
}
