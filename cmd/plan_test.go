package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/mlihgenel/videopartitioner/internal/config"
	"github.com/mlihgenel/videopartitioner/internal/ffmpeg"
	"github.com/mlihgenel/videopartitioner/internal/interval"
	"github.com/mlihgenel/videopartitioner/internal/report"
	"github.com/mlihgenel/videopartitioner/internal/ui"
)

const fakeInfo = `Input #0, mov,mp4,m4a,3gp,3g2,mj2, from 'movie.mp4':
  Duration: 01:40:00.00, start: 0.000000, bitrate: 140 kb/s
  Stream #0:0: Video: h264 (High), yuv420p, 1280x720, 128 kb/s, 25 fps
  Stream #0:1: Audio: aac (LC), 48000 Hz, stereo, fltp, 12 kb/s
At least one output file must be specified
`

// fakeFFmpeg "-i" okumasında sabit çıktıyı döner, diğer çağrılarda son argümana dosya yazar.
type fakeFFmpeg struct {
	mu    sync.Mutex
	calls [][]string
}

func (f *fakeFFmpeg) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, args)
	f.mu.Unlock()

	if len(args) > 0 && args[0] == "-hide_banner" {
		return []byte(fakeInfo), errors.New("exit status 1")
	}
	out := args[len(args)-1]
	return nil, os.WriteFile(out, []byte("part"), 0644)
}

// writeMovie 100 MiB'lık seyrek bir video dosyası oluşturur.
func writeMovie(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movie.mp4")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(100<<20))
	require.NoError(t, f.Close())
	return path
}

func useFakeToolkit(t *testing.T) *fakeFFmpeg {
	t.Helper()
	fake := &fakeFFmpeg{}
	prev := newToolkit
	newToolkit = func() (*ffmpeg.Toolkit, error) {
		return &ffmpeg.Toolkit{Runner: fake, FFmpeg: "ffmpeg"}, nil
	}
	t.Cleanup(func() { newToolkit = prev })
	return fake
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runRoot kök komutu verilen argümanlarla çalıştırır ve ui çıktısını döner.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("VIDEOPARTITIONER_HOME", t.TempDir())

	var buf bytes.Buffer
	prevOut := ui.Out
	ui.Out = &buf
	t.Cleanup(func() {
		ui.Out = prevOut
		resetFlags(rootCmd)
		outputDir, outputFormat = "", OutputFormatText
		planOpts, splitOpts = planFlags{}, planFlags{}
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func newPlanCommand(f *planFlags) *cobra.Command {
	c := &cobra.Command{Use: "test"}
	f.register(c)
	c.Flags().String("output", "", "")
	return c
}

func TestResolvePlanMergesPlanFileAndFlags(t *testing.T) {
	useFakeToolkit(t)
	t.Setenv("VIDEOPARTITIONER_HOME", t.TempDir())
	video := writeMovie(t)

	planPath := filepath.Join(t.TempDir(), "movie.plan.yaml")
	require.NoError(t, config.SavePlan(planPath, config.NewPlan(video, 0.5, "/from-plan",
		[]interval.TimeInterval{{StartSecs: 0, EndSecs: 600}})))

	var f planFlags
	c := newPlanCommand(&f)
	require.NoError(t, c.Flags().Set("plan", planPath))
	require.NoError(t, c.Flags().Set("exclude", "01:30:00-01:40:00"))

	prevOut := outputDir
	outputDir = ""
	defer func() { outputDir = prevOut }()

	r, err := resolvePlan(context.Background(), c, nil, &f)
	require.NoError(t, err)

	s := r.session
	require.Equal(t, video, s.VideoPath)
	require.Equal(t, 0.5, s.TargetSizeGb)
	require.Equal(t, "/from-plan", s.OutputDir)
	require.Equal(t, []interval.TimeInterval{
		{StartSecs: 0, EndSecs: 600},
		{StartSecs: 5400, EndSecs: 6000},
	}, s.Exclusions)
	require.InDelta(t, 6000, s.Duration(), 1e-9)
	require.Len(t, s.Points, 1)
}

func TestResolvePlanProfileOverridesPlanFile(t *testing.T) {
	useFakeToolkit(t)
	t.Setenv("VIDEOPARTITIONER_HOME", t.TempDir())
	video := writeMovie(t)

	planPath := filepath.Join(t.TempDir(), "movie.plan.yaml")
	require.NoError(t, config.SavePlan(planPath, config.NewPlan(video, 0.5, "", nil)))

	prevOut := outputDir
	outputDir = ""
	defer func() { outputDir = prevOut }()

	var f planFlags
	c := newPlanCommand(&f)
	require.NoError(t, c.Flags().Set("plan", planPath))
	require.NoError(t, c.Flags().Set("profile", "mail"))

	r, err := resolvePlan(context.Background(), c, nil, &f)
	require.NoError(t, err)
	require.NotNil(t, r.profile)
	require.Equal(t, "email", r.profile.Name)
	require.Equal(t, 0.0244, r.session.TargetSizeGb)
	require.Equal(t, filepath.Dir(video), r.session.OutputDir)
	// 100 MiB / 24.98 MiB
	require.Len(t, r.session.Points, 5)
}

func TestResolvePlanRejectsInvalidInput(t *testing.T) {
	useFakeToolkit(t)
	t.Setenv("VIDEOPARTITIONER_HOME", t.TempDir())
	video := writeMovie(t)

	var f planFlags
	c := newPlanCommand(&f)
	_, err := resolvePlan(context.Background(), c, nil, &f)
	require.ErrorContains(t, err, "video dosyası belirtilmedi")

	_, err = resolvePlan(context.Background(), c, []string{filepath.Join(t.TempDir(), "missing.mp4")}, &f)
	require.ErrorContains(t, err, "dosya bulunamadı")

	require.NoError(t, c.Flags().Set("size", "150"))
	_, err = resolvePlan(context.Background(), c, []string{video}, &f)
	require.ErrorContains(t, err, "geçersiz parça boyutu")

	f = planFlags{}
	c = newPlanCommand(&f)
	require.NoError(t, c.Flags().Set("exclude", "90-abc"))
	_, err = resolvePlan(context.Background(), c, []string{video}, &f)
	require.Error(t, err)

	f = planFlags{}
	c = newPlanCommand(&f)
	require.NoError(t, c.Flags().Set("profile", "floppy"))
	_, err = resolvePlan(context.Background(), c, []string{video}, &f)
	require.Error(t, err)
}

func TestResolvePlanSavesPlan(t *testing.T) {
	useFakeToolkit(t)
	t.Setenv("VIDEOPARTITIONER_HOME", t.TempDir())
	video := writeMovie(t)
	save := filepath.Join(t.TempDir(), "saved.plan.yaml")

	prevFormat := outputFormat
	outputFormat = OutputFormatJSON
	defer func() { outputFormat = prevFormat }()

	var f planFlags
	c := newPlanCommand(&f)
	require.NoError(t, c.Flags().Set("size", "0.05"))
	require.NoError(t, c.Flags().Set("exclude", "0-90"))
	require.NoError(t, c.Flags().Set("save", save))

	_, err := resolvePlan(context.Background(), c, []string{video}, &f)
	require.NoError(t, err)

	p, err := config.LoadPlan(save)
	require.NoError(t, err)
	require.Equal(t, video, p.Video)
	require.Equal(t, 0.05, p.TargetGb)
	ivs, err := p.Intervals()
	require.NoError(t, err)
	require.Equal(t, []interval.TimeInterval{{StartSecs: 0, EndSecs: 90}}, ivs)
}

func TestReportPath(t *testing.T) {
	require.Equal(t, "/x/r.pdf", reportPath("/x/r.pdf", "/v/movie.mp4", "/out", "plan", report.PDF))
	require.Equal(t, filepath.Join("/out", "movie_plan.md"), reportPath("", "/v/movie.mp4", "/out", "plan", report.MD))
}

func TestPlanCommandJSON(t *testing.T) {
	useFakeToolkit(t)
	video := writeMovie(t)

	out, err := runRoot(t, "plan", video, "--size", "0.05", "--output-format", "json")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Equal(t, video, rep.Video)
	require.Equal(t, 2, rep.Summary.PartitionCount)
	require.Len(t, rep.Items, 2)
	for _, item := range rep.Items {
		require.Equal(t, report.StatusPlanned, item.Status)
	}
	require.InDelta(t, 6000, rep.Items[1].EndSecs, 1e-6)
}

func TestPlanCommandTextWritesReport(t *testing.T) {
	useFakeToolkit(t)
	video := writeMovie(t)
	dir := t.TempDir()

	out, err := runRoot(t, "plan", video, "--size", "0.05", "--exclude", "0-3000", "-o", dir, "--report", "md")
	require.NoError(t, err)
	require.Contains(t, out, "movie.mp4")
	require.Contains(t, out, "1 parça")

	data, err := os.ReadFile(filepath.Join(dir, "movie_plan.md"))
	require.NoError(t, err)
	require.Contains(t, string(data), "Partition Plan")
}

func TestSplitCommandWritesParts(t *testing.T) {
	fake := useFakeToolkit(t)
	video := writeMovie(t)
	dir := filepath.Join(t.TempDir(), "parts")

	out, err := runRoot(t, "split", video, "--size", "0.05", "-o", dir, "--output-format", "json", "--report", "txt")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Items, 2)
	for i, item := range rep.Items {
		require.Equal(t, report.StatusSuccess, item.Status, "item %d", i)
	}
	require.NotNil(t, rep.Batch)
	require.Equal(t, 2, rep.Batch.Succeeded)

	for _, name := range []string{"movie_part1.mp4", "movie_part2.mp4", "movie_split_report.txt"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}

	cut := 0
	for _, c := range fake.calls {
		if strings.Contains(strings.Join(c, " "), "-c copy") {
			cut++
		}
	}
	require.Equal(t, 2, cut)
}

func TestSplitCommandRejectsInvalidPolicy(t *testing.T) {
	useFakeToolkit(t)
	video := writeMovie(t)

	_, err := runRoot(t, "split", video, "--on-conflict", "merge")
	require.ErrorContains(t, err, "on-conflict")
}

func TestSplitCommandFullyExcluded(t *testing.T) {
	useFakeToolkit(t)
	video := writeMovie(t)

	_, err := runRoot(t, "split", video, "--exclude", "0-6000")
	require.Error(t, err)
}
