// Package splitter hesaplanan parçaları ffmpeg stream copy ile ayrı dosyalara yazar.
// Hariç tutulan aralıklar parçalara girmez; birden fazla kesitten oluşan parçalar
// concat demuxer ile birleştirilir.
package splitter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/mlihgenel/videopartitioner/internal/batch"
	"github.com/mlihgenel/videopartitioner/internal/ffmpeg"
	"github.com/mlihgenel/videopartitioner/internal/format"
	"github.com/mlihgenel/videopartitioner/internal/interval"
	"github.com/mlihgenel/videopartitioner/internal/logging"
	"github.com/mlihgenel/videopartitioner/internal/media"
	"github.com/mlihgenel/videopartitioner/internal/partition"
)

// ErrNoPartitions hesaplayıcı hiç parça üretmediğinde döner.
var ErrNoPartitions = errors.New("parça hesaplanamadı: dosya boyutunu ve hedef parça boyutunu kontrol edin")

// Request bölme isteğidir. Metadata boşsa süre dosyadan okunur.
type Request struct {
	InputPath       string
	OutputDir       string
	TargetSizeBytes int64
	Exclusions      []interval.TimeInterval
	Metadata        *partition.Metadata
}

// Options yürütme ayarlarıdır.
type Options struct {
	Workers         int
	Retry           int
	RetryDelay      time.Duration
	OnConflict      string
	CreateOutputDir bool
}

// Result bölme işleminin sonucudur.
type Result struct {
	Points    []partition.Point
	Outputs   []string
	Results   []batch.JobResult
	Summary   batch.Summary
	StartedAt time.Time
	EndedAt   time.Time
}

// Created başarıyla yazılan parça sayısıdır.
func (r *Result) Created() int {
	return len(r.Outputs)
}

// Message kullanıcıya gösterilecek özet mesajdır.
func (r *Result) Message() string {
	return fmt.Sprintf("Split complete: %d partition(s) created", r.Created())
}

// Executor bölme işlemini yürütür.
type Executor struct {
	Tools   *ffmpeg.Toolkit
	Options Options

	// OnProgress her parça bittiğinde 0-100 arası yüzdeyle çağrılır.
	OnProgress func(percent float64)

	log zerolog.Logger
}

// New yeni bir Executor oluşturur.
func New(tools *ffmpeg.Toolkit, opts Options) *Executor {
	return &Executor{
		Tools:   tools,
		Options: opts,
		log:     logging.WithComponent("splitter"),
	}
}

// Segments bir parçanın orijinal zaman çizelgesindeki dahil kesitlerini döner.
func Segments(p partition.Point, included []interval.TimeInterval) []interval.TimeInterval {
	return interval.Clip(included, p.StartSecs, p.EndSecs)
}

// Split isteği doğrular, parçaları hesaplar ve her parçayı havuzda bir iş olarak yazar.
// Bir parça başarısız olursa sonuç yine döner, hata ilk başarısız parçanın hatasıdır.
func (e *Executor) Split(ctx context.Context, req Request) (*Result, error) {
	stat, err := os.Stat(req.InputPath)
	if err != nil || stat.IsDir() {
		return nil, fmt.Errorf("girdi dosyası bulunamadı: %s", req.InputPath)
	}
	if err := e.prepareOutputDir(req.OutputDir); err != nil {
		return nil, err
	}

	meta, err := e.metadata(ctx, req, stat.Size())
	if err != nil {
		return nil, err
	}

	req.Exclusions = interval.ClampAll(req.Exclusions, meta.DurationSecs)
	points, ok := partition.Calculate(meta, req.TargetSizeBytes, req.Exclusions)
	if !ok || len(points) == 0 {
		return nil, ErrNoPartitions
	}

	jobs, err := e.jobs(req, meta.DurationSecs, points)
	if err != nil {
		return nil, err
	}

	pool := batch.NewPool(e.Options.Workers)
	pool.SetRetry(e.Options.Retry, e.Options.RetryDelay)
	pool.OnProgress = func(completed, total int) {
		if e.OnProgress != nil && total > 0 {
			e.OnProgress(float64(completed) * 100 / float64(total))
		}
	}

	e.log.Info().
		Str(logging.FieldPath, req.InputPath).
		Int("partitions", len(points)).
		Int("exclusions", len(req.Exclusions)).
		Msg("bölme başladı")

	res := &Result{Points: points, StartedAt: time.Now()}
	res.Results = pool.Execute(ctx, jobs)
	res.EndedAt = time.Now()
	res.Summary = batch.GetSummary(res.Results, res.EndedAt.Sub(res.StartedAt))

	for _, r := range res.Results {
		if r.Success {
			res.Outputs = append(res.Outputs, r.Job.OutputPath)
		}
	}

	if err := batch.FirstError(res.Results); err != nil {
		e.log.Error().Err(err).Int("failed", res.Summary.Failed).Msg("bölme başarısız")
		return res, err
	}
	e.log.Info().Int("created", res.Created()).Int("skipped", res.Summary.Skipped).Msg("bölme tamamlandı")
	return res, nil
}

func (e *Executor) prepareOutputDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("çıktı yolu bir dizin değil: %s", dir)
		}
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) || !e.Options.CreateOutputDir {
		return fmt.Errorf("çıktı dizini bulunamadı: %s", dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("çıktı dizini oluşturulamadı: %w", err)
	}
	return nil
}

func (e *Executor) metadata(ctx context.Context, req Request, size int64) (*partition.Metadata, error) {
	if req.Metadata != nil && req.Metadata.DurationSecs > 0 {
		m := *req.Metadata
		if m.FileSizeBytes <= 0 {
			m.FileSizeBytes = size
		}
		return &m, nil
	}

	m, err := media.New(e.Tools).Read(ctx, req.InputPath)
	if err != nil {
		return nil, fmt.Errorf("video süresi okunamadı: %w", err)
	}
	if m.DurationSecs <= 0 {
		return nil, fmt.Errorf("video süresi belirlenemedi: %s", req.InputPath)
	}
	return &partition.Metadata{DurationSecs: m.DurationSecs, FileSizeBytes: size}, nil
}

func (e *Executor) jobs(req Request, duration float64, points []partition.Point) ([]batch.Job, error) {
	included := interval.Included(req.Exclusions, duration)
	jobs := make([]batch.Job, 0, len(points))

	for _, p := range points {
		target := filepath.Join(req.OutputDir, OutputName(req.InputPath, p.Index+1))
		output, skip, err := ResolveOutputPathConflict(target, e.Options.OnConflict)
		if err != nil {
			return nil, err
		}

		segments := Segments(p, included)
		job := batch.Job{
			ID:         fmt.Sprintf("part%d", p.Index+1),
			Name:       filepath.Base(output),
			OutputPath: output,
		}
		if skip {
			job.SkipReason = "output_exists"
		}
		input := req.InputPath
		job.Run = func(ctx context.Context) error {
			return e.writePartition(ctx, input, output, segments)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// writePartition tek kesitli parçayı doğrudan, çok kesitli parçayı geçici dosyalar
// ve concat listesi üzerinden yazar.
func (e *Executor) writePartition(ctx context.Context, input, output string, segments []interval.TimeInterval) error {
	switch len(segments) {
	case 0:
		return fmt.Errorf("parça için dahil kesit yok: %s", filepath.Base(output))
	case 1:
		return e.extract(ctx, input, output, segments[0])
	}

	tmpDir, err := os.MkdirTemp(filepath.Dir(output), ".vp-"+filepath.Base(output)+"-")
	if err != nil {
		return fmt.Errorf("geçici dizin oluşturulamadı: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	ext := filepath.Ext(output)
	parts := make([]string, 0, len(segments))
	for i, seg := range segments {
		part := filepath.Join(tmpDir, fmt.Sprintf("seg_%03d%s", i, ext))
		if err := e.extract(ctx, input, part, seg); err != nil {
			return err
		}
		parts = append(parts, part)
	}

	listPath := filepath.Join(tmpDir, "concat.txt")
	if err := os.WriteFile(listPath, []byte(ffmpeg.ConcatList(parts)), 0644); err != nil {
		return fmt.Errorf("concat listesi yazılamadı: %w", err)
	}

	e.log.Debug().Str(logging.FieldPath, output).Int("segments", len(parts)).Msg("kesitler birleştiriliyor")
	return e.Tools.RunFFmpeg(ctx, "kesitler birleştirilemedi",
		"-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y", output,
	)
}

func (e *Executor) extract(ctx context.Context, input, output string, seg interval.TimeInterval) error {
	e.log.Debug().
		Str(logging.FieldPath, output).
		Float64("start", seg.StartSecs).
		Float64("end", seg.EndSecs).
		Msg("kesit çıkarılıyor")

	return e.Tools.RunFFmpeg(ctx, "kesit çıkarılamadı",
		"-loglevel", "error",
		"-i", input,
		"-ss", format.FFmpegTime(seg.StartSecs),
		"-to", format.FFmpegTime(seg.EndSecs),
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
		"-y", output,
	)
}
