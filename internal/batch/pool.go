package batch

import (
	"context"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Job havuzda çalıştırılacak tek bir iştir
type Job struct {
	ID         string
	Name       string
	OutputPath string
	SkipReason string
	Run        func(ctx context.Context) error
}

// JobResult bir işin sonucunu tutar
type JobResult struct {
	Job        Job
	Index      int
	Success    bool
	Skipped    bool
	Attempts   int
	OutputSize int64
	SkipReason string
	Error      error
	Duration   time.Duration
}

// Pool worker pool'u yönetir
type Pool struct {
	Workers    int
	RetryMax   int
	RetryDelay time.Duration
	Results    []JobResult
	mu         sync.Mutex
	processed  atomic.Int64
	totalJobs  int
	OnProgress func(completed, total int) // İlerleme callback'i
}

// NewPool yeni bir worker pool oluşturur
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	// Çok fazla worker açmayı engelle
	maxWorkers := runtime.NumCPU() * 2
	if workers > maxWorkers {
		workers = maxWorkers
	}

	return &Pool{
		Workers:    workers,
		RetryDelay: 500 * time.Millisecond,
	}
}

// SetRetry retry davranışını ayarlar.
func (p *Pool) SetRetry(max int, delay time.Duration) {
	if max < 0 {
		max = 0
	}
	p.RetryMax = max

	if delay >= 0 {
		p.RetryDelay = delay
	}
}

type indexedJob struct {
	index int
	job   Job
}

// Execute verilen işleri paralel olarak çalıştırır. Sonuçlar iş sırasıyla döner.
// ctx iptal edilirse henüz başlamamış işler ctx hatasıyla sonuçlanır.
func (p *Pool) Execute(ctx context.Context, jobs []Job) []JobResult {
	p.totalJobs = len(jobs)
	p.Results = make([]JobResult, 0, len(jobs))
	p.processed.Store(0)

	if len(jobs) == 0 {
		return p.Results
	}

	// Worker sayısını iş sayısına göre ayarla
	workers := p.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	jobChan := make(chan indexedJob, len(jobs))
	resultChan := make(chan JobResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ij := range jobChan {
				result := p.processJob(ctx, ij.job)
				result.Index = ij.index
				resultChan <- result
			}
		}()
	}

	for i, job := range jobs {
		jobChan <- indexedJob{index: i, job: job}
	}
	close(jobChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Sonuçları oku ve ilerleme bildir
	for result := range resultChan {
		p.mu.Lock()
		p.Results = append(p.Results, result)
		p.mu.Unlock()

		completed := int(p.processed.Add(1))
		if p.OnProgress != nil {
			p.OnProgress(completed, p.totalJobs)
		}
	}

	sort.Slice(p.Results, func(i, j int) bool { return p.Results[i].Index < p.Results[j].Index })
	return p.Results
}

// processJob tek bir işi retry politikasıyla çalıştırır
func (p *Pool) processJob(ctx context.Context, job Job) JobResult {
	start := time.Now()

	if job.SkipReason != "" {
		return JobResult{
			Job:        job,
			Skipped:    true,
			SkipReason: job.SkipReason,
			Duration:   time.Since(start),
		}
	}

	var lastErr error
	attempts := p.RetryMax + 1
	if attempts <= 0 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return JobResult{Job: job, Attempts: attempt - 1, Error: err, Duration: time.Since(start)}
		}

		err := job.Run(ctx)
		if err == nil {
			size := int64(0)
			if job.OutputPath != "" {
				if info, statErr := os.Stat(job.OutputPath); statErr == nil {
					size = info.Size()
				}
			}
			return JobResult{
				Job:        job,
				Success:    true,
				Attempts:   attempt,
				OutputSize: size,
				Duration:   time.Since(start),
			}
		}

		lastErr = err
		if attempt < attempts && p.RetryDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(p.RetryDelay):
			}
		}
	}

	return JobResult{
		Job:      job,
		Attempts: attempts,
		Error:    lastErr,
		Duration: time.Since(start),
	}
}

// Summary toplu iş sonuçlarını özetler
type Summary struct {
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration_ns"`
	Errors    []JobError    `json:"errors,omitempty"`
}

// JobError başarısız olan bir işin hata bilgisi
type JobError struct {
	Name     string `json:"name"`
	Error    string `json:"error"`
	Attempts int    `json:"attempts"`
}

// GetSummary iş sonuçlarından özet oluşturur
func GetSummary(results []JobResult, totalDuration time.Duration) Summary {
	s := Summary{
		Total:    len(results),
		Duration: totalDuration,
	}

	for _, r := range results {
		if r.Success {
			s.Succeeded++
		} else if r.Skipped {
			s.Skipped++
		} else {
			s.Failed++
			msg := "bilinmeyen hata"
			if r.Error != nil {
				msg = r.Error.Error()
			}
			s.Errors = append(s.Errors, JobError{
				Name:     r.Job.Name,
				Error:    msg,
				Attempts: r.Attempts,
			})
		}
	}

	return s
}

// FirstError ilk başarısız işin hatasını döner.
func FirstError(results []JobResult) error {
	for _, r := range results {
		if !r.Success && !r.Skipped && r.Error != nil {
			return r.Error
		}
	}
	return nil
}
