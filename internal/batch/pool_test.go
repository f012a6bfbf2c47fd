package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestPoolRetryEventuallySucceeds(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "movie_part1.mp4")

	attempts := 0
	jobs := []Job{
		{
			Name:       "part1",
			OutputPath: output,
			Run: func(ctx context.Context) error {
				attempts++
				if attempts <= 2 {
					return fmt.Errorf("forced failure")
				}
				return os.WriteFile(output, []byte("ok"), 0644)
			},
		},
	}

	pool := NewPool(1)
	pool.SetRetry(2, 0)
	results := pool.Execute(context.Background(), jobs)
	if len(results) != 1 {
		t.Fatalf("unexpected result count: %d", len(results))
	}

	r := results[0]
	if !r.Success {
		t.Fatalf("expected success, got error: %v", r.Error)
	}
	if r.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", r.Attempts)
	}
	if r.OutputSize == 0 {
		t.Fatalf("expected output size to be set")
	}
}

func TestPoolSkippedJobAndSummary(t *testing.T) {
	pool := NewPool(1)
	results := pool.Execute(context.Background(), []Job{
		{Name: "a", OutputPath: "b", SkipReason: "output_exists"},
	})
	if len(results) != 1 {
		t.Fatalf("unexpected result count: %d", len(results))
	}
	if !results[0].Skipped {
		t.Fatalf("expected skipped job")
	}

	summary := GetSummary(results, 0)
	if summary.Skipped != 1 {
		t.Fatalf("expected skipped summary to be 1, got %d", summary.Skipped)
	}
	if summary.Failed != 0 {
		t.Fatalf("expected failed summary to be 0, got %d", summary.Failed)
	}
}

func TestPoolResultsKeepJobOrderAndReportProgress(t *testing.T) {
	var jobs []Job
	for i := 0; i < 8; i++ {
		jobs = append(jobs, Job{Name: fmt.Sprintf("part%d", i+1), Run: func(context.Context) error { return nil }})
	}

	var mu sync.Mutex
	var progress []int
	pool := NewPool(4)
	pool.OnProgress = func(completed, total int) {
		mu.Lock()
		defer mu.Unlock()
		if total != 8 {
			t.Errorf("unexpected total: %d", total)
		}
		progress = append(progress, completed)
	}

	results := pool.Execute(context.Background(), jobs)
	for i, r := range results {
		if r.Index != i || r.Job.Name != jobs[i].Name {
			t.Fatalf("unexpected order at %d: %+v", i, r)
		}
	}
	if len(progress) != 8 || progress[7] != 8 {
		t.Fatalf("unexpected progress calls: %v", progress)
	}
}

func TestPoolFailureSummaryAndFirstError(t *testing.T) {
	boom := errors.New("boom")
	pool := NewPool(2)
	pool.SetRetry(1, 0)
	results := pool.Execute(context.Background(), []Job{
		{Name: "ok", Run: func(context.Context) error { return nil }},
		{Name: "bad", Run: func(context.Context) error { return boom }},
	})

	summary := GetSummary(results, 0)
	if summary.Failed != 1 || summary.Succeeded != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Errors[0].Name != "bad" || summary.Errors[0].Attempts != 2 {
		t.Fatalf("unexpected job error: %+v", summary.Errors[0])
	}
	if !errors.Is(FirstError(results), boom) {
		t.Fatalf("expected first error to be boom")
	}
}

func TestPoolCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	results := NewPool(1).Execute(ctx, []Job{{Name: "x", Run: func(context.Context) error { ran = true; return nil }}})
	if ran {
		t.Fatalf("expected job not to run after cancellation")
	}
	if !errors.Is(results[0].Error, context.Canceled) {
		t.Fatalf("unexpected error: %v", results[0].Error)
	}
}
