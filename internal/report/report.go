// Package report parça planı ve bölme sonuçları için rapor üretir.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mlihgenel/videopartitioner/internal/batch"
	"github.com/mlihgenel/videopartitioner/internal/config"
	"github.com/mlihgenel/videopartitioner/internal/format"
	"github.com/mlihgenel/videopartitioner/internal/interval"
	"github.com/mlihgenel/videopartitioner/internal/partition"
)

const (
	Off  = "off"
	TXT  = "txt"
	JSON = "json"
	MD   = "md"
	HTML = "html"
	PDF  = "pdf"
)

// Item durumları
const (
	StatusPlanned = "planned"
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Item tek bir parçanın rapor satırıdır.
type Item struct {
	Index              int     `json:"index"`
	StartSecs          float64 `json:"start_secs"`
	EndSecs            float64 `json:"end_secs"`
	EstimatedSizeBytes int64   `json:"estimated_size_bytes"`
	Output             string  `json:"output,omitempty"`
	Status             string  `json:"status"`
	Attempts           int     `json:"attempts,omitempty"`
	OutputSize         int64   `json:"output_size,omitempty"`
	DurationMS         int64   `json:"duration_ms,omitempty"`
	SkipReason         string  `json:"skip_reason,omitempty"`
	Error              string  `json:"error,omitempty"`
}

// Report plan veya bölme raporudur.
type Report struct {
	Title           string                  `json:"title"`
	SessionID       string                  `json:"session_id,omitempty"`
	Video           string                  `json:"video"`
	DurationSecs    float64                 `json:"duration_secs"`
	FileSizeBytes   int64                   `json:"file_size_bytes"`
	TargetSizeBytes int64                   `json:"target_size_bytes"`
	Exclusions      []interval.TimeInterval `json:"exclusions"`
	Summary         partition.Summary       `json:"summary"`
	Items           []Item                  `json:"items"`
	StartedAt       time.Time               `json:"started_at,omitempty"`
	EndedAt         time.Time               `json:"ended_at,omitempty"`
	Batch           *batch.Summary          `json:"batch,omitempty"`
}

// NormalizeFormat rapor formatını normalize eder. Geçersiz format için boş döner.
func NormalizeFormat(f string) string {
	switch v := strings.ToLower(strings.TrimSpace(f)); v {
	case "", Off:
		return Off
	case TXT, JSON, MD, HTML, PDF:
		return v
	case "markdown":
		return MD
	default:
		return ""
	}
}

// FromPlan hesaplanan parçalardan plan raporu oluşturur.
func FromPlan(sessionID, video string, meta partition.Metadata, targetSizeBytes int64, exclusions []interval.TimeInterval, points []partition.Point) Report {
	r := Report{
		Title:           "Partition Plan",
		SessionID:       sessionID,
		Video:           video,
		DurationSecs:    meta.DurationSecs,
		FileSizeBytes:   meta.FileSizeBytes,
		TargetSizeBytes: targetSizeBytes,
		Exclusions:      exclusions,
		Summary:         partition.Summarize(meta, targetSizeBytes, exclusions, points),
	}
	for _, p := range points {
		r.Items = append(r.Items, Item{
			Index:              p.Index,
			StartSecs:          p.StartSecs,
			EndSecs:            p.EndSecs,
			EstimatedSizeBytes: p.EstimatedSizeBytes,
			Status:             StatusPlanned,
		})
	}
	return r
}

// ApplyResults iş sonuçlarını parça satırlarına işler. results[i] i. parçaya aittir.
func (r *Report) ApplyResults(results []batch.JobResult, startedAt, endedAt time.Time) {
	r.Title = "Split Report"
	r.StartedAt = startedAt
	r.EndedAt = endedAt
	summary := batch.GetSummary(results, endedAt.Sub(startedAt))
	r.Batch = &summary

	for _, res := range results {
		if res.Index < 0 || res.Index >= len(r.Items) {
			continue
		}
		item := &r.Items[res.Index]
		item.Output = res.Job.OutputPath
		item.Attempts = res.Attempts
		item.OutputSize = res.OutputSize
		item.DurationMS = res.Duration.Milliseconds()
		switch {
		case res.Success:
			item.Status = StatusSuccess
		case res.Skipped:
			item.Status = StatusSkipped
			item.SkipReason = res.SkipReason
		default:
			item.Status = StatusFailed
			if res.Error != nil {
				item.Error = res.Error.Error()
			}
		}
	}
}

// Render raporu verilen formatta üretir. Off için nil döner.
func Render(f string, r Report) ([]byte, error) {
	switch NormalizeFormat(f) {
	case Off:
		return nil, nil
	case TXT:
		return []byte(renderTXT(r)), nil
	case JSON:
		return json.MarshalIndent(r, "", "  ")
	case MD:
		return []byte(renderMarkdown(r)), nil
	case HTML:
		return renderHTML(r)
	case PDF:
		return renderPDF(r)
	default:
		return nil, fmt.Errorf("gecersiz report formati: %s", f)
	}
}

// Write raporu dosyaya atomik olarak yazar.
func Write(path, f string, r Report) error {
	data, err := Render(f, r)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	return config.WriteFileAtomic(path, data, 0644)
}

func renderTXT(r Report) string {
	var b strings.Builder
	b.WriteString(r.Title + "\n")
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Video:     %s\n", r.Video))
	b.WriteString(fmt.Sprintf("Duration:  %s\n", format.Duration(r.DurationSecs)))
	b.WriteString(fmt.Sprintf("Size:      %s\n", format.FileSize(r.FileSizeBytes)))
	b.WriteString(fmt.Sprintf("Target:    %s\n", format.FileSize(r.TargetSizeBytes)))
	b.WriteString(fmt.Sprintf("Excluded:  %s (%d range)\n", format.Duration(r.Summary.ExcludedSecs), len(r.Exclusions)))
	b.WriteString(fmt.Sprintf("Effective: %s\n", format.Duration(r.Summary.EffectiveSecs)))
	if !r.StartedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Started:   %s\n", r.StartedAt.Format(time.RFC3339)))
		b.WriteString(fmt.Sprintf("Ended:     %s\n", r.EndedAt.Format(time.RFC3339)))
	}
	if r.Batch != nil {
		b.WriteString(fmt.Sprintf("Succeeded: %d\n", r.Batch.Succeeded))
		b.WriteString(fmt.Sprintf("Skipped:   %d\n", r.Batch.Skipped))
		b.WriteString(fmt.Sprintf("Failed:    %d\n", r.Batch.Failed))
	}
	b.WriteString("\nPartitions:\n")

	for _, it := range r.Items {
		b.WriteString(fmt.Sprintf("- [%s] #%d %s -> %s (~%s)",
			it.Status, it.Index+1, format.FFmpegTime(it.StartSecs), format.FFmpegTime(it.EndSecs), format.FileSize(it.EstimatedSizeBytes)))
		if it.Output != "" {
			b.WriteString(" " + it.Output)
		}
		if it.Attempts > 0 {
			b.WriteString(fmt.Sprintf(" (attempts=%d)", it.Attempts))
		}
		if it.OutputSize > 0 {
			b.WriteString(fmt.Sprintf(" (size=%d)", it.OutputSize))
		}
		if it.SkipReason != "" {
			b.WriteString(fmt.Sprintf(" (reason=%s)", it.SkipReason))
		}
		if it.Error != "" {
			b.WriteString(fmt.Sprintf(" (error=%s)", it.Error))
		}
		b.WriteString("\n")
	}

	return b.String()
}
