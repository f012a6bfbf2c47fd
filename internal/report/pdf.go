package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/mlihgenel/videopartitioner/internal/format"
)

// findSystemFont UTF-8 destekli bir sistem fontu arar
func findSystemFont() string {
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{
			"/System/Library/Fonts/Supplemental/Arial.ttf",
			"/Library/Fonts/Arial.ttf",
		}
	case "linux":
		candidates = []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
			"/usr/share/fonts/TTF/DejaVuSans.ttf",
		}
	case "windows":
		candidates = []string{
			"C:\\Windows\\Fonts\\arial.ttf",
			"C:\\Windows\\Fonts\\segoeui.ttf",
		}
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

type pdfWriter struct {
	p       *gofpdf.Fpdf
	hasUTF8 bool
}

func newPDFWriter() *pdfWriter {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetMargins(15, 15, 15)
	p.SetAutoPageBreak(true, 15)

	w := &pdfWriter{p: p}
	if fontPath := findSystemFont(); fontPath != "" {
		p.SetFontLocation(filepath.Dir(fontPath))
		p.AddUTF8Font("Sans", "", filepath.Base(fontPath))
		p.AddUTF8Font("Sans", "B", filepath.Base(fontPath))
		w.hasUTF8 = p.Ok()
		if !w.hasUTF8 {
			p.ClearError()
		}
	}
	return w
}

func (w *pdfWriter) font(style string, size float64) {
	if w.hasUTF8 {
		w.p.SetFont("Sans", style, size)
	} else {
		w.p.SetFont("Helvetica", style, size)
	}
}

// text UTF-8 font yoksa Türkçe karakterleri Latin karşılıklarına çevirir.
func (w *pdfWriter) text(s string) string {
	if w.hasUTF8 {
		return s
	}
	return strings.NewReplacer(
		"ç", "c", "Ç", "C",
		"ğ", "g", "Ğ", "G",
		"ı", "i", "İ", "I",
		"ö", "o", "Ö", "O",
		"ş", "s", "Ş", "S",
		"ü", "u", "Ü", "U",
	).Replace(s)
}

func (w *pdfWriter) line(label, value string) {
	w.font("B", 10)
	w.p.CellFormat(35, 6, w.text(label), "", 0, "", false, 0, "")
	w.font("", 10)
	w.p.MultiCell(0, 6, w.text(value), "", "", false)
}

func (w *pdfWriter) table(header []string, widths []float64, rows [][]string) {
	w.p.SetDrawColor(200, 200, 200)
	w.font("B", 9)
	w.p.SetFillColor(240, 240, 240)
	for i, h := range header {
		w.p.CellFormat(widths[i], 7, " "+w.text(h), "1", 0, "", true, 0, "")
	}
	w.p.Ln(7)

	w.font("", 9)
	for _, row := range rows {
		for i, cell := range row {
			cell = w.text(cell)
			for w.p.GetStringWidth(cell) > widths[i]-3 && len(cell) > 3 {
				cell = cell[:len(cell)-4] + "..."
			}
			w.p.CellFormat(widths[i], 7, " "+cell, "1", 0, "", false, 0, "")
		}
		w.p.Ln(7)
	}
}

func renderPDF(r Report) ([]byte, error) {
	w := newPDFWriter()
	w.p.SetTitle(r.Title, w.hasUTF8)
	w.p.AddPage()

	w.font("B", 18)
	w.p.CellFormat(0, 10, w.text(r.Title), "", 1, "", false, 0, "")
	w.p.Ln(2)

	w.line("Video:", r.Video)
	w.line("Duration:", format.Duration(r.DurationSecs))
	w.line("Size:", format.FileSize(r.FileSizeBytes))
	w.line("Target:", format.FileSize(r.TargetSizeBytes))
	w.line("Effective:", format.Duration(r.Summary.EffectiveSecs))
	if r.Batch != nil {
		w.line("Result:", fmt.Sprintf("%d ok, %d skipped, %d failed", r.Batch.Succeeded, r.Batch.Skipped, r.Batch.Failed))
	}
	w.p.Ln(4)

	if len(r.Exclusions) > 0 {
		rows := make([][]string, 0, len(r.Exclusions))
		for i, ex := range r.Exclusions {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1), format.FFmpegTime(ex.StartSecs), format.FFmpegTime(ex.EndSecs), format.Duration(ex.Len()),
			})
		}
		w.table([]string{"#", "Start", "End", "Length"}, []float64{15, 50, 50, 65}, rows)
		w.p.Ln(4)
	}

	rows := make([][]string, 0, len(r.Items))
	for _, it := range r.Items {
		out := "-"
		if it.Output != "" {
			out = filepath.Base(it.Output)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", it.Index+1),
			format.FFmpegTime(it.StartSecs),
			format.FFmpegTime(it.EndSecs),
			format.FileSize(it.EstimatedSizeBytes),
			it.Status,
			out,
		})
	}
	w.table([]string{"#", "Start", "End", "Estimated", "Status", "Output"}, []float64{10, 32, 32, 28, 22, 56}, rows)

	var buf bytes.Buffer
	if err := w.p.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF oluşturulamadı: %w", err)
	}
	return buf.Bytes(), nil
}
