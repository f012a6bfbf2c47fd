package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Color ANSI renk kodları
const (
	Reset   = "\033[0m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
)

// Icons kullanıcı dostu ikonlar
const (
	IconSuccess = "✅"
	IconError   = "❌"
	IconWarning = "⚠️ "
	IconInfo    = "ℹ️ "
	IconSplit   = "✂️ "
	IconFile    = "📄"
	IconImage   = "🖼️ "
	IconVideo   = "🎬"
	IconDone    = "🎉"
	IconTime    = "⏱️ "
	IconFolder  = "📁"
)

// Out tüm yazdırma yardımcılarının hedefidir.
var Out io.Writer = os.Stdout

// PrintBanner uygulama başlığını yazdırır
func PrintBanner(version string) {
	title := fmt.Sprintf("Video Partitioner  v%s", version)
	banner := `
` + Cyan + Bold + `
  ╔═══════════════════════════════════════════════╗
  ║        ` + fmt.Sprintf("%-39s", title) + `║
  ║   Videoları hedef boyutta parçalara böler     ║
  ╚═══════════════════════════════════════════════╝` + Reset + `
`
	fmt.Fprintln(Out, banner)
}

// PrintSuccess başarılı mesaj
func PrintSuccess(msg string) {
	fmt.Fprintf(Out, "%s %s%s%s\n", IconSuccess, Green, msg, Reset)
}

// PrintError hata mesajı
func PrintError(msg string) {
	fmt.Fprintf(Out, "%s %s%s%s\n", IconError, Red, msg, Reset)
}

// PrintWarning uyarı mesajı
func PrintWarning(msg string) {
	fmt.Fprintf(Out, "%s %s%s%s\n", IconWarning, Yellow, msg, Reset)
}

// PrintInfo bilgi mesajı
func PrintInfo(msg string) {
	fmt.Fprintf(Out, "%s %s%s%s\n", IconInfo, Blue, msg, Reset)
}

// PrintSplit bölme işlemi mesajı
func PrintSplit(input, outputDir string) {
	fmt.Fprintf(Out, "%s %s%s%s → %s%s%s\n", IconSplit, Dim, input, Reset, Green, outputDir, Reset)
}

// PrintDuration süre bilgisi
func PrintDuration(d time.Duration) {
	fmt.Fprintf(Out, "%s  Süre: %s%s%s\n", IconTime, Cyan, formatDuration(d), Reset)
}

// ProgressBar ilerleme çubuğu gösterir
type ProgressBar struct {
	Width int
	Label string

	percent float64
	done    bool
}

// NewProgressBar yeni bir progress bar oluşturur
func NewProgressBar(label string) *ProgressBar {
	return &ProgressBar{
		Width: 40,
		Label: label,
	}
}

// Percent son bildirilen yüzdedir.
func (pb *ProgressBar) Percent() float64 {
	return pb.percent
}

// Update ilerlemeyi 0-100 arası yüzdeyle günceller
func (pb *ProgressBar) Update(percent float64) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	pb.percent = percent
	filled := int(float64(pb.Width) * percent / 100)
	empty := pb.Width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)

	fmt.Fprintf(Out, "\r  %s%s%s [%s%s%s] %s%.0f%%%s",
		Bold, pb.Label, Reset,
		Green, bar, Reset,
		Cyan, percent, Reset)

	if percent >= 100 && !pb.done {
		pb.done = true
		fmt.Fprintln(Out) // Son satırda yeni satıra geç
	}
}

// PrintTable basit bir ASCII tablo yazdırır
func PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	// Sütun genişliklerini hesapla
	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = displayWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) && displayWidth(cell) > colWidths[i] {
				colWidths[i] = displayWidth(cell)
			}
		}
	}

	headerLine := "  │"
	for i, h := range headers {
		headerLine += fmt.Sprintf(" %s%s%s │", Bold, pad(h, colWidths[i]), Reset)
	}

	fmt.Fprintln(Out, border("  ┌", "┬", "┐", colWidths))
	fmt.Fprintln(Out, headerLine)
	fmt.Fprintln(Out, border("  ├", "┼", "┤", colWidths))

	for _, row := range rows {
		line := "  │"
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			line += fmt.Sprintf(" %s │", pad(cell, colWidths[i]))
		}
		fmt.Fprintln(Out, line)
	}

	fmt.Fprintln(Out, border("  └", "┴", "┘", colWidths))
}

func border(left, mid, right string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return left + strings.Join(parts, mid) + right
}

// displayWidth hücrenin terminaldeki genişliğidir; emoji ikonlar iki hücre kaplar.
func displayWidth(s string) int {
	return lipgloss.Width(s)
}

func pad(s string, width int) string {
	if n := displayWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintSplitSummary bölme özetini yazdırır
func PrintSplitSummary(total, succeeded, skipped, failed int, duration time.Duration) {
	fmt.Fprintln(Out)
	fmt.Fprintf(Out, "  %s %sBölme Tamamlandı%s\n", IconDone, Bold, Reset)
	fmt.Fprintln(Out, "  "+strings.Repeat("─", 40))
	fmt.Fprintf(Out, "  Toplam:    %s%d%s parça\n", Cyan, total, Reset)
	fmt.Fprintf(Out, "  Başarılı:  %s%d%s parça\n", Green, succeeded, Reset)
	if skipped > 0 {
		fmt.Fprintf(Out, "  Atlanan:   %s%d%s parça\n", Yellow, skipped, Reset)
	}
	if failed > 0 {
		fmt.Fprintf(Out, "  Başarısız: %s%d%s parça\n", Red, failed, Reset)
	}
	fmt.Fprintf(Out, "  Süre:      %s%s%s\n", Yellow, formatDuration(duration), Reset)
	fmt.Fprintln(Out)
}

// formatDuration süreyi okunabilir formata çevirir
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.2fµs", float64(d.Microseconds()))
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Milliseconds()))
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

// KindIcon dosya türünün ikonunu döner: "dir", "video", "image"
func KindIcon(kind string) string {
	switch kind {
	case "dir":
		return IconFolder
	case "video":
		return IconVideo
	case "image":
		return IconImage
	}
	return IconFile
}
