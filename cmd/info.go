package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mlihgenel/videopartitioner/internal/format"
	"github.com/mlihgenel/videopartitioner/internal/media"
	"github.com/mlihgenel/videopartitioner/internal/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info <video>",
	Short: "Video hakkında detaylı bilgi göster",
	Long: `Bir videonun format, boyut, süre, çözünürlük ve codec bilgilerini gösterir.
Önce ffmpeg çıktısı hızlıca okunur, ardından ffprobe ile eksik alanlar tamamlanır.

Örnekler:
  videopartitioner info film.mkv
  videopartitioner info film.mkv --output-format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkOutputFormat(); err != nil {
			return err
		}
		tools, err := newToolkit()
		if err != nil {
			return fmt.Errorf("ffmpeg bulunamadı, 'videopartitioner doctor --install' ile kurabilirsiniz: %w", err)
		}

		meta, err := media.New(tools).Read(cmd.Context(), args[0])
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}

		return emit(meta, func() { printVideoInfo(meta) })
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printVideoInfo(m media.Metadata) {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E2E8F0")).
		Width(16)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#64748B"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#334155")).
		Padding(1, 2).
		MarginTop(1)

	var lines []string
	lines = append(lines, headerStyle.Render(fmt.Sprintf("%s  %s", ui.IconVideo, m.FileName)))
	lines = append(lines, dimStyle.Render(strings.Repeat("─", 40)))

	lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Format", strings.ToUpper(m.Format)))
	lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Boyut", format.FileSize(m.FileSize)))
	if m.DurationSecs > 0 {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Süre", format.Duration(m.DurationSecs)))
	}
	if r := m.Resolution(); r != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Çözünürlük", r))
	}
	if m.VideoCodec != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Video Codec", m.VideoCodec))
	}
	if m.AudioCodec != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Ses Codec", m.AudioCodec))
	}
	if m.Bitrate > 0 {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Bitrate", fmt.Sprintf("%d kb/s", m.Bitrate/1000)))
	}
	if m.FPS > 0 {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "FPS", fmt.Sprintf("%.2f", m.FPS)))
	}

	fmt.Fprintln(ui.Out, boxStyle.Render(strings.Join(lines, "\n")))
}

func formatInfoLine(labelStyle, valueStyle lipgloss.Style, label, value string) string {
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}
