package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videopartitioner/internal/ffmpeg"
	"github.com/mlihgenel/videopartitioner/internal/format"
	"github.com/mlihgenel/videopartitioner/internal/media"
	"github.com/mlihgenel/videopartitioner/internal/thumbnail"
	"github.com/mlihgenel/videopartitioner/internal/ui"
)

var (
	thumbsCount  int
	thumbsHeight int
	thumbsDir    string
	thumbsStrip  string
	thumbsAt     string
)

type thumbsOutput struct {
	Video      string   `json:"video"`
	Dir        string   `json:"dir,omitempty"`
	Thumbnails []string `json:"thumbnails,omitempty"`
	Strip      string   `json:"strip,omitempty"`
	Frame      string   `json:"frame,omitempty"`
}

var thumbsCmd = &cobra.Command{
	Use:   "thumbs <video>",
	Short: "Zaman çizelgesi için küçük resimler üret",
	Long: `Videonun süresine eşit aralıklarla yayılmış küçük resimler üretir.
--strip ile kareler tek bir şerit görselde (png, jpg veya webp) birleştirilir.
--at ile verilen andaki tek bir kare tam boyutta yakalanır.

Örnekler:
  videopartitioner thumbs film.mkv
  videopartitioner thumbs film.mkv --count 30 --height 90 --dir ./kareler
  videopartitioner thumbs film.mkv --strip film-strip.webp
  videopartitioner thumbs film.mkv --at 01:02:03`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkOutputFormat(); err != nil {
			return err
		}
		video := args[0]
		applyThumbnailDefaults(cmd, "count", &thumbsCount, "height", &thumbsHeight)

		tools, err := newToolkit()
		if err != nil {
			return fmt.Errorf("ffmpeg bulunamadı, 'videopartitioner doctor --install' ile kurabilirsiniz: %w", err)
		}
		gen := thumbnail.New(tools)
		if workers > 0 {
			gen.Limit = workers
		}
		out := thumbsOutput{Video: video}

		if thumbsAt != "" {
			return captureSingleFrame(cmd, gen, video, &out)
		}

		meta, err := media.New(tools).Read(cmd.Context(), video)
		if err != nil {
			return err
		}

		dir := thumbsDir
		if dir == "" {
			base := outputDir
			if base == "" {
				base = filepath.Dir(video)
			}
			dir = filepath.Join(base, videoStem(video)+"_thumbs")
		}
		out.Dir = dir

		paths, err := gen.Generate(cmd.Context(), video, meta.DurationSecs, thumbsCount, thumbsHeight, dir)
		if err != nil {
			return err
		}
		out.Thumbnails = paths

		if thumbsStrip != "" {
			if err := thumbnail.Strip(paths, thumbsHeight, thumbsStrip); err != nil {
				return err
			}
			out.Strip = thumbsStrip
		}

		if isJSONOutput() {
			return printJSON(out)
		}
		ui.PrintSuccess(fmt.Sprintf("%d küçük resim üretildi: %s", len(paths), dir))
		if out.Strip != "" {
			ui.PrintSuccess(fmt.Sprintf("Şerit yazıldı: %s", out.Strip))
		}
		return nil
	},
}

func captureSingleFrame(cmd *cobra.Command, gen *thumbnail.Generator, video string, out *thumbsOutput) error {
	at, err := format.ParseSeconds(thumbsAt)
	if err != nil {
		return fmt.Errorf("gecersiz zaman: %s", thumbsAt)
	}
	dir := thumbsDir
	if dir == "" {
		dir = outputDir
	}
	if dir == "" {
		dir = filepath.Dir(video)
	}
	path := filepath.Join(dir, frameFileName(video, at))
	if err := gen.CaptureFrame(cmd.Context(), video, at, path); err != nil {
		return err
	}
	out.Frame = path
	if isJSONOutput() {
		return printJSON(out)
	}
	ui.PrintSuccess(fmt.Sprintf("Kare yakalandı: %s", path))
	return nil
}

// frameFileName tek kare için {isim}_{zaman}.jpg adını üretir.
func frameFileName(video string, at float64) string {
	return fmt.Sprintf("%s_%s.jpg", videoStem(video), strings.ReplaceAll(ffmpeg.FormatSeconds(at), ".", "_"))
}

func videoStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func init() {
	thumbsCmd.Flags().IntVar(&thumbsCount, "count", 0, "Küçük resim sayısı (varsayılan 20)")
	thumbsCmd.Flags().IntVar(&thumbsHeight, "height", 0, "Küçük resim yüksekliği (px, varsayılan 60)")
	thumbsCmd.Flags().StringVar(&thumbsDir, "dir", "", "Küçük resim dizini (varsayılan: {isim}_thumbs)")
	thumbsCmd.Flags().StringVar(&thumbsStrip, "strip", "", "Kareleri tek şerit görselde birleştir (png, jpg, webp)")
	thumbsCmd.Flags().StringVar(&thumbsAt, "at", "", "Yalnızca verilen andaki kareyi yakala (saniye veya SS:DD:ss)")
	rootCmd.AddCommand(thumbsCmd)
}
