// Package thumbnail zaman çizelgesi için video karelerini çıkarır ve şerit görsel üretir.
package thumbnail

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/mlihgenel/videopartitioner/internal/ffmpeg"
	"github.com/mlihgenel/videopartitioner/internal/logging"
)

const (
	DefaultCount  = 20
	DefaultHeight = 60
)

// Generator ffmpeg ile küçük resim üretir.
type Generator struct {
	Tools *ffmpeg.Toolkit
	// Limit aynı anda çalışan ffmpeg sayısıdır; 0 ise CPU sayısı kullanılır.
	Limit int
}

// New yeni bir Generator oluşturur.
func New(tools *ffmpeg.Toolkit) *Generator {
	return &Generator{Tools: tools}
}

// FrameTime i. karenin zamanıdır: her dilimin ortası.
func FrameTime(i, count int, duration float64) float64 {
	return (float64(i) + 0.5) * duration / float64(count)
}

// Generate süreye eşit aralıklarla yayılmış count adet kareyi dir altına yazar.
// Dönen yollar kare sırasındadır.
func (g *Generator) Generate(ctx context.Context, path string, duration float64, count, height int, dir string) ([]string, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("geçersiz video süresi: %v", duration)
	}
	if count <= 0 {
		count = DefaultCount
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("küçük resim dizini oluşturulamadı: %w", err)
	}

	limit := g.Limit
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	paths := make([]string, count)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i := 0; i < count; i++ {
		out := filepath.Join(dir, fmt.Sprintf("thumb_%03d.jpg", i))
		at := FrameTime(i, count, duration)
		paths[i] = out
		eg.Go(func() error {
			return g.Tools.RunFFmpeg(ctx, "küçük resim çıkarılamadı",
				"-loglevel", "error",
				"-ss", ffmpeg.FormatSeconds(at),
				"-i", path,
				"-vframes", "1",
				"-vf", fmt.Sprintf("scale=-2:%d", height),
				"-q:v", "5",
				"-y", out,
			)
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	log := logging.WithComponent("thumbnail")
	log.Debug().
		Str(logging.FieldPath, path).
		Int("count", count).
		Msg("küçük resimler üretildi")
	return paths, nil
}

// CaptureFrame at saniyesindeki kareyi tam boyutta out dosyasına yazar.
func (g *Generator) CaptureFrame(ctx context.Context, path string, at float64, out string) error {
	if at < 0 {
		at = 0
	}
	return g.Tools.RunFFmpeg(ctx, "kare yakalanamadı",
		"-loglevel", "error",
		"-ss", ffmpeg.FormatSeconds(at),
		"-i", path,
		"-vframes", "1",
		"-y", out,
	)
}

// Strip kareleri aynı yüksekliğe ölçekleyip yan yana tek bir görselde birleştirir.
// Çıktı formatı uzantıdan belirlenir: png (varsayılan), jpg veya webp.
func Strip(thumbs []string, height int, out string) error {
	if len(thumbs) == 0 {
		return fmt.Errorf("şerit için küçük resim yok")
	}
	if height <= 0 {
		height = DefaultHeight
	}

	frames := make([]image.Image, 0, len(thumbs))
	width := 0
	for _, p := range thumbs {
		img, err := decode(p)
		if err != nil {
			return err
		}
		b := img.Bounds()
		if b.Dy() == 0 {
			continue
		}
		w := b.Dx() * height / b.Dy()
		if w < 1 {
			w = 1
		}
		width += w
		frames = append(frames, img)
	}
	if width == 0 {
		return fmt.Errorf("şerit için geçerli kare yok")
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	x := 0
	for _, img := range frames {
		b := img.Bounds()
		w := b.Dx() * height / b.Dy()
		if w < 1 {
			w = 1
		}
		xdraw.CatmullRom.Scale(dst, image.Rect(x, 0, x+w, height), img, b, xdraw.Over, nil)
		x += w
	}

	return encode(out, dst)
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("küçük resim açılamadı: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("küçük resim okunamadı (%s): %w", filepath.Base(path), err)
	}
	return img, nil
}

func encode(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("çıktı dosyası oluşturulamadı: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "jpg", "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 85})
	case "webp":
		err = nativewebp.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("görsel encode hatası (%s): %w", ext, err)
	}
	return nil
}
