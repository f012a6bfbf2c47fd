// Package ffmpeg harici ffmpeg/ffprobe süreçlerini çalıştırmak için ortak yardımcıları içerir.
package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// ErrToolNotFound ffmpeg veya ffprobe sistemde bulunamadığında döner.
var ErrToolNotFound = errors.New("araç bulunamadı")

// Runner harici bir komutu çalıştırıp birleşik çıktısını döner.
// Testlerde sahte uygulamalarla değiştirilir.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner os/exec ile gerçek süreç başlatır.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Toolkit çözülmüş araç yolları ve çalıştırıcıdır.
type Toolkit struct {
	Runner  Runner
	FFmpeg  string
	FFprobe string
}

// Default sistemdeki araçları bulur. ffprobe bulunamazsa FFprobe boş kalır.
func Default() (*Toolkit, error) {
	ffmpegPath, err := Locate("ffmpeg")
	if err != nil {
		return nil, err
	}
	ffprobePath, _ := Locate("ffprobe")
	return &Toolkit{Runner: ExecRunner{}, FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

// RunFFmpeg ffmpeg'i çalıştırır; hata durumunda çıktıyı hata mesajına ekler.
func (t *Toolkit) RunFFmpeg(ctx context.Context, prefix string, args ...string) error {
	if t.FFmpeg == "" {
		return fmt.Errorf("ffmpeg: %w", ErrToolNotFound)
	}
	if out, err := t.Runner.Run(ctx, t.FFmpeg, args...); err != nil {
		return fmt.Errorf("%s: %s\n%s", prefix, err.Error(), string(out))
	}
	return nil
}

// Output komutu çalıştırıp çıktıyı hatayla birlikte döner.
func (t *Toolkit) Output(ctx context.Context, tool string, args ...string) ([]byte, error) {
	path := t.FFmpeg
	if tool == "ffprobe" {
		path = t.FFprobe
	}
	if path == "" {
		return nil, fmt.Errorf("%s: %w", tool, ErrToolNotFound)
	}
	return t.Runner.Run(ctx, path, args...)
}

// Locate aracı önce FFMPEG_PATH/FFPROBE_PATH değişkeninde, sonra PATH'te
// ve işletim sistemine göre bilinen dizinlerde arar.
func Locate(tool string) (string, error) {
	if envPath := os.Getenv(strings.ToUpper(tool) + "_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	paths := []string{tool}
	switch runtime.GOOS {
	case "darwin":
		paths = append(paths, "/opt/homebrew/bin/"+tool, "/usr/local/bin/"+tool)
	case "linux":
		paths = append(paths, "/usr/bin/"+tool, "/usr/local/bin/"+tool, "/snap/bin/"+tool)
	case "windows":
		paths = append(paths, `C:\ffmpeg\bin\`+tool+".exe")
	}

	for _, p := range paths {
		if path, err := exec.LookPath(p); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s: %w", tool, ErrToolNotFound)
}

// VersionLine aracın -version çıktısının ilk satırını döner.
func VersionLine(ctx context.Context, r Runner, path string) string {
	out, err := r.Run(ctx, path, "-version")
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line)
}

// FormatSeconds ffmpeg argümanı olarak saniye değeri üretir.
func FormatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// EscapeConcatPath concat listesindeki tek tırnaklı yolu kaçışlar.
func EscapeConcatPath(path string) string {
	return strings.ReplaceAll(path, "'", "'\\''")
}

// ConcatList concat demuxer için liste dosyası içeriğini üretir.
func ConcatList(paths []string) string {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString("file '")
		b.WriteString(EscapeConcatPath(p))
		b.WriteString("'\n")
	}
	return b.String()
}
