// Package media video dosyalarının meta verisini ffmpeg ve ffprobe ile okur.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mlihgenel/videopartitioner/internal/ffmpeg"
	"github.com/mlihgenel/videopartitioner/internal/partition"
)

// ErrToolNotFound ffmpeg/ffprobe bulunamadığında döner.
var ErrToolNotFound = ffmpeg.ErrToolNotFound

const unknownCodec = "unknown"

// Metadata bir video dosyası hakkında okunan bilgilerdir.
type Metadata struct {
	Path         string  `json:"path"`
	FileName     string  `json:"file_name"`
	Format       string  `json:"format"`
	FileSize     int64   `json:"file_size_bytes"`
	DurationSecs float64 `json:"duration_secs"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
	VideoCodec   string  `json:"video_codec,omitempty"`
	AudioCodec   string  `json:"audio_codec,omitempty"`
	Bitrate      int64   `json:"bitrate,omitempty"`
	FPS          float64 `json:"fps,omitempty"`
}

// Resolution "1920x1080" biçiminde çözünürlük döner; bilinmiyorsa boş.
func (m Metadata) Resolution() string {
	if m.Width <= 0 || m.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}

// Partition hesaplayıcının ihtiyaç duyduğu alanları döner.
func (m Metadata) Partition() *partition.Metadata {
	return &partition.Metadata{DurationSecs: m.DurationSecs, FileSizeBytes: m.FileSize}
}

// Prober meta veri okuyucusudur.
type Prober struct {
	Tools *ffmpeg.Toolkit
}

// New verilen araç setiyle bir Prober oluşturur.
func New(tools *ffmpeg.Toolkit) *Prober {
	return &Prober{Tools: tools}
}

func statFile(path string) (Metadata, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("dosya bulunamadı: %s", path)
	}
	if stat.IsDir() {
		return Metadata{}, fmt.Errorf("dosya değil, dizin: %s", path)
	}
	return Metadata{
		Path:     path,
		FileName: filepath.Base(path),
		Format:   strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		FileSize: stat.Size(),
	}, nil
}

// QuickProbe "ffmpeg -i" çıktısından yaklaşık meta veriyi okur.
// ffmpeg çıktı dosyası verilmediği için hata koduyla çıkar; çıktı yine de işlenir.
func (p *Prober) QuickProbe(ctx context.Context, path string) (Metadata, error) {
	meta, err := statFile(path)
	if err != nil {
		return Metadata{}, err
	}

	out, runErr := p.Tools.Output(ctx, "ffmpeg", "-hide_banner", "-i", path)
	if len(out) == 0 && runErr != nil {
		return meta, fmt.Errorf("ffmpeg çalıştırılamadı: %w", runErr)
	}

	info := ParseFFmpegInfo(string(out))
	return Merge(meta, info), nil
}

// Probe ffprobe JSON çıktısından kesin meta veriyi okur.
func (p *Prober) Probe(ctx context.Context, path string) (Metadata, error) {
	meta, err := statFile(path)
	if err != nil {
		return Metadata{}, err
	}

	out, err := p.Tools.Output(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		return meta, fmt.Errorf("ffprobe başarısız: %w", err)
	}

	info, err := ParseProbeJSON(out)
	if err != nil {
		return meta, err
	}
	return Merge(meta, info), nil
}

// Read önce hızlı okumayı, ardından varsa ffprobe okumasını birleştirir.
// ffprobe başarısız olursa hızlı okuma sonucu döner.
func (p *Prober) Read(ctx context.Context, path string) (Metadata, error) {
	meta, err := p.QuickProbe(ctx, path)
	if err != nil && meta.Path == "" {
		return Metadata{}, err
	}
	if p.Tools.FFprobe == "" {
		return meta, nil
	}
	precise, perr := p.Probe(ctx, path)
	if perr != nil {
		if meta.DurationSecs > 0 {
			return meta, nil
		}
		return meta, perr
	}
	return Merge(meta, precise), nil
}

// Merge next içindeki sıfır olmayan alanları base üzerine yazar.
// "unknown" kodek boş sayılır.
func Merge(base, next Metadata) Metadata {
	if next.Path != "" {
		base.Path = next.Path
	}
	if next.FileName != "" {
		base.FileName = next.FileName
	}
	if next.Format != "" {
		base.Format = next.Format
	}
	if next.FileSize > 0 {
		base.FileSize = next.FileSize
	}
	if next.DurationSecs > 0 {
		base.DurationSecs = next.DurationSecs
	}
	if next.Width > 0 && next.Height > 0 {
		base.Width = next.Width
		base.Height = next.Height
	}
	if codecKnown(next.VideoCodec) {
		base.VideoCodec = next.VideoCodec
	}
	if codecKnown(next.AudioCodec) {
		base.AudioCodec = next.AudioCodec
	}
	if next.Bitrate > 0 {
		base.Bitrate = next.Bitrate
	}
	if next.FPS > 0 {
		base.FPS = next.FPS
	}
	return base
}

func codecKnown(codec string) bool {
	return codec != "" && codec != unknownCodec
}

// ParseFFmpegInfo "ffmpeg -i" stderr çıktısını çözer.
func ParseFFmpegInfo(output string) Metadata {
	var meta Metadata
	for _, line := range strings.Split(output, "\n") {
		if meta.DurationSecs == 0 {
			if idx := strings.Index(line, "Duration:"); idx >= 0 {
				raw, _, _ := strings.Cut(line[idx+len("Duration:"):], ",")
				meta.DurationSecs = parseClock(strings.TrimSpace(raw))
			}
		}
		if meta.Bitrate == 0 {
			if idx := strings.Index(line, "bitrate:"); idx >= 0 {
				fields := strings.Fields(line[idx+len("bitrate:"):])
				if len(fields) > 0 {
					if kbps, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
						meta.Bitrate = kbps * 1000
					}
				}
			}
		}
		if idx := strings.Index(line, "Video:"); idx >= 0 {
			if meta.VideoCodec == "" {
				meta.VideoCodec = firstToken(line[idx+len("Video:"):])
			}
			if meta.Width == 0 {
				meta.Width, meta.Height = parseResolution(line)
			}
		}
		if idx := strings.Index(line, "Audio:"); idx >= 0 && meta.AudioCodec == "" {
			meta.AudioCodec = firstToken(line[idx+len("Audio:"):])
		}
	}
	if meta.VideoCodec == "" {
		meta.VideoCodec = unknownCodec
	}
	return meta
}

func firstToken(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " ,"); i >= 0 {
		s = s[:i]
	}
	return s
}

// parseClock "HH:MM:SS.xx" değerini saniyeye çevirir; "N/A" için 0 döner.
func parseClock(value string) float64 {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0
	}
	h, err1 := strconv.ParseFloat(parts[0], 64)
	m, err2 := strconv.ParseFloat(parts[1], 64)
	s, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0
	}
	return h*3600 + m*60 + s
}

// parseResolution satırdaki ilk makul "WxH" değerini bulur.
// "0x31637661" gibi kodek etiketleri sınır kontrolüyle elenir.
func parseResolution(line string) (int, int) {
	for _, token := range strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == ',' }) {
		w, h, ok := strings.Cut(strings.TrimSpace(token), "x")
		if !ok {
			continue
		}
		width, err1 := strconv.Atoi(w)
		height, err2 := strconv.Atoi(h)
		if err1 != nil || err2 != nil {
			continue
		}
		if width >= 16 && height >= 16 && width <= 15360 && height <= 8640 {
			return width, height
		}
	}
	return 0, 0
}

// probeResult ffprobe JSON çıktısının ilgili alanları
type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
		BitRate  string `json:"bit_rate"`
		Size     string `json:"size"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		Width      int    `json:"width,omitempty"`
		Height     int    `json:"height,omitempty"`
		RFrameRate string `json:"r_frame_rate,omitempty"`
	} `json:"streams"`
}

// ParseProbeJSON ffprobe JSON çıktısını çözer.
func ParseProbeJSON(data []byte) (Metadata, error) {
	var result probeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return Metadata{}, fmt.Errorf("ffprobe çıktısı okunamadı: %w", err)
	}

	var meta Metadata
	if dur, err := strconv.ParseFloat(result.Format.Duration, 64); err == nil {
		meta.DurationSecs = dur
	}
	if br, err := strconv.ParseInt(result.Format.BitRate, 10, 64); err == nil {
		meta.Bitrate = br
	}
	if size, err := strconv.ParseInt(result.Format.Size, 10, 64); err == nil {
		meta.FileSize = size
	}

	for _, s := range result.Streams {
		switch s.CodecType {
		case "video":
			if meta.VideoCodec != "" {
				continue
			}
			meta.VideoCodec = s.CodecName
			meta.Width = s.Width
			meta.Height = s.Height
			meta.FPS = parseFrameRate(s.RFrameRate)
		case "audio":
			if meta.AudioCodec == "" {
				meta.AudioCodec = s.CodecName
			}
		}
	}
	return meta, nil
}

// parseFrameRate "30000/1001" gibi kare oranlarını float'a çevirir
func parseFrameRate(rate string) float64 {
	if rate == "" {
		return 0
	}
	num, den, ok := strings.Cut(rate, "/")
	if ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 == nil && err2 == nil && d != 0 {
			return n / d
		}
		return 0
	}
	if f, err := strconv.ParseFloat(rate, 64); err == nil {
		return f
	}
	return 0
}
