// Package files dizin listeleme, silme ve çöp kutusuna taşıma işlemlerini içerir.
package files

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotDirectory listelenen yol bir dizin değilse döner.
var ErrNotDirectory = errors.New("dizin değil")

// Kind dosya türüdür.
type Kind string

const (
	KindDir   Kind = "dir"
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

var videoExts = map[string]bool{
	"mp4": true, "mkv": true, "avi": true, "mov": true, "wmv": true,
	"flv": true, "webm": true, "m4v": true, "ts": true, "mts": true,
}

var imageExts = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true,
	"webp": true, "tiff": true, "tif": true, "svg": true,
}

// Entry listelenen tek bir girdidir.
type Entry struct {
	Name string
	Path string
	Kind Kind
	Size int64
}

// Classify dosya adını uzantısına göre sınıflandırır. Tanınmayan dosyalarda boş döner.
func Classify(name string) Kind {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch {
	case videoExts[ext]:
		return KindVideo
	case imageExts[ext]:
		return KindImage
	}
	return ""
}

// List dizindeki alt dizinleri ve video/görsel dosyalarını döner.
// Dizinler önce gelir; her grup büyük/küçük harf duyarsız ada göre sıralanır.
// Gizli girdiler atlanır.
func List(dir string) ([]Entry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("dizin okunamadı: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("dizin okunamadı: %w", err)
	}

	var entries []Entry
	for _, it := range items {
		name := it.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		if it.IsDir() {
			entries = append(entries, Entry{Name: name, Path: path, Kind: KindDir})
			continue
		}
		kind := Classify(name)
		if kind == "" || !it.Type().IsRegular() {
			continue
		}
		var size int64
		if fi, err := it.Info(); err == nil {
			size = fi.Size()
		}
		entries = append(entries, Entry{Name: name, Path: path, Kind: kind, Size: size})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].Kind == KindDir, entries[j].Kind == KindDir
		if di != dj {
			return di
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}

// Videos yalnızca video girdilerini döner.
func Videos(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Kind == KindVideo {
			out = append(out, e)
		}
	}
	return out
}

// ImageSize görselin piksel boyutlarını okur.
func ImageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("görsel boyutu okunamadı: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// Delete dosyayı kalıcı olarak siler. Dizinler silinmez.
func Delete(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("dosya bulunamadı: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("dizin silinemez: %s", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("dosya silinemedi: %w", err)
	}
	return nil
}

// NextIndex silinen girdiden sonra imlecin duracağı indeksi döner.
// İmleç bir sonraki girdide kalır; son girdi silindiyse bir öncekine geçer.
func NextIndex(removed, remaining int) int {
	if remaining <= 0 {
		return -1
	}
	if removed >= remaining {
		return remaining - 1
	}
	if removed < 0 {
		return 0
	}
	return removed
}
