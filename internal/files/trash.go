package files

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// MoveToTrash dosyayı sistemin çöp kutusuna taşır ve çöpteki yolunu döner.
// Linux'ta freedesktop çöp kutusu, macOS'ta ~/.Trash kullanılır.
func MoveToTrash(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("dosya bulunamadı: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("dizin çöpe taşınamaz: %s", path)
	}

	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		return trashFreedesktop(abs)
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dest := uniquePath(filepath.Join(home, ".Trash"), filepath.Base(abs))
		if err := moveFile(abs, dest); err != nil {
			return "", err
		}
		return dest, nil
	default:
		return "", fmt.Errorf("çöp kutusu bu platformda desteklenmiyor: %s", runtime.GOOS)
	}
}

// TrashDir freedesktop çöp kutusunun kök dizinidir.
func TrashDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "Trash"), nil
}

func trashFreedesktop(abs string) (string, error) {
	root, err := TrashDir()
	if err != nil {
		return "", err
	}
	filesDir := filepath.Join(root, "files")
	infoDir := filepath.Join(root, "info")
	for _, d := range []string{filesDir, infoDir} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return "", fmt.Errorf("çöp kutusu dizini oluşturulamadı: %w", err)
		}
	}

	dest := uniquePath(filesDir, filepath.Base(abs))
	name := filepath.Base(dest)

	// .trashinfo taşımadan önce yazılır; taşıma başarısız olursa geri alınır.
	infoPath := filepath.Join(infoDir, name+".trashinfo")
	content := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		(&url.URL{Path: abs}).EscapedPath(),
		time.Now().Format("2006-01-02T15:04:05"),
	)
	if err := os.WriteFile(infoPath, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("trashinfo yazılamadı: %w", err)
	}

	if err := moveFile(abs, dest); err != nil {
		os.Remove(infoPath)
		return "", err
	}
	return dest, nil
}

// uniquePath dir içinde çakışmayan bir ad üretir: "film.mp4", "film (1).mp4", ...
func uniquePath(dir, name string) string {
	candidate := filepath.Join(dir, name)
	if _, err := os.Lstat(candidate); os.IsNotExist(err) {
		return candidate
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// moveFile önce rename dener; farklı dosya sistemlerinde kopyalayıp siler.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("dosya taşınamadı: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("dosya taşınamadı: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("dosya kopyalanamadı: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("dosya kopyalanamadı: %w", err)
	}
	return os.Remove(src)
}
