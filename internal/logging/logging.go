// Package logging uygulama genelinde kullanılan zerolog kaydedicisini yapılandırır.
// Kullanıcıya gösterilen çıktı internal/ui üzerinden gider; buradaki kayıtlar tanılama içindir.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Alan adları
const (
	FieldComponent = "component"
	FieldSessionID = "session_id"
	FieldPath      = "path"
	FieldJobID     = "job_id"
	FieldPartition = "partition"
)

// Config kaydedici seçenekleridir.
type Config struct {
	Level   string    // "debug", "info" vb.; boşsa info
	Output  io.Writer // nil ise kayıtlar atılır
	Console bool      // insan okunur konsol çıktısı
}

var (
	mu   sync.RWMutex
	base = zerolog.Nop()
)

// Configure genel kaydediciyi yeniden kurar. Birden çok kez çağrılabilir.
func Configure(cfg Config) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	}
	zerolog.TimeFieldFormat = time.RFC3339

	var l zerolog.Logger
	switch {
	case cfg.Output == nil:
		l = zerolog.Nop()
	case cfg.Console:
		l = zerolog.New(zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}).Level(level).With().Timestamp().Logger()
	default:
		l = zerolog.New(cfg.Output).Level(level).With().Timestamp().Logger()
	}

	mu.Lock()
	base = l
	mu.Unlock()
}

// ValidLevel seviye adının zerolog tarafından tanınıp tanınmadığını döner.
func ValidLevel(level string) bool {
	if level == "" {
		return true
	}
	_, err := zerolog.ParseLevel(level)
	return err == nil
}

// OpenFile kayıt dosyasını ekleme kipinde açar; dizini yoksa oluşturur.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// Base yapılandırılmış kaydediciyi döner.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent bileşen adı eklenmiş bir alt kaydedici döner.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str(FieldComponent, component).Logger()
}
