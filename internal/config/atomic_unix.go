//go:build !windows

package config

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
)

// WriteFileAtomic dosyayı geçici dosyaya yazıp fsync sonrası yerine taşır.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(perm))
	if err != nil {
		return fmt.Errorf("geçici dosya oluşturulamadı: %w", err)
	}
	defer pending.Cleanup()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("dosya yazılamadı: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("dosya yerine taşınamadı: %w", err)
	}
	return nil
}
