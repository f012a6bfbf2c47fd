//go:build windows

package config

import "os"

// WriteFileAtomic Windows'ta renameio desteklenmediği için doğrudan yazar.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}
