package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const appDirName = ".videopartitioner"

// AppConfig uygulama yapılandırmasını tutar
type AppConfig struct {
	FirstRunCompleted bool    `json:"first_run_completed"`
	DefaultOutputDir  string  `json:"default_output_dir,omitempty"`
	DefaultTargetGb   float64 `json:"default_target_gb,omitempty"`
	LogLevel          string  `json:"log_level,omitempty"`
}

// Dir yapılandırma dizinini döner (~/.videopartitioner).
// VIDEOPARTITIONER_HOME tanımlıysa onu kullanır.
func Dir() (string, error) {
	if dir := os.Getenv("VIDEOPARTITIONER_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// configPath yapılandırma dosya yolunu döner
func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogPath etkileşimli mod kayıt dosyasının yoludur.
func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "videopartitioner.log"), nil
}

// LoadConfig yapılandırmayı dosyadan okur
func LoadConfig() (*AppConfig, error) {
	path, err := configPath()
	if err != nil {
		return &AppConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Dosya yoksa varsayılan config döndür
		return &AppConfig{}, nil
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return &AppConfig{}, nil
	}

	return &cfg, nil
}

// SaveConfig yapılandırmayı dosyaya atomik olarak kaydeder
func SaveConfig(cfg *AppConfig) error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return WriteFileAtomic(filepath.Join(dir, "config.json"), data, 0644)
}

// IsFirstRun uygulamanın ilk kez çalıştırılıp çalıştırılmadığını kontrol eder
func IsFirstRun() bool {
	cfg, _ := LoadConfig()
	return !cfg.FirstRunCompleted
}

// MarkFirstRunDone ilk çalıştırma tamamlandı olarak işaretler
func MarkFirstRunDone() error {
	cfg, _ := LoadConfig()
	cfg.FirstRunCompleted = true
	return SaveConfig(cfg)
}

// GetDefaultOutputDir varsayılan çıktı dizinini döner
func GetDefaultOutputDir() string {
	cfg, _ := LoadConfig()
	return cfg.DefaultOutputDir
}

// SetDefaultOutputDir varsayılan çıktı dizinini kaydeder
func SetDefaultOutputDir(dir string) error {
	cfg, _ := LoadConfig()
	cfg.DefaultOutputDir = dir
	return SaveConfig(cfg)
}

// GetDefaultTargetGb kayıtlı hedef parça boyutunu döner; yoksa 0.
func GetDefaultTargetGb() float64 {
	cfg, _ := LoadConfig()
	return cfg.DefaultTargetGb
}

// SetDefaultTargetGb varsayılan hedef parça boyutunu kaydeder
func SetDefaultTargetGb(gb float64) error {
	cfg, _ := LoadConfig()
	cfg.DefaultTargetGb = gb
	return SaveConfig(cfg)
}
