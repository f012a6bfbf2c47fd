package installer

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// InstallInfo kurulum bilgisini tutar
type InstallInfo struct {
	ToolName    string
	Command     string
	Args        []string
	Description string
	ManualURL   string
	Supported   bool // Otomatik kurulum destekleniyor mu
}

var lookPath = exec.LookPath

// packageManagers işletim sistemine göre denenecek paket yöneticileri, öncelik sırasıyla.
var packageManagers = map[string][]string{
	"darwin":  {"brew"},
	"linux":   {"apt", "dnf", "yum", "pacman", "zypper"},
	"windows": {"choco", "winget", "scoop"},
}

// DetectPackageManager mevcut paket yöneticisini tespit eder
func DetectPackageManager() string {
	for _, pm := range packageManagers[runtime.GOOS] {
		if _, err := lookPath(pm); err == nil {
			return pm
		}
	}
	return ""
}

// FFmpegInstallInfo paket yöneticisine göre ffmpeg kurulum komutunu döner.
// ffprobe aynı paketle gelir.
func FFmpegInstallInfo(pm string) InstallInfo {
	info := InstallInfo{
		ToolName:  "FFmpeg",
		ManualURL: "https://ffmpeg.org/download.html",
		Supported: true,
	}

	switch pm {
	case "brew":
		info.Command, info.Args = "brew", []string{"install", "ffmpeg"}
	case "apt", "dnf", "yum":
		info.Command, info.Args = "sudo", []string{pm, "install", "-y", "ffmpeg"}
	case "pacman":
		info.Command, info.Args = "sudo", []string{"pacman", "-S", "--noconfirm", "ffmpeg"}
	case "zypper":
		info.Command, info.Args = "sudo", []string{"zypper", "--non-interactive", "install", "ffmpeg"}
	case "choco":
		info.Command, info.Args = "choco", []string{"install", "ffmpeg", "-y"}
	case "winget":
		info.Command, info.Args = "winget", []string{"install", "Gyan.FFmpeg"}
	case "scoop":
		info.Command, info.Args = "scoop", []string{"install", "ffmpeg"}
	default:
		info.Supported = false
		return info
	}

	info.Description = info.Command
	for _, a := range info.Args {
		info.Description += " " + a
	}
	return info
}

// InstallFFmpeg ffmpeg'i sistem paket yöneticisiyle kurar ve çalıştırılan komutu döner.
func InstallFFmpeg() (string, error) {
	info := FFmpegInstallInfo(DetectPackageManager())

	if !info.Supported {
		return "", fmt.Errorf(
			"%s otomatik olarak kurulamıyor.\nManuel kurulum: %s",
			info.ToolName, info.ManualURL,
		)
	}

	cmd := exec.Command(info.Command, info.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s kurulumu başarısız: %w", info.ToolName, err)
	}

	return info.Description, nil
}
