package cmd

import (
	"fmt"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlihgenel/videopartitioner/internal/installer"
)

// ========================================
// Karşılama Ekranı: İlk Kullanım
// ========================================

var welcomeArt = []string{
	"",
	"  ██╗   ██╗██╗██████╗ ███████╗ ██████╗ ",
	"  ██║   ██║██║██╔══██╗██╔════╝██╔═══██╗",
	"  ██║   ██║██║██║  ██║█████╗  ██║   ██║",
	"  ╚██╗ ██╔╝██║██║  ██║██╔══╝  ██║   ██║",
	"   ╚████╔╝ ██║██████╔╝███████╗╚██████╔╝",
	"    ╚═══╝  ╚═╝╚═════╝ ╚══════╝ ╚═════╝ ",
	"",
	"  ┌─┐┌─┐┬─┐┌┬┐┬┌┬┐┬┌─┐┌┐┌┌─┐┬─┐",
	"  ├─┘├─┤├┬┘ │ │ │ ││ ││││├┤ ├┬┘",
	"  ┴  ┴ ┴┴└─ ┴ ┴ ┴ ┴└─┘┘└┘└─┘┴└─",
	"",
}

var (
	welcomePrimaryColor   = lipgloss.Color("#334155")
	welcomeSecondaryColor = lipgloss.Color("#E2E8F0")
	welcomeTextColor      = lipgloss.Color("#E2E8F0")
	welcomeDimColor       = lipgloss.Color("#94A3B8")
)

var welcomeGradient = []lipgloss.Color{
	"#F1F5F9", "#E2E8F0", "#CBD5E1", "#94A3B8", "#64748B", "#94A3B8",
}

var welcomeDescLines = []string{
	"",
	"  Video Partitioner'a hos geldiniz!",
	"",
	"  Büyük video dosyalarını yeniden kodlamadan, hedef boyutta",
	"  parçalara böler. Kalite kaybı olmaz.",
	"",
	"  Nasıl çalışır:",
	"",
	"     Zaman çizelgesinde fareyle sürükleyerek istenmeyen",
	"     aralıkları (reklam, jenerik) işaretleyin.",
	"     Parça sınırları kalan süreye göre anında hesaplanır.",
	"     's' ile bölün; parçalar {isim}_partN olarak yazılır.",
	"",
	"  Tum islemler tamamen yerel, verileriniz sizde kalir.",
	"",
}

func welcomeTotalChars() int {
	total := 0
	for _, line := range welcomeDescLines {
		total += len([]rune(line))
	}
	return total
}

// viewWelcomeIntro animasyonlu karşılama ekranı
func (m interactiveModel) viewWelcomeIntro() string {
	var b strings.Builder

	welcomeSkipStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(welcomeSecondaryColor).
		PaddingLeft(2)

	for i, line := range welcomeArt {
		style := lipgloss.NewStyle().Bold(true).Foreground(welcomeGradient[i%len(welcomeGradient)])
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	versionLine := fmt.Sprintf("  v%s  •  Kayıpsız Video Bölücü", appVersion)
	b.WriteString(lipgloss.NewStyle().Foreground(welcomeDimColor).Italic(true).Render(versionLine))
	b.WriteString("\n")

	// Metni welcomeCharIdx'e kadar göster
	shown := 0
	for _, line := range welcomeDescLines {
		lineRunes := []rune(line)
		if shown+len(lineRunes) <= m.welcomeCharIdx {
			b.WriteString(lipgloss.NewStyle().Foreground(welcomeTextColor).Render(line))
			b.WriteString("\n")
			shown += len(lineRunes)
			continue
		}
		if remaining := m.welcomeCharIdx - shown; remaining > 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(welcomeTextColor).Render(string(lineRunes[:remaining])))
			if m.showCursor {
				b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(welcomeSecondaryColor).Render("▌"))
			}
		}
		b.WriteString("\n")
		break
	}

	b.WriteString("\n")
	text := "  ⏩ Yazıyı hızlı geçmek için Enter'a basın"
	if m.welcomeCharIdx >= welcomeTotalChars() {
		text = "  ▸ Devam etmek için Enter'a basın"
		b.WriteString("\n")
	}
	if m.showCursor {
		b.WriteString(welcomeSkipStyle.Render(text))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(welcomeDimColor).Render(text))
	}
	b.WriteString("\n")

	return b.String()
}

func (m interactiveModel) missingDependencies() bool {
	for _, dep := range m.dependencies {
		if !dep.Available {
			return true
		}
	}
	return false
}

// viewWelcomeDeps bağımlılık kontrol ve kurulum ekranı
func (m interactiveModel) viewWelcomeDeps() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(welcomePrimaryColor).
		Padding(0, 2).
		MarginBottom(1)

	welcomeSelectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(welcomeSecondaryColor).
		PaddingLeft(2)

	welcomeNormalStyle := lipgloss.NewStyle().
		Foreground(welcomeTextColor).
		PaddingLeft(4)

	welcomeDimStyle := lipgloss.NewStyle().
		Foreground(welcomeDimColor)

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(" Sistem Kontrolu "))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(welcomeTextColor).Render(
		"  Video okuma ve bölme için FFmpeg gereklidir.\n"))
	b.WriteString("\n")

	for _, dep := range m.dependencies {
		statusIcon, statusText, style := "OK", "Kurulu", successStyle
		if !dep.Available {
			statusIcon, statusText, style = "NO", "Kurulu Değil", errorStyle
		}

		nameStyle := lipgloss.NewStyle().Bold(true).Foreground(welcomeTextColor).Width(15)
		line := fmt.Sprintf("  %s %s %s", statusIcon, nameStyle.Render(dep.Name), style.Render(statusText))
		if dep.Available && dep.Version != "" {
			ver := dep.Version
			if len(ver) > 40 {
				ver = ver[:40] + "…"
			}
			line += welcomeDimStyle.Render(fmt.Sprintf("  (%s)", ver))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.installResult != "" {
		b.WriteString(infoStyle.Render("  " + m.installResult))
		b.WriteString("\n\n")
	}

	if !m.missingDependencies() {
		b.WriteString(successStyle.Render("  Tum gerekli araclar kurulu. Hazirsiniz."))
		b.WriteString("\n\n")
		b.WriteString(welcomeDimStyle.Render("  Enter ile devam edin"))
		b.WriteString("\n")
		return b.String()
	}

	info := installer.FFmpegInstallInfo(installer.DetectPackageManager())
	if !info.Supported {
		b.WriteString(lipgloss.NewStyle().Foreground(warningColor).Render(
			"  Paket yoneticisi bulunamadi. FFmpeg'i manuel olarak kurmaniz gerekiyor."))
		b.WriteString("\n\n")
		b.WriteString(welcomeDimStyle.Render(fmt.Sprintf("  • %s", info.ManualURL)))
		b.WriteString("\n\n")
		b.WriteString(welcomeDimStyle.Render("  Enter ile devam edin"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(warningColor).Render("  Eksik araclar algilandi"))
	b.WriteString("\n\n")
	b.WriteString(welcomeDimStyle.Render(fmt.Sprintf("  Kurulum komutu: %s", info.Description)))
	b.WriteString("\n\n")

	for i, opt := range []string{"FFmpeg'i otomatik kur", "Atla ve devam et"} {
		if i == m.cursor {
			b.WriteString(welcomeSelectedStyle.Render(fmt.Sprintf("  ▸ %s", opt)))
		} else {
			b.WriteString(welcomeNormalStyle.Render(fmt.Sprintf("    %s", opt)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(welcomeDimStyle.Render("  ↑↓ Gezin  •  Enter Seç"))
	b.WriteString("\n")
	return b.String()
}

// viewWelcomeInstalling kurulum sırasında gösterilen ekran
func (m interactiveModel) viewWelcomeInstalling() string {
	var b strings.Builder

	b.WriteString("\n\n")
	frame := spinnerFrames[m.spinnerIdx]
	spinnerStyle := lipgloss.NewStyle().Bold(true).Foreground(welcomeSecondaryColor)
	b.WriteString(spinnerStyle.Render(fmt.Sprintf("  %s FFmpeg kuruluyor", frame)))
	b.WriteString(lipgloss.NewStyle().Foreground(welcomeDimColor).Render(strings.Repeat(".", (m.spinnerTick/3)%4)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(warningColor).Italic(true).Render(
		"  ⓘ Linux'ta sudo şifresi istenebilir."))
	b.WriteString("\n")
	return b.String()
}

// installFFmpegCmd kurulum komutunu arayüzü askıya alarak terminalde çalıştırır.
func installFFmpegCmd() tea.Cmd {
	info := installer.FFmpegInstallInfo(installer.DetectPackageManager())
	if !info.Supported {
		return func() tea.Msg {
			return installDoneMsg{err: fmt.Errorf("otomatik kurulum desteklenmiyor: %s", info.ManualURL)}
		}
	}
	c := exec.Command(info.Command, info.Args...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return installDoneMsg{err: err}
	})
}
