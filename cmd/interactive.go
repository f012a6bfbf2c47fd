package cmd

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlihgenel/videopartitioner/internal/config"
	"github.com/mlihgenel/videopartitioner/internal/editor"
	"github.com/mlihgenel/videopartitioner/internal/ffmpeg"
	"github.com/mlihgenel/videopartitioner/internal/files"
	"github.com/mlihgenel/videopartitioner/internal/logging"
	"github.com/mlihgenel/videopartitioner/internal/media"
	"github.com/mlihgenel/videopartitioner/internal/session"
	"github.com/mlihgenel/videopartitioner/internal/splitter"
	"github.com/mlihgenel/videopartitioner/internal/thumbnail"
)

// ========================================
// Renk Paleti ve Stiller
// ========================================

var (
	primaryColor   = lipgloss.Color("#7C3AED") // Mor
	secondaryColor = lipgloss.Color("#06B6D4") // Cyan
	accentColor    = lipgloss.Color("#10B981") // Yeşil
	warningColor   = lipgloss.Color("#F59E0B") // Sarı
	dangerColor    = lipgloss.Color("#EF4444") // Kırmızı
	textColor      = lipgloss.Color("#E2E8F0") // Açık gri
	dimTextColor   = lipgloss.Color("#64748B") // Koyu gri

	gradientColors = []lipgloss.Color{
		"#818CF8", "#A78BFA", "#C084FC", "#E879F9", "#F472B6",
	}

	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 2)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(secondaryColor).
				PaddingLeft(2)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(textColor).
			PaddingLeft(4)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(dangerColor)

	infoStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	pathStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	selectedFileStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				PaddingLeft(2)

	folderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor)

	spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
)

// ========================================
// State Machine
// ========================================

type screenState int

const (
	stateWelcomeIntro screenState = iota
	stateWelcomeDeps
	stateWelcomeInstalling
	stateBrowser
	stateConfirmDelete
	stateEditor
)

// toastLifetime bildirimlerin ekranda kalma süresidir.
const toastLifetime = 4 * time.Second

// ========================================
// Model
// ========================================

type interactiveModel struct {
	state  screenState
	cursor int

	// Dosya tarayıcı
	browserDir   string
	browserItems []files.Entry
	browserMsg   string
	browserErr   bool
	trashPending bool

	// Editör
	session     *session.Session
	editor      *editor.Editor
	tools       *ffmpeg.Toolkit
	thumbCount  int
	thumbHeight int
	thumbDir    string
	thumbsBusy  bool
	markSecs    *float64

	onConflict string
	retry      int
	retryDelay time.Duration

	splitCancel context.CancelFunc
	progressCh  chan float64
	watchCtx    context.Context
	watchCancel context.CancelFunc
	watchCh     chan string

	// Init ile çalıştırılacak ilk komut
	pendingCmd tea.Cmd

	// Spinner
	spinnerIdx  int
	spinnerTick int

	// Pencere
	width  int
	height int

	quitting bool

	// Karşılama ekranı
	dependencies   []media.Tool
	isFirstRun     bool
	welcomeCharIdx int
	showCursor     bool
	installResult  string
}

// Mesajlar
type tickMsg time.Time

type installDoneMsg struct {
	err error
}

// metadataMsg meta veri okumasının sonucudur; full ffprobe okumasını belirtir.
type metadataMsg struct {
	path string
	meta media.Metadata
	err  error
	full bool
}

type thumbsMsg struct {
	path  string
	dir   string
	paths []string
	err   error
}

type frameMsg struct {
	path string
	err  error
}

type splitProgressMsg float64

type splitDoneMsg struct {
	res *splitter.Result
	err error
}

type planSavedMsg struct {
	path string
	err  error
}

type videoChangedMsg struct {
	path string
}

type toastExpiredMsg struct {
	id int
}

func newInteractiveModel(deps []media.Tool, tools *ffmpeg.Toolkit, firstRun bool) interactiveModel {
	s := session.New()
	if err := s.SetTargetSizeGb(session.DefaultTargetSizeGb); err != nil {
		log := s.Logger()
		log.Warn().Err(err).Msg("varsayılan hedef boyut ayarlanamadı")
	}

	browserDir, _ := os.Getwd()
	if browserDir == "" {
		browserDir = getHomeDir()
	}

	m := interactiveModel{
		state:        stateBrowser,
		browserDir:   browserDir,
		session:      s,
		tools:        tools,
		width:        80,
		height:       24,
		dependencies: deps,
		isFirstRun:   firstRun,
		showCursor:   true,
	}
	m.editor = editor.New(s.Seek)
	if firstRun {
		m.state = stateWelcomeIntro
	}
	m.loadBrowserItems()
	return m
}

// ========================================
// bubbletea Interface
// ========================================

func (m interactiveModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.pendingCmd)
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.spinnerTick++
		m.spinnerIdx = m.spinnerTick % len(spinnerFrames)
		if m.spinnerTick%5 == 0 {
			m.showCursor = !m.showCursor
		}
		if m.state == stateWelcomeIntro {
			if total := welcomeTotalChars(); m.welcomeCharIdx < total {
				m.welcomeCharIdx += 2
				if m.welcomeCharIdx > total {
					m.welcomeCharIdx = total
				}
			}
		}
		return m, tickCmd()

	case installDoneMsg:
		m.dependencies = media.CheckDependencies(context.Background(), ffmpeg.ExecRunner{})
		if msg.err != nil {
			m.installResult = fmt.Sprintf("❌ Kurulum hatası: %s", msg.err.Error())
		} else {
			m.installResult = "✅ Kurulum tamamlandı!"
			if tools, err := ffmpeg.Default(); err == nil {
				m.tools = tools
			}
		}
		m.state = stateWelcomeDeps
		m.cursor = 0
		return m, nil

	case toastExpiredMsg:
		m.session.Dismiss(msg.id)
		return m, nil

	case metadataMsg, thumbsMsg, frameMsg, splitProgressMsg, splitDoneMsg, planSavedMsg, videoChangedMsg:
		return m.updateEditorMsg(msg)

	case tea.MouseMsg:
		if m.state == stateEditor {
			return m.handleEditorMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch m.state {
		case stateWelcomeIntro, stateWelcomeDeps, stateWelcomeInstalling:
			return m.handleWelcomeKey(msg)
		case stateBrowser, stateConfirmDelete:
			return m.handleBrowserKey(msg)
		case stateEditor:
			return m.handleEditorKey(msg)
		}
	}

	return m, nil
}

func (m interactiveModel) View() string {
	if m.quitting {
		return gradientText("  👋 Görüşürüz!", gradientColors) + "\n\n"
	}

	switch m.state {
	case stateWelcomeIntro:
		return m.viewWelcomeIntro()
	case stateWelcomeDeps:
		return m.viewWelcomeDeps()
	case stateWelcomeInstalling:
		return m.viewWelcomeInstalling()
	case stateBrowser, stateConfirmDelete:
		return m.viewBrowser()
	case stateEditor:
		return m.viewEditor()
	}
	return ""
}

func (m interactiveModel) handleWelcomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < 1 {
			m.cursor++
		}
	case "enter":
		switch m.state {
		case stateWelcomeIntro:
			if m.welcomeCharIdx < welcomeTotalChars() {
				m.welcomeCharIdx = welcomeTotalChars()
				return m, nil
			}
			m.state = stateWelcomeDeps
			m.cursor = 0
		case stateWelcomeDeps:
			if m.missingDependencies() && m.cursor == 0 && m.installResult == "" {
				m.state = stateWelcomeInstalling
				return m, installFFmpegCmd()
			}
			if err := config.MarkFirstRunDone(); err != nil {
				log := logging.WithComponent("tui")
				log.Warn().Err(err).Msg("ilk çalıştırma işaretlenemedi")
			}
			m.isFirstRun = false
			m.cursor = 0
			m.state = stateBrowser
			if m.session.VideoPath != "" {
				m.state = stateEditor
			}
		}
	}
	return m, nil
}

// quit çalışan işleri iptal eder ve geçici dosyaları temizler.
func (m interactiveModel) quit() (tea.Model, tea.Cmd) {
	if m.splitCancel != nil {
		m.splitCancel()
	}
	m.stopWatch()
	m.cleanupThumbs()
	m.quitting = true
	return m, tea.Quit
}

// notifyCmd oturumun en son bildirimini süre dolunca kaldırır.
func (m interactiveModel) notifyCmd() tea.Cmd {
	toasts := m.session.Toasts()
	if len(toasts) == 0 {
		return nil
	}
	id := toasts[len(toasts)-1].ID
	return tea.Tick(toastLifetime, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m interactiveModel) notify(kind session.ToastKind, msg string) tea.Cmd {
	m.session.Notify(kind, msg)
	return m.notifyCmd()
}

// ========================================
// Yardımcılar
// ========================================

func getHomeDir() string {
	u, err := user.Current()
	if err != nil {
		return "/"
	}
	return u.HomeDir
}

func shortenPath(path string) string {
	home := getHomeDir()
	if home != "/" && strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

func gradientText(text string, colors []lipgloss.Color) string {
	if len(colors) == 0 {
		return text
	}
	runes := []rune(text)
	var result strings.Builder
	for i, r := range runes {
		style := lipgloss.NewStyle().Bold(true).Foreground(colors[i%len(colors)])
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}

// openTUILog etkileşimli modda kayıtları kullanıcı dizinindeki dosyaya yönlendirir.
// Alternatif ekran açıkken stderr'e yazmak arayüzü bozar.
func openTUILog() func() {
	path, err := config.LogPath()
	if err != nil {
		logging.Configure(logging.Config{Level: resolveLogLevel()})
		return func() {}
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		logging.Configure(logging.Config{Level: resolveLogLevel()})
		return func() {}
	}
	logging.Configure(logging.Config{Level: resolveLogLevel(), Output: f})
	return func() { f.Close() }
}

// RunInteractive etkileşimli arayüzü başlatır. video boş değilse doğrudan editör açılır.
func RunInteractive(video string) error {
	closeLog := openTUILog()
	defer closeLog()

	deps := media.CheckDependencies(context.Background(), ffmpeg.ExecRunner{})
	tools, err := ffmpeg.Default()
	if err != nil {
		log := logging.WithComponent("tui")
		log.Warn().Err(err).Msg("ffmpeg bulunamadı")
	}

	m := newInteractiveModel(deps, tools, config.IsFirstRun())
	m.thumbCount, m.thumbHeight = thumbnail.DefaultCount, thumbnail.DefaultHeight
	applyThumbnailDefaults(rootCmd, "thumbnails", &m.thumbCount, "thumbnail-height", &m.thumbHeight)

	target := 0.0
	applyTargetSizeDefault(rootCmd, "size", &target)
	if err := m.session.SetTargetSizeGb(target); err != nil {
		return err
	}
	m.session.SetOutputDir(outputDir)

	m.onConflict, m.retryDelay = splitter.ConflictVersioned, time.Second
	applyOnConflictDefault(rootCmd, "on-conflict", &m.onConflict)
	applyRetryDefaults(rootCmd, "retry", &m.retry, "retry-delay", &m.retryDelay)
	if policy := splitter.NormalizeConflictPolicy(m.onConflict); policy != "" {
		m.onConflict = policy
	} else {
		m.onConflict = splitter.ConflictVersioned
	}

	if video != "" {
		abs, err := filepath.Abs(video)
		if err != nil {
			return err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("dosya bulunamadı: %s", video)
		}
		if info.IsDir() {
			m.browserDir = abs
			m.loadBrowserItems()
		} else {
			m.browserDir = filepath.Dir(abs)
			m.loadBrowserItems()
			m.pendingCmd = m.openVideo(abs)
			if m.state != stateWelcomeIntro {
				m.state = stateEditor
			}
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if fm, ok := final.(interactiveModel); ok {
		fm.stopWatch()
		fm.cleanupThumbs()
	}
	return err
}
