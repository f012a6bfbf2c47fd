package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlihgenel/videopartitioner/internal/files"
	"github.com/mlihgenel/videopartitioner/internal/format"
	"github.com/mlihgenel/videopartitioner/internal/logging"
	"github.com/mlihgenel/videopartitioner/internal/ui"
)

const browserPageSize = 15

// loadBrowserItems dizindeki alt dizinleri ve videoları yükler. Kök dışında ".." eklenir.
func (m *interactiveModel) loadBrowserItems() {
	m.browserItems = nil

	if parent := filepath.Dir(m.browserDir); parent != m.browserDir {
		m.browserItems = append(m.browserItems, files.Entry{Name: "..", Path: parent, Kind: files.KindDir})
	}

	entries, err := files.List(m.browserDir)
	if err != nil {
		m.browserMsg = err.Error()
		m.browserErr = true
		return
	}
	for _, e := range entries {
		if e.Kind == files.KindDir || e.Kind == files.KindVideo {
			m.browserItems = append(m.browserItems, e)
		}
	}
	if m.cursor >= len(m.browserItems) {
		m.cursor = len(m.browserItems) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m interactiveModel) selectedEntry() (files.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.browserItems) {
		return files.Entry{}, false
	}
	return m.browserItems[m.cursor], true
}

func (m interactiveModel) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == stateConfirmDelete {
		switch msg.String() {
		case "y", "e", "enter":
			return m.removeSelected()
		case "n", "h", "esc", "q":
			m.state = stateBrowser
			m.browserMsg = ""
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m.quit()

	case "esc":
		if m.session.VideoPath != "" {
			m.state = stateEditor
		}

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.browserItems)-1 {
			m.cursor++
		}

	case "backspace", "left", "h":
		parent := filepath.Dir(m.browserDir)
		if parent != m.browserDir {
			m.browserDir = parent
			m.cursor = 0
			m.browserMsg = ""
			m.loadBrowserItems()
		}

	case "r":
		m.loadBrowserItems()

	case "d", "t":
		e, ok := m.selectedEntry()
		if !ok || e.Kind == files.KindDir {
			return m, nil
		}
		m.trashPending = msg.String() == "t"
		m.state = stateConfirmDelete

	case "enter", "right", "l":
		e, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		if e.Kind == files.KindDir {
			m.browserDir = e.Path
			m.cursor = 0
			m.browserMsg = ""
			m.loadBrowserItems()
			return m, nil
		}
		cmd := m.openVideo(e.Path)
		m.state = stateEditor
		return m, cmd
	}
	return m, nil
}

// removeSelected seçili videoyu siler veya çöp kutusuna taşır; imleç sonraki girdide kalır.
func (m interactiveModel) removeSelected() (tea.Model, tea.Cmd) {
	m.state = stateBrowser
	e, ok := m.selectedEntry()
	if !ok {
		return m, nil
	}
	removed := m.cursor
	log := logging.WithComponent("tui").With().Str(logging.FieldPath, e.Path).Logger()

	if e.Path == m.session.VideoPath {
		m.stopWatch()
		m.cleanupThumbs()
		m.session.LoadVideo("")
		m.editor.Cancel()
	}

	if m.trashPending {
		dest, err := files.MoveToTrash(e.Path)
		if err != nil {
			m.browserMsg, m.browserErr = err.Error(), true
			log.Error().Err(err).Msg("çöp kutusuna taşınamadı")
			return m, nil
		}
		m.browserMsg, m.browserErr = fmt.Sprintf("Çöp kutusuna taşındı: %s", shortenPath(dest)), false
		log.Info().Str("trash", dest).Msg("çöp kutusuna taşındı")
	} else {
		if err := files.Delete(e.Path); err != nil {
			m.browserMsg, m.browserErr = err.Error(), true
			log.Error().Err(err).Msg("silinemedi")
			return m, nil
		}
		m.browserMsg, m.browserErr = fmt.Sprintf("Silindi: %s", e.Name), false
		log.Info().Msg("silindi")
	}

	m.loadBrowserItems()
	m.cursor = files.NextIndex(removed, len(m.browserItems))
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m, nil
}

func (m interactiveModel) viewBrowser() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ Video Seçin "))
	b.WriteString("\n\n")
	b.WriteString(pathStyle.Render(fmt.Sprintf("  %s %s", ui.IconFolder, shortenPath(m.browserDir))))
	b.WriteString("\n\n")

	if len(m.browserItems) == 0 {
		b.WriteString(errorStyle.Render("  Bu dizinde video dosyası veya klasör bulunamadı!"))
		b.WriteString("\n")
	}

	startIdx := 0
	if m.cursor >= browserPageSize {
		startIdx = m.cursor - browserPageSize + 1
	}
	endIdx := startIdx + browserPageSize
	if endIdx > len(m.browserItems) {
		endIdx = len(m.browserItems)
	}

	videoCount, dirCount := 0, 0
	for _, item := range m.browserItems {
		if item.Kind == files.KindDir {
			dirCount++
		} else {
			videoCount++
		}
	}

	for i := startIdx; i < endIdx; i++ {
		item := m.browserItems[i]
		if item.Kind == files.KindDir {
			if i == m.cursor {
				b.WriteString(selectedItemStyle.Render(fmt.Sprintf("▸ %s %s/", ui.IconFolder, item.Name)))
			} else {
				b.WriteString(normalItemStyle.Render(fmt.Sprintf("  %s %s/", ui.IconFolder, folderStyle.Render(item.Name))))
			}
		} else {
			size := dimStyle.Render("  " + format.FileSize(item.Size))
			if i == m.cursor {
				b.WriteString(selectedFileStyle.Render(fmt.Sprintf("▸ %s %s", ui.IconVideo, item.Name)) + size)
			} else {
				b.WriteString(normalItemStyle.Render(fmt.Sprintf("  %s %s", ui.IconVideo, item.Name)) + size)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	info := fmt.Sprintf("  %d video", videoCount)
	if dirCount > 0 {
		info += fmt.Sprintf(", %d klasör", dirCount)
	}
	b.WriteString(infoStyle.Render(info))
	if len(m.browserItems) > browserPageSize {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d-%d arası)", startIdx+1, endIdx)))
	}
	b.WriteString("\n")

	if m.state == stateConfirmDelete {
		if e, ok := m.selectedEntry(); ok {
			action := "kalıcı olarak silinsin"
			if m.trashPending {
				action = "çöp kutusuna taşınsın"
			}
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(fmt.Sprintf("  %s %s mi? [e/H]", e.Name, action)))
			b.WriteString("\n")
		}
	} else if m.browserMsg != "" {
		b.WriteString("\n")
		if m.browserErr {
			b.WriteString(errorStyle.Render("  " + m.browserMsg))
		} else {
			b.WriteString(successStyle.Render("  " + m.browserMsg))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "  ↑↓ Gezin  •  Enter Aç  •  ← Üst dizin  •  d Sil  •  t Çöpe taşı  •  q Çıkış"
	if m.session.VideoPath != "" {
		help += "  •  Esc Editöre dön"
	}
	b.WriteString(dimStyle.Render(help))
	b.WriteString("\n")
	return b.String()
}
