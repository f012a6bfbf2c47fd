package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlihgenel/videopartitioner/internal/config"
	"github.com/mlihgenel/videopartitioner/internal/editor"
	"github.com/mlihgenel/videopartitioner/internal/ffmpeg"
	"github.com/mlihgenel/videopartitioner/internal/format"
	"github.com/mlihgenel/videopartitioner/internal/interval"
	"github.com/mlihgenel/videopartitioner/internal/logging"
	"github.com/mlihgenel/videopartitioner/internal/media"
	"github.com/mlihgenel/videopartitioner/internal/session"
	"github.com/mlihgenel/videopartitioner/internal/splitter"
	"github.com/mlihgenel/videopartitioner/internal/thumbnail"
	"github.com/mlihgenel/videopartitioner/internal/timeline"
	"github.com/mlihgenel/videopartitioner/internal/watch"
)

// Editör ekranı düzeni: çizelge satırı ve sol kenarı fare olaylarıyla eşleşmelidir.
const (
	timelineRow    = 5
	timelineLeft   = 3
	timelineHandle = 1.0
	watchPoll      = 2 * time.Second
	targetStepGb   = 0.5
)

var (
	timelineStyles   = timeline.DefaultStyles()
	errSplitCanceled = errors.New("bölme iptal edildi")
)

// ========================================
// Video yükleme ve arka plan işleri
// ========================================

// openVideo videoyu oturuma yükler; meta veri okuma ve dosya izlemeyi başlatır.
func (m *interactiveModel) openVideo(path string) tea.Cmd {
	m.stopWatch()
	m.cleanupThumbs()
	m.editor.Cancel()
	m.markSecs = nil
	m.thumbsBusy = false
	m.session.LoadVideo(path)

	cmds := m.probeCmds(path)
	cmds = append(cmds, m.startWatch(path))
	return tea.Batch(cmds...)
}

// probeCmds önce hızlı ffmpeg okumasını, ardından ffprobe okumasını başlatır.
// İkisi eşzamanlı koşar; oturum hangisi önce gelirse gelsin ffprobe değerlerini korur.
func (m interactiveModel) probeCmds(path string) []tea.Cmd {
	if m.tools == nil {
		return []tea.Cmd{func() tea.Msg {
			return metadataMsg{path: path, err: fmt.Errorf("ffmpeg: %w", ffmpeg.ErrToolNotFound), full: true}
		}}
	}
	prober := media.New(m.tools)
	return []tea.Cmd{
		func() tea.Msg {
			meta, err := prober.QuickProbe(context.Background(), path)
			return metadataMsg{path: path, meta: meta, err: err}
		},
		func() tea.Msg {
			meta, err := prober.Probe(context.Background(), path)
			return metadataMsg{path: path, meta: meta, err: err, full: true}
		},
	}
}

func (m interactiveModel) rereadCmd(path string) tea.Cmd {
	if m.tools == nil {
		return nil
	}
	prober := media.New(m.tools)
	return func() tea.Msg {
		meta, err := prober.Read(context.Background(), path)
		return metadataMsg{path: path, meta: meta, err: err, full: true}
	}
}

// startWatch yüklü videoyu izler; dosya değişip durulduğunda videoChangedMsg üretilir.
func (m *interactiveModel) startWatch(path string) tea.Cmd {
	log := logging.WithComponent("tui")
	engine, err := watch.NewAdaptiveWatcher(path, 0)
	if err != nil {
		log.Warn().Err(err).Msg("event izleme kullanılamıyor, polling kullanılacak")
	}
	if err := engine.Bootstrap(); err != nil {
		log.Warn().Err(err).Str(logging.FieldPath, path).Msg("izleme başlatılamadı")
		engine.Close()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan string, 1)
	m.watchCtx, m.watchCancel, m.watchCh = ctx, cancel, ch

	go func() {
		defer engine.Close()
		_ = watch.Run(ctx, engine, watchPoll, func(p string) {
			select {
			case ch <- p:
			default:
			}
		})
	}()
	return waitWatch(ctx, ch)
}

func waitWatch(ctx context.Context, ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		select {
		case p := <-ch:
			return videoChangedMsg{path: p}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *interactiveModel) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
	}
	m.watchCtx, m.watchCancel, m.watchCh = nil, nil, nil
}

func (m *interactiveModel) cleanupThumbs() {
	if m.thumbDir != "" {
		os.RemoveAll(m.thumbDir)
		m.thumbDir = ""
	}
	m.session.SetThumbnails(nil)
}

func (m *interactiveModel) thumbsCmd() tea.Cmd {
	s := m.session
	if m.tools == nil || !s.Ready() || m.thumbsBusy {
		return nil
	}
	m.thumbsBusy = true

	path, duration := s.VideoPath, s.Duration()
	count, height := m.thumbCount, m.thumbHeight
	gen := thumbnail.New(m.tools)
	return func() tea.Msg {
		dir, err := os.MkdirTemp("", "videopartitioner-thumbs-")
		if err != nil {
			return thumbsMsg{path: path, err: err}
		}
		paths, err := gen.Generate(context.Background(), path, duration, count, height, dir)
		if err != nil {
			os.RemoveAll(dir)
			return thumbsMsg{path: path, err: err}
		}
		return thumbsMsg{path: path, dir: dir, paths: paths}
	}
}

func (m interactiveModel) frameCmd() tea.Cmd {
	s := m.session
	if m.tools == nil || !s.Ready() {
		return nil
	}
	at := s.Position
	out := filepath.Join(m.outputDirFor(s.VideoPath), frameFileName(s.VideoPath, at))
	gen := thumbnail.New(m.tools)
	video := s.VideoPath
	return func() tea.Msg {
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return frameMsg{err: err}
		}
		return frameMsg{path: out, err: gen.CaptureFrame(context.Background(), video, at, out)}
	}
}

func (m interactiveModel) savePlanCmd() tea.Cmd {
	s := m.session
	if s.VideoPath == "" {
		return nil
	}
	path := filepath.Join(m.outputDirFor(s.VideoPath), videoStem(s.VideoPath)+".plan.yaml")
	exclusions := append([]interval.TimeInterval(nil), s.Exclusions...)
	plan := config.NewPlan(s.VideoPath, s.TargetSizeGb, s.OutputDir, exclusions)
	return func() tea.Msg {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return planSavedMsg{path: path, err: err}
		}
		return planSavedMsg{path: path, err: config.SavePlan(path, plan)}
	}
}

func (m interactiveModel) outputDirFor(video string) string {
	if m.session.OutputDir != "" {
		return m.session.OutputDir
	}
	return filepath.Dir(video)
}

// startSplit parçaları arka planda yazar; ilerleme kanal üzerinden arayüze taşınır.
func (m interactiveModel) startSplit() (tea.Model, tea.Cmd) {
	s := m.session
	switch {
	case m.tools == nil:
		return m, m.notify(session.ToastError, "ffmpeg bulunamadı, 'videopartitioner doctor --install' ile kurabilirsiniz")
	case !s.Ready():
		return m, m.notify(session.ToastError, "Video bilgisi henüz okunmadı")
	case len(s.Points) == 0:
		return m, m.notify(session.ToastError, splitter.ErrNoPartitions.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan float64, 8)
	m.splitCancel, m.progressCh = cancel, ch

	exec := splitter.New(m.tools, splitter.Options{
		Workers:         workers,
		Retry:           m.retry,
		RetryDelay:      m.retryDelay,
		OnConflict:      m.onConflict,
		CreateOutputDir: true,
	})
	exec.OnProgress = func(p float64) {
		select {
		case ch <- p:
		default:
		}
	}
	req := splitter.Request{
		InputPath:       s.VideoPath,
		OutputDir:       m.outputDirFor(s.VideoPath),
		TargetSizeBytes: s.TargetSizeBytes(),
		Exclusions:      append([]interval.TimeInterval(nil), s.Exclusions...),
		Metadata:        s.Metadata.Partition(),
	}

	s.BeginSplit()
	run := func() tea.Msg {
		res, err := exec.Split(ctx, req)
		close(ch)
		return splitDoneMsg{res: res, err: err}
	}
	return m, tea.Batch(run, waitProgress(ch))
}

func waitProgress(ch <-chan float64) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return splitProgressMsg(p)
	}
}

// ========================================
// Mesajlar
// ========================================

func (m interactiveModel) updateEditorMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := m.session
	log := s.Logger()

	switch msg := msg.(type) {
	case metadataMsg:
		if msg.path != s.VideoPath {
			return m, nil
		}
		if msg.err != nil {
			log.Warn().Err(msg.err).Str(logging.FieldPath, msg.path).Bool("full", msg.full).Msg("meta veri okunamadı")
			if msg.full && !s.Ready() {
				return m, m.notify(session.ToastError, fmt.Sprintf("Video okunamadı: %s", msg.err.Error()))
			}
			return m, nil
		}
		wasReady := s.Ready()
		s.SetMetadata(msg.meta, msg.full)
		if !wasReady && s.Ready() && len(s.Thumbnails) == 0 {
			return m, m.thumbsCmd()
		}
		return m, nil

	case thumbsMsg:
		m.thumbsBusy = false
		if msg.path != s.VideoPath {
			if msg.dir != "" {
				os.RemoveAll(msg.dir)
			}
			return m, nil
		}
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("küçük resimler üretilemedi")
			return m, m.notify(session.ToastError, "Küçük resimler üretilemedi")
		}
		m.cleanupThumbs()
		m.thumbDir = msg.dir
		s.SetThumbnails(msg.paths)
		return m, nil

	case frameMsg:
		if msg.err != nil {
			return m, m.notify(session.ToastError, fmt.Sprintf("Kare yakalanamadı: %s", msg.err.Error()))
		}
		return m, m.notify(session.ToastSuccess, fmt.Sprintf("Kare kaydedildi: %s", shortenPath(msg.path)))

	case planSavedMsg:
		if msg.err != nil {
			return m, m.notify(session.ToastError, fmt.Sprintf("Plan kaydedilemedi: %s", msg.err.Error()))
		}
		return m, m.notify(session.ToastSuccess, fmt.Sprintf("Plan kaydedildi: %s", shortenPath(msg.path)))

	case splitProgressMsg:
		if s.Status == session.StatusProcessing {
			s.SetProgress(float64(msg))
		}
		if m.progressCh == nil {
			return m, nil
		}
		return m, waitProgress(m.progressCh)

	case splitDoneMsg:
		if m.splitCancel != nil {
			m.splitCancel()
		}
		m.splitCancel, m.progressCh = nil, nil
		switch {
		case errors.Is(msg.err, context.Canceled):
			s.FailSplit(errSplitCanceled)
		case msg.err != nil:
			s.FailSplit(msg.err)
		case msg.res != nil:
			s.CompleteSplit(msg.res.Message())
		}
		return m, m.notifyCmd()

	case videoChangedMsg:
		if m.watchCtx == nil || s.VideoPath == "" {
			return m, nil
		}
		log.Info().Str(logging.FieldPath, msg.path).Msg("video değişti, yeniden okunuyor")
		return m, tea.Batch(
			m.rereadCmd(s.VideoPath),
			waitWatch(m.watchCtx, m.watchCh),
			m.notify(session.ToastInfo, "Video değişti, parçalar yeniden hesaplanıyor"),
		)
	}
	return m, nil
}

// ========================================
// Klavye ve fare
// ========================================

func (m interactiveModel) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session
	key := msg.String()

	if s.Status == session.StatusProcessing {
		switch key {
		case "q":
			return m.quit()
		case "esc":
			if m.splitCancel != nil {
				m.splitCancel()
			}
		}
		return m, nil
	}

	d := s.Duration()
	switch key {
	case "q":
		return m.quit()

	case "esc":
		switch {
		case m.editor.Dragging():
			m.editor.Cancel()
		case m.markSecs != nil:
			m.markSecs = nil
		default:
			m.state = stateBrowser
			m.loadBrowserItems()
		}

	case "left", "right", "shift+left", "shift+right":
		step := 0.01
		if strings.HasPrefix(key, "shift+") {
			step = 0.1
		}
		if strings.HasSuffix(key, "left") {
			step = -step
		}
		s.Seek(s.Position + step*d)

	case "home":
		s.Seek(0)

	case "end":
		s.Seek(d)

	case "+", "=":
		return m, m.changeTarget(targetStepGb)

	case "-", "_":
		return m, m.changeTarget(-targetStepGb)

	case "[":
		at := s.Position
		m.markSecs = &at

	case "]":
		if m.markSecs == nil || d <= 0 {
			return m, nil
		}
		iv := interval.New(*m.markSecs, s.Position)
		m.markSecs = nil
		if iv.Len() < editor.MinLengthRatio*d {
			return m, m.notify(session.ToastError, "Aralık çok kısa")
		}
		s.AddExclusion(iv.Clamp(d))

	case "x":
		idx := s.ExclusionAt(s.Position)
		if idx < 0 || !s.RemoveExclusion(idx) {
			return m, m.notify(session.ToastInfo, "Oynatma konumunda hariç aralık yok")
		}
		return m, m.notify(session.ToastInfo, "Aralık kaldırıldı")

	case "c":
		if len(s.Exclusions) == 0 {
			return m, nil
		}
		s.ClearExclusions()
		return m, m.notify(session.ToastInfo, "Tüm aralıklar kaldırıldı")

	case "s":
		return m.startSplit()

	case "t":
		m.thumbsBusy = false
		return m, m.thumbsCmd()

	case "f":
		return m, m.frameCmd()

	case "p":
		return m, m.savePlanCmd()
	}
	return m, nil
}

func (m interactiveModel) changeTarget(delta float64) tea.Cmd {
	s := m.session
	if err := s.SetTargetSizeGb(s.TargetSizeGb + delta); err != nil {
		return m.notify(session.ToastError, err.Error())
	}
	return nil
}

func (m interactiveModel) barWidth() int {
	w := m.width - 2*timelineLeft
	if w < 20 {
		w = 20
	}
	return w
}

func (m interactiveModel) timelineGeometry() editor.Geometry {
	return editor.Geometry{Left: timelineLeft, Width: float64(m.barWidth())}
}

// handleEditorMouse fare olaylarını aralık editörüne aktarır.
// Hücre koordinatı hücre ortasına taşınır; çizelge dışına çıkmak sürüklemeyi kaydeder.
func (m interactiveModel) handleEditorMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	s := m.session
	d := s.Duration()
	if d <= 0 || s.Status == session.StatusProcessing {
		return m, nil
	}

	g := m.timelineGeometry()
	x := float64(msg.X) + 0.5
	onBar := msg.Y == timelineRow && g.Inside(x)
	at := editor.PixelToTime(x, g, d)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !onBar {
			return m, nil
		}
		hit := editor.HitTest(x, g, d, s.Exclusions, timelineHandle)
		if m.editor.Press(hit, at) && hit.Kind == editor.HitBody {
			s.Seek(at)
		}

	case tea.MouseActionMotion:
		if !m.editor.Dragging() {
			return m, nil
		}
		if !onBar {
			if next, changed := m.editor.Leave(d, s.Exclusions); changed {
				s.SetExclusions(next)
			}
			return m, nil
		}
		m.editor.Move(at)

	case tea.MouseActionRelease:
		if !m.editor.Dragging() {
			return m, nil
		}
		if onBar {
			m.editor.Move(at)
		}
		if next, changed := m.editor.Release(d, s.Exclusions); changed {
			s.SetExclusions(next)
		}
	}
	return m, nil
}

// ========================================
// Görünüm
// ========================================

func (m interactiveModel) timelineModel() timeline.Model {
	s := m.session
	return timeline.Project(timeline.Input{
		DurationSecs: s.Duration(),
		PositionSecs: s.Position,
		Exclusions:   s.Exclusions,
		Drag:         m.editor.Drag(),
		Points:       s.Points,
		Thumbnails:   s.Thumbnails,
	})
}

func (m interactiveModel) viewEditor() string {
	s := m.session
	var b strings.Builder
	width := m.barWidth()
	indent := strings.Repeat(" ", timelineLeft-1)

	// 0-2: başlık ve video bilgisi
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ Video Partitioner "))
	b.WriteString("  " + pathStyle.Render(filepath.Base(s.VideoPath)))
	b.WriteString("\n")
	b.WriteString(m.viewVideoInfo())
	b.WriteString("\n\n")

	// 4-6: küçük resimler, çizelge ve zaman ekseni
	tm := m.timelineModel()
	b.WriteString(indent + " " + dimStyle.Render(timeline.ThumbRow(tm, width)))
	b.WriteString("\n")
	if s.Ready() {
		b.WriteString(indent + timeline.Render(tm, width, timelineStyles))
	} else {
		b.WriteString(indent + timelineStyles.Frame.Render("["+strings.Repeat(" ", width)+"]"))
	}
	b.WriteString("\n")
	b.WriteString(m.viewAxis(width))
	b.WriteString("\n\n")

	b.WriteString(m.viewPartitionInfo())
	b.WriteString(m.viewStatus())

	for _, t := range s.Toasts() {
		style := infoStyle
		switch t.Kind {
		case session.ToastSuccess:
			style = successStyle
		case session.ToastError:
			style = errorStyle
		}
		b.WriteString(style.Render("  " + t.Message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Sürükle: aralık işaretle  •  ←/→ Konum (Shift ×10)  •  +/- Boyut  •  [ ] Klavyeyle aralık"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  x Aralığı sil  •  c Temizle  •  s Böl  •  t Küçük resim  •  f Kare  •  p Planı kaydet  •  Esc Geri  •  q Çıkış"))
	b.WriteString("\n")
	return b.String()
}

func (m interactiveModel) viewVideoInfo() string {
	s := m.session
	if !s.Ready() {
		return dimStyle.Render(fmt.Sprintf("  %s Video bilgisi okunuyor", spinnerFrames[m.spinnerIdx]))
	}
	meta := s.Metadata
	parts := []string{format.Duration(meta.DurationSecs), format.FileSize(meta.FileSize)}
	if r := meta.Resolution(); r != "" {
		parts = append(parts, r)
	}
	if meta.VideoCodec != "" {
		codec := meta.VideoCodec
		if meta.AudioCodec != "" {
			codec += "/" + meta.AudioCodec
		}
		parts = append(parts, codec)
	}
	return dimStyle.Render("  " + strings.Join(parts, "  •  "))
}

func (m interactiveModel) viewAxis(width int) string {
	s := m.session
	left := "00:00"
	right := format.Duration(s.Duration())
	pos := lipgloss.NewStyle().Bold(true).Foreground(textColor).Render(format.Duration(s.Position))
	gap := width + 2 - lipgloss.Width(left) - lipgloss.Width(right) - lipgloss.Width(pos)
	if gap < 2 {
		return strings.Repeat(" ", timelineLeft-1) + pos
	}
	lg := gap / 2
	return strings.Repeat(" ", timelineLeft-1) + dimStyle.Render(left) + strings.Repeat(" ", lg) + pos +
		strings.Repeat(" ", gap-lg) + dimStyle.Render(right)
}

func (m interactiveModel) viewPartitionInfo() string {
	s := m.session
	var b strings.Builder

	label := lipgloss.NewStyle().Foreground(textColor).Width(12)
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)

	b.WriteString("  " + label.Render("Hedef:") + value.Render(format.FileSize(s.TargetSizeBytes())))
	b.WriteString(dimStyle.Render("  (+/-)"))
	b.WriteString("\n")

	if !s.Ready() {
		return b.String()
	}

	sum := s.Summary()
	if len(s.Exclusions) > 0 {
		b.WriteString("  " + label.Render("Hariç:") +
			value.Render(fmt.Sprintf("%d aralık, %s", len(s.Exclusions), format.Duration(sum.ExcludedSecs))) +
			dimStyle.Render(fmt.Sprintf("  Kalan: %s", format.Duration(sum.EffectiveSecs))))
		b.WriteString("\n")
	}
	if sum.HasOverlappingExclude {
		b.WriteString(lipgloss.NewStyle().Foreground(warningColor).Render("  ⚠ Çakışan aralıklar iki kez düşülüyor"))
		b.WriteString("\n")
	}
	if m.markSecs != nil {
		b.WriteString(infoStyle.Render(fmt.Sprintf("  İşaret: %s  (']' ile aralığı tamamla)", format.Duration(*m.markSecs))))
		b.WriteString("\n")
	}

	if len(s.Points) == 0 {
		b.WriteString(errorStyle.Render("  Parça yok: videonun tamamı hariç tutulmuş"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("  " + label.Render("Parçalar:") + value.Render(fmt.Sprintf("%d", len(s.Points))))
	b.WriteString("\n")

	limit := m.height - 20
	if limit < 3 {
		limit = 3
	}
	for i, p := range s.Points {
		if i >= limit {
			b.WriteString(dimStyle.Render(fmt.Sprintf("    … ve %d parça daha", len(s.Points)-limit)))
			b.WriteString("\n")
			break
		}
		line := fmt.Sprintf("    #%-3d %s → %s  %s  ~%s",
			p.Index+1,
			format.FFmpegTime(p.StartSecs),
			format.FFmpegTime(p.EndSecs),
			format.Duration(p.EndSecs-p.StartSecs),
			format.FileSize(p.EstimatedSizeBytes))
		if s.Position >= p.StartSecs && s.Position < p.EndSecs {
			b.WriteString(selectedFileStyle.Render(strings.TrimPrefix(line, "  ")))
		} else {
			b.WriteString(normalItemStyle.Render(strings.TrimPrefix(line, "  ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m interactiveModel) viewStatus() string {
	s := m.session
	var b strings.Builder

	switch s.Status {
	case session.StatusProcessing:
		barWidth := 30
		filled := int(s.Progress / 100 * float64(barWidth))
		bar := successStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", barWidth-filled))
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("  %s Bölünüyor ", spinnerFrames[m.spinnerIdx])))
		b.WriteString(bar)
		b.WriteString(fmt.Sprintf(" %3.0f%%", s.Progress))
		b.WriteString(dimStyle.Render("  (Esc iptal)"))
		b.WriteString("\n")
	case session.StatusError:
		if s.ErrorMessage != "" {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render("  ❌ " + firstLine(s.ErrorMessage)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
