package timeline

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CellKind tek bir terminal hücresinde çizilecek öğedir.
type CellKind int

const (
	CellBase CellKind = iota
	CellExcluded
	CellPreview
	CellMarker
	CellPlayhead
)

var cellRunes = map[CellKind]rune{
	CellBase:     '─',
	CellExcluded: '░',
	CellPreview:  '▒',
	CellMarker:   '│',
	CellPlayhead: '●',
}

// Styles hücre türlerine göre lipgloss stilleridir.
type Styles struct {
	Frame    lipgloss.Style
	Base     lipgloss.Style
	Excluded lipgloss.Style
	Preview  lipgloss.Style
	Marker   lipgloss.Style
	Playhead lipgloss.Style
}

// DefaultStyles arayüz paletine uygun stilleri döner.
func DefaultStyles() Styles {
	return Styles{
		Frame:    lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B")),
		Base:     lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		Excluded: lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		Preview:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		Marker:   lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true),
		Playhead: lipgloss.NewStyle().Foreground(lipgloss.Color("#E2E8F0")).Bold(true),
	}
}

// Cells modeli width hücrelik bir satıra yerleştirir.
// Öncelik: oynatma konumu > parça sınırı > önizleme > hariç aralık.
func Cells(m Model, width int) []CellKind {
	if width <= 0 {
		return nil
	}
	cells := make([]CellKind, width)

	for _, s := range m.Exclusions {
		if s.Editing {
			continue
		}
		fill(cells, s, CellExcluded)
	}
	if m.Preview != nil {
		fill(cells, *m.Preview, CellPreview)
	}
	for _, r := range m.Markers {
		cells[CellIndex(r, width)] = CellMarker
	}
	cells[CellIndex(m.Playhead, width)] = CellPlayhead
	return cells
}

// CellIndex oranın düştüğü hücrenin indeksidir.
func CellIndex(ratio float64, width int) int {
	i := int(ratio * float64(width))
	if i < 0 {
		return 0
	}
	if i > width-1 {
		return width - 1
	}
	return i
}

// Render modeli köşeli parantezler arasında renkli bir satır olarak çizer.
// Çizelge satırı sol kenardan bir hücre içeride başlar.
func Render(m Model, width int, st Styles) string {
	var b strings.Builder
	b.WriteString(st.Frame.Render("["))
	for _, kind := range Cells(m, width) {
		ch := string(cellRunes[kind])
		switch kind {
		case CellExcluded:
			b.WriteString(st.Excluded.Render(ch))
		case CellPreview:
			b.WriteString(st.Preview.Render(ch))
		case CellMarker:
			b.WriteString(st.Marker.Render(ch))
		case CellPlayhead:
			b.WriteString(st.Playhead.Render(ch))
		default:
			b.WriteString(st.Base.Render(ch))
		}
	}
	b.WriteString(st.Frame.Render("]"))
	return b.String()
}

// Plain stil uygulamadan hücre karakterlerini döner.
func Plain(m Model, width int) string {
	cells := Cells(m, width)
	runes := make([]rune, len(cells))
	for i, kind := range cells {
		runes[i] = cellRunes[kind]
	}
	return string(runes)
}

// ThumbRow önizleme görsellerinin çubuk üzerindeki konumlarını numaralarla gösterir.
func ThumbRow(m Model, width int) string {
	if width <= 0 || len(m.Thumbs) == 0 {
		return ""
	}
	runes := []rune(strings.Repeat(" ", width))
	for i, slot := range m.Thumbs {
		digit := []rune("0123456789")[i%10]
		runes[CellIndex(slot.Left+slot.Width/2, width)] = digit
	}
	return string(runes)
}

func fill(cells []CellKind, s Span, kind CellKind) {
	width := len(cells)
	from := CellIndex(s.Left, width)
	to := int(math.Ceil(s.Right()*float64(width)-1e-9)) - 1
	if to > width-1 {
		to = width - 1
	}
	if to < from {
		to = from
	}
	for i := from; i <= to; i++ {
		cells[i] = kind
	}
}
