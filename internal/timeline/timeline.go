// Package timeline zaman çizelgesi bileşeninin çizim modelini hesaplar.
// Tüm değerler bileşen genişliğine oranla [0, 1] aralığındadır.
package timeline

import (
	"github.com/mlihgenel/videopartitioner/internal/editor"
	"github.com/mlihgenel/videopartitioner/internal/interval"
	"github.com/mlihgenel/videopartitioner/internal/partition"
)

// Input çizim modeli için gereken oturum durumudur.
type Input struct {
	DurationSecs float64
	PositionSecs float64
	Exclusions   []interval.TimeInterval
	Drag         editor.DragState
	Points       []partition.Point
	Thumbnails   []string
}

// Span çubuk üzerinde yatay bir bölgedir.
type Span struct {
	Left  float64
	Width float64
	// Index kaynak dizideki konumdur; önizleme için yeni aralıkta -1'dir.
	Index int
	// Editing aralık o an yeniden boyutlandırılıyorsa true olur.
	Editing bool
}

// Right bölgenin sağ kenarının oranıdır.
func (s Span) Right() float64 {
	return s.Left + s.Width
}

// Slot önizleme görseli için ayrılmış eşit genişlikli alandır.
type Slot struct {
	Path  string
	Left  float64
	Width float64
}

// Model zaman çizelgesinin tek bir kareye ait izdüşümüdür.
type Model struct {
	Playhead   float64
	Exclusions []Span
	Preview    *Span
	Partitions []Span
	// Markers ilk parça hariç her parçanın başlangıç oranıdır.
	Markers []float64
	Thumbs  []Slot
}

// Project girdiyi oranlara çevirir. Süre bilinmiyorsa boş model döner.
func Project(in Input) Model {
	if !(in.DurationSecs > 0) {
		return Model{}
	}
	d := in.DurationSecs

	m := Model{Playhead: ratio(in.PositionSecs, d)}

	editing := -1
	if in.Drag != nil {
		if iv, idx, ok := editor.Preview(in.Drag, in.Exclusions); ok {
			preview := span(iv, d, idx)
			m.Preview = &preview
			editing = idx
		}
	}

	for i, ex := range in.Exclusions {
		s := span(ex, d, i)
		s.Editing = i == editing
		m.Exclusions = append(m.Exclusions, s)
	}

	for i, p := range in.Points {
		m.Partitions = append(m.Partitions, span(interval.TimeInterval{StartSecs: p.StartSecs, EndSecs: p.EndSecs}, d, p.Index))
		if i > 0 {
			m.Markers = append(m.Markers, ratio(p.StartSecs, d))
		}
	}

	if n := len(in.Thumbnails); n > 0 {
		w := 1 / float64(n)
		for i, path := range in.Thumbnails {
			m.Thumbs = append(m.Thumbs, Slot{Path: path, Left: float64(i) * w, Width: w})
		}
	}

	return m
}

func span(iv interval.TimeInterval, duration float64, index int) Span {
	iv = iv.Normalize()
	left := ratio(iv.StartSecs, duration)
	return Span{Left: left, Width: ratio(iv.EndSecs, duration) - left, Index: index}
}

func ratio(secs, duration float64) float64 {
	r := secs / duration
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
