// Package editor zaman çizelgesi üzerinde sürükleyerek hariç tutma aralığı
// oluşturma ve yeniden boyutlandırma durum makinesini içerir.
package editor

import (
	"math"

	"github.com/mlihgenel/videopartitioner/internal/interval"
)

// MinLengthRatio toplam sürenin bu oranından kısa aralıklar kaydedilmez.
const MinLengthRatio = 0.005

// DragState sürükleme sırasında tutulan geçici durumdur.
// Uygulamaları: Create, ResizeStart, ResizeEnd.
type DragState interface {
	// LiveSecs imlecin o anki zaman değeridir.
	LiveSecs() float64
	withLive(secs float64) DragState
}

// Create boş alanda başlatılan yeni aralık sürüklemesidir.
type Create struct {
	Anchor float64
	Live   float64
}

// ResizeStart mevcut bir aralığın sol kenarını taşır.
type ResizeStart struct {
	Index int
	Live  float64
}

// ResizeEnd mevcut bir aralığın sağ kenarını taşır.
type ResizeEnd struct {
	Index int
	Live  float64
}

func (d Create) LiveSecs() float64      { return d.Live }
func (d ResizeStart) LiveSecs() float64 { return d.Live }
func (d ResizeEnd) LiveSecs() float64   { return d.Live }

func (d Create) withLive(secs float64) DragState      { d.Live = secs; return d }
func (d ResizeStart) withLive(secs float64) DragState { d.Live = secs; return d }
func (d ResizeEnd) withLive(secs float64) DragState   { d.Live = secs; return d }

// Editor Idle ve Dragging durumları arasında geçiş yapan işaretçi durum makinesidir.
// drag nil ise Idle durumundadır.
type Editor struct {
	drag DragState

	// OnSeek yeniden boyutlandırma sırasında oynatma konumunun taşınması istendiğinde çağrılır.
	OnSeek func(secs float64)
}

// New yeni bir editör oluşturur.
func New(onSeek func(secs float64)) *Editor {
	return &Editor{OnSeek: onSeek}
}

// Dragging aktif bir sürükleme olup olmadığını döner.
func (e *Editor) Dragging() bool {
	return e.drag != nil
}

// Drag aktif sürükleme durumunu döner; Idle ise nil.
func (e *Editor) Drag() DragState {
	return e.drag
}

// Press birincil tuş basımını işler. Sürükleme devam ederken gelen basımlar yok sayılır.
func (e *Editor) Press(hit Hit, at float64) bool {
	if e.drag != nil {
		return false
	}

	switch hit.Kind {
	case HitBody:
		e.drag = Create{Anchor: at, Live: at}
	case HitStartHandle:
		e.drag = ResizeStart{Index: hit.Index, Live: at}
	case HitEndHandle:
		e.drag = ResizeEnd{Index: hit.Index, Live: at}
	default:
		return false
	}
	return true
}

// Move sürüklemenin canlı zamanını günceller. Kanonik küme değişmez.
func (e *Editor) Move(at float64) {
	if e.drag == nil {
		return
	}
	e.drag = e.drag.withLive(at)

	switch e.drag.(type) {
	case ResizeStart, ResizeEnd:
		if e.OnSeek != nil {
			e.OnSeek(at)
		}
	}
}

// Release sürüklemeyi kümeye işler ve Idle durumuna döner.
// changed=false ise küme aynen geri döner.
func (e *Editor) Release(duration float64, set []interval.TimeInterval) (next []interval.TimeInterval, changed bool) {
	if e.drag == nil {
		return set, false
	}
	drag := e.drag
	e.drag = nil
	return Commit(drag, duration, set)
}

// Leave işaretçi zaman çizelgesinin dışına çıktığında Release ile aynı şekilde işler.
func (e *Editor) Leave(duration float64, set []interval.TimeInterval) ([]interval.TimeInterval, bool) {
	return e.Release(duration, set)
}

// Cancel sürüklemeyi kaydetmeden bırakır.
func (e *Editor) Cancel() {
	e.drag = nil
}

// Commit sürükleme durumunu kümeye uygular. Girdi kümesi değiştirilmez.
func Commit(drag DragState, duration float64, set []interval.TimeInterval) ([]interval.TimeInterval, bool) {
	minLen := MinLengthRatio * duration

	switch d := drag.(type) {
	case Create:
		iv := interval.New(d.Anchor, d.Live)
		if !(duration > 0) || iv.Len() < minLen {
			return set, false
		}
		next := make([]interval.TimeInterval, len(set), len(set)+1)
		copy(next, set)
		return append(next, iv), true

	case ResizeStart:
		if d.Index < 0 || d.Index >= len(set) {
			return set, false
		}
		end := set[d.Index].EndSecs
		return replaceAt(set, d.Index, interval.New(math.Min(d.Live, end), math.Max(d.Live, end)), minLen)

	case ResizeEnd:
		if d.Index < 0 || d.Index >= len(set) {
			return set, false
		}
		start := set[d.Index].StartSecs
		return replaceAt(set, d.Index, interval.New(math.Min(start, d.Live), math.Max(start, d.Live)), minLen)

	default:
		return set, false
	}
}

// Preview sürükleme sırasında gösterilecek aralığı döner.
func Preview(drag DragState, set []interval.TimeInterval) (interval.TimeInterval, int, bool) {
	switch d := drag.(type) {
	case Create:
		return interval.New(d.Anchor, d.Live), -1, true
	case ResizeStart:
		if d.Index < 0 || d.Index >= len(set) {
			return interval.TimeInterval{}, -1, false
		}
		return interval.New(d.Live, set[d.Index].EndSecs), d.Index, true
	case ResizeEnd:
		if d.Index < 0 || d.Index >= len(set) {
			return interval.TimeInterval{}, -1, false
		}
		return interval.New(set[d.Index].StartSecs, d.Live), d.Index, true
	default:
		return interval.TimeInterval{}, -1, false
	}
}

func replaceAt(set []interval.TimeInterval, index int, iv interval.TimeInterval, minLen float64) ([]interval.TimeInterval, bool) {
	if iv.Len() < minLen || iv.Len() <= 0 {
		return set, false
	}
	next := make([]interval.TimeInterval, len(set))
	copy(next, set)
	next[index] = iv
	return next, true
}
