package editor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mlihgenel/videopartitioner/internal/interval"
)

const duration = 1000.0

func TestCreateBelowMinimumIsDiscarded(t *testing.T) {
	e := New(nil)
	require.True(t, e.Press(Hit{Kind: HitBody}, 100))
	e.Move(104.9)

	next, changed := e.Release(duration, nil)
	require.False(t, changed)
	require.Empty(t, next)
	require.False(t, e.Dragging())
}

func TestCreateAtMinimumIsAppended(t *testing.T) {
	e := New(nil)
	require.True(t, e.Press(Hit{Kind: HitBody}, 100))
	e.Move(105)

	next, changed := e.Release(duration, nil)
	require.True(t, changed)
	require.Equal(t, []interval.TimeInterval{interval.New(100, 105)}, next)
}

func TestCreateBackwardsDragIsAppended(t *testing.T) {
	e := New(nil)
	set := []interval.TimeInterval{interval.New(0, 50)}

	e.Press(Hit{Kind: HitBody}, 300)
	e.Move(200)
	next, changed := e.Release(duration, set)

	require.True(t, changed)
	require.Len(t, next, 2)
	require.Equal(t, interval.New(200, 300), next[1])
	require.Len(t, set, 1, "input set must not be modified")
}

func TestClickWithoutMoveIsDiscarded(t *testing.T) {
	e := New(nil)
	e.Press(Hit{Kind: HitBody}, 400)
	next, changed := e.Release(duration, nil)
	require.False(t, changed)
	require.Empty(t, next)
}

func TestPressWhileDraggingIsIgnored(t *testing.T) {
	e := New(nil)
	require.True(t, e.Press(Hit{Kind: HitBody}, 10))
	require.False(t, e.Press(Hit{Kind: HitEndHandle, Index: 0}, 20))

	_, isCreate := e.Drag().(Create)
	require.True(t, isCreate)
}

func TestResizeEmitsSeekButDoesNotMutate(t *testing.T) {
	var seeks []float64
	e := New(func(secs float64) { seeks = append(seeks, secs) })
	set := []interval.TimeInterval{interval.New(100, 200)}

	e.Press(Hit{Kind: HitStartHandle, Index: 0}, 100)
	e.Move(120)
	e.Move(130)

	require.Equal(t, []float64{120, 130}, seeks)
	require.Equal(t, interval.New(100, 200), set[0])

	next, changed := e.Release(duration, set)
	require.True(t, changed)
	require.Equal(t, interval.New(130, 200), next[0])
}

func TestCreateMoveDoesNotSeek(t *testing.T) {
	called := false
	e := New(func(float64) { called = true })
	e.Press(Hit{Kind: HitBody}, 10)
	e.Move(50)
	require.False(t, called)
}

func TestResizePastOppositeBoundSwaps(t *testing.T) {
	set := []interval.TimeInterval{interval.New(100, 200)}

	e := New(nil)
	e.Press(Hit{Kind: HitStartHandle, Index: 0}, 100)
	e.Move(350)
	next, changed := e.Release(duration, set)
	require.True(t, changed)
	require.Equal(t, interval.New(200, 350), next[0])

	e.Press(Hit{Kind: HitEndHandle, Index: 0}, 200)
	e.Move(20)
	next, changed = e.Leave(duration, set)
	require.True(t, changed)
	require.Equal(t, interval.New(20, 100), next[0])
}

func TestResizeBelowMinimumLeavesIntervalUnchanged(t *testing.T) {
	set := []interval.TimeInterval{interval.New(100, 200)}
	e := New(nil)
	e.Press(Hit{Kind: HitEndHandle, Index: 0}, 200)
	e.Move(102)

	next, changed := e.Release(duration, set)
	require.False(t, changed)
	require.Equal(t, set, next)
}

func TestResizeStaleIndexIsDiscarded(t *testing.T) {
	e := New(nil)
	e.Press(Hit{Kind: HitEndHandle, Index: 3}, 200)
	e.Move(400)

	set := []interval.TimeInterval{interval.New(100, 200)}
	next, changed := e.Release(duration, set)
	require.False(t, changed)
	require.Equal(t, set, next)
	require.False(t, e.Dragging())
}

func TestReleaseWhenIdle(t *testing.T) {
	e := New(nil)
	set := []interval.TimeInterval{interval.New(1, 2)}
	next, changed := e.Release(duration, set)
	require.False(t, changed)
	require.Equal(t, set, next)
}

func TestCancelDropsDrag(t *testing.T) {
	e := New(nil)
	e.Press(Hit{Kind: HitBody}, 10)
	e.Move(500)
	e.Cancel()
	require.False(t, e.Dragging())
}

func TestPreview(t *testing.T) {
	set := []interval.TimeInterval{interval.New(100, 200)}

	iv, idx, ok := Preview(Create{Anchor: 50, Live: 10}, set)
	require.True(t, ok)
	require.Equal(t, -1, idx)
	require.Equal(t, interval.New(10, 50), iv)

	iv, idx, ok = Preview(ResizeEnd{Index: 0, Live: 250}, set)
	require.True(t, ok)
	require.Equal(t, 0, idx)
	require.Equal(t, interval.New(100, 250), iv)

	_, _, ok = Preview(ResizeStart{Index: 5, Live: 1}, set)
	require.False(t, ok)
}
