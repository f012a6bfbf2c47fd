package timeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mlihgenel/videopartitioner/internal/editor"
	"github.com/mlihgenel/videopartitioner/internal/interval"
	"github.com/mlihgenel/videopartitioner/internal/partition"
)

func sampleInput() Input {
	return Input{
		DurationSecs: 100,
		PositionSecs: 0,
		Exclusions:   []interval.TimeInterval{interval.New(10, 20)},
		Points: []partition.Point{
			{Index: 0, StartSecs: 0, EndSecs: 50},
			{Index: 1, StartSecs: 50, EndSecs: 100},
		},
	}
}

func TestProjectWithoutDuration(t *testing.T) {
	m := Project(Input{PositionSecs: 10})
	if diff := cmp.Diff(Model{}, m); diff != "" {
		t.Fatalf("expected empty model:\n%s", diff)
	}
}

func TestProjectRatios(t *testing.T) {
	in := sampleInput()
	in.PositionSecs = 25
	in.Thumbnails = []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}

	got := Project(in)
	want := Model{
		Playhead:   0.25,
		Exclusions: []Span{{Left: 0.1, Width: 0.1, Index: 0}},
		Partitions: []Span{{Left: 0, Width: 0.5, Index: 0}, {Left: 0.5, Width: 0.5, Index: 1}},
		Markers:    []float64{0.5},
		Thumbs: []Slot{
			{Path: "a.jpg", Left: 0, Width: 0.25},
			{Path: "b.jpg", Left: 0.25, Width: 0.25},
			{Path: "c.jpg", Left: 0.5, Width: 0.25},
			{Path: "d.jpg", Left: 0.75, Width: 0.25},
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("unexpected model (-want +got):\n%s", diff)
	}
}

func TestProjectClampsPlayhead(t *testing.T) {
	in := sampleInput()
	in.PositionSecs = 500
	if got := Project(in).Playhead; got != 1 {
		t.Fatalf("unexpected playhead: %v", got)
	}
}

func TestProjectResizePreview(t *testing.T) {
	in := sampleInput()
	in.Drag = editor.ResizeEnd{Index: 0, Live: 40}

	m := Project(in)
	if m.Preview == nil {
		t.Fatalf("expected preview span")
	}
	if !m.Exclusions[0].Editing {
		t.Fatalf("expected edited exclusion to be flagged")
	}
	if diff := cmp.Diff(Span{Left: 0.1, Width: 0.3, Index: 0}, *m.Preview, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("unexpected preview:\n%s", diff)
	}
}

func TestPlain(t *testing.T) {
	in := sampleInput()
	if got := Plain(Project(in), 10); got != "●░───│────" {
		t.Fatalf("unexpected bar: %q", got)
	}

	in.Drag = editor.ResizeEnd{Index: 0, Live: 40}
	if got := Plain(Project(in), 10); got != "●▒▒▒─│────" {
		t.Fatalf("unexpected bar while resizing: %q", got)
	}

	in.Drag = editor.Create{Anchor: 70, Live: 90}
	if got := Plain(Project(in), 10); got != "●░───│─▒▒─" {
		t.Fatalf("unexpected bar while creating: %q", got)
	}
}

func TestCellIndexClamps(t *testing.T) {
	if CellIndex(-0.5, 10) != 0 || CellIndex(1, 10) != 9 || CellIndex(0.55, 10) != 5 {
		t.Fatalf("unexpected cell index")
	}
}

func TestThumbRow(t *testing.T) {
	m := Project(Input{DurationSecs: 10, Thumbnails: []string{"a", "b"}})
	if got := ThumbRow(m, 8); got != "  0   1 " {
		t.Fatalf("unexpected thumbnail row: %q", got)
	}
}
