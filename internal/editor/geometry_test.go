package editor

import (
	"math"
	"testing"

	"github.com/mlihgenel/videopartitioner/internal/interval"
)

func TestPixelToTimeClamps(t *testing.T) {
	g := Geometry{Left: 10, Width: 100}
	cases := map[float64]float64{
		0:   0,
		10:  0,
		60:  300,
		110: 600,
		500: 600,
	}
	for x, want := range cases {
		if got := PixelToTime(x, g, 600); got != want {
			t.Fatalf("PixelToTime(%v) = %v, want %v", x, got, want)
		}
	}
	if got := PixelToTime(50, Geometry{Width: 0}, 600); got != 0 {
		t.Fatalf("expected zero for empty geometry, got %v", got)
	}
}

func TestTimeToPixelInverse(t *testing.T) {
	g := Geometry{Left: 2, Width: 60}
	for _, secs := range []float64{0, 30, 45.5, 120} {
		x := TimeToPixel(secs, g, 120)
		if back := PixelToTime(x, g, 120); math.Abs(back-secs) > 1e-9 {
			t.Fatalf("round trip mismatch for %v: %v", secs, back)
		}
	}
}

func TestHitTest(t *testing.T) {
	g := Geometry{Left: 0, Width: 100}
	set := []interval.TimeInterval{interval.New(100, 200), interval.New(500, 600)}

	if hit := HitTest(10, g, 1000, set, 1); hit.Kind != HitStartHandle || hit.Index != 0 {
		t.Fatalf("expected start handle of first interval, got %+v", hit)
	}
	if hit := HitTest(60.5, g, 1000, set, 1); hit.Kind != HitEndHandle || hit.Index != 1 {
		t.Fatalf("expected end handle of second interval, got %+v", hit)
	}
	if hit := HitTest(30, g, 1000, set, 1); hit.Kind != HitBody {
		t.Fatalf("expected body hit, got %+v", hit)
	}
	if hit := HitTest(150, g, 1000, set, 1); hit.Kind != HitNone {
		t.Fatalf("expected no hit outside the bar, got %+v", hit)
	}
}
