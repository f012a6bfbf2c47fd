package editor

import "github.com/mlihgenel/videopartitioner/internal/interval"

// HitKind basımın zaman çizelgesinin hangi bölgesine geldiğini belirtir.
type HitKind int

const (
	HitNone HitKind = iota
	HitBody
	HitStartHandle
	HitEndHandle
)

// Hit basılan bölge ve kenar tutamağı ise ilgili aralığın indeksidir.
type Hit struct {
	Kind  HitKind
	Index int
}

// Geometry zaman çizelgesi bileşeninin ekrandaki yatay konumu ve genişliğidir.
type Geometry struct {
	Left  float64
	Width float64
}

// Ratio x koordinatını [0, 1] aralığına sıkıştırılmış orana çevirir.
func (g Geometry) Ratio(x float64) float64 {
	if g.Width <= 0 {
		return 0
	}
	r := (x - g.Left) / g.Width
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// Inside x koordinatının bileşenin içinde olup olmadığını döner.
func (g Geometry) Inside(x float64) bool {
	return x >= g.Left && x <= g.Left+g.Width
}

// PixelToTime x koordinatını [0, duration] aralığında bir zamana çevirir.
func PixelToTime(x float64, g Geometry, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return g.Ratio(x) * duration
}

// TimeToPixel PixelToTime'ın tersidir.
func TimeToPixel(secs float64, g Geometry, duration float64) float64 {
	if duration <= 0 {
		return g.Left
	}
	return g.Left + secs/duration*g.Width
}

// HitTest x koordinatının bir aralık kenarına handlePx mesafede olup olmadığını bulur.
// Kenar bulunamazsa gövde (HitBody) döner. En yakın kenar kazanır.
func HitTest(x float64, g Geometry, duration float64, set []interval.TimeInterval, handlePx float64) Hit {
	if !g.Inside(x) {
		return Hit{Kind: HitNone, Index: -1}
	}

	best := Hit{Kind: HitBody, Index: -1}
	bestDist := handlePx
	for i, iv := range set {
		for _, edge := range []struct {
			kind HitKind
			secs float64
		}{
			{HitStartHandle, iv.StartSecs},
			{HitEndHandle, iv.EndSecs},
		} {
			dist := x - TimeToPixel(edge.secs, g, duration)
			if dist < 0 {
				dist = -dist
			}
			if dist <= bestDist {
				best = Hit{Kind: edge.kind, Index: i}
				bestDist = dist
			}
		}
	}
	return best
}
