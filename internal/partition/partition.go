// Package partition hedef parça boyutuna ve hariç tutulan aralıklara göre
// kesim noktalarını hesaplar. Tüm fonksiyonlar saf ve deterministiktir.
package partition

import (
	"math"

	"github.com/mlihgenel/videopartitioner/internal/interval"
)

// Metadata hesaplama için gereken video bilgileridir.
type Metadata struct {
	DurationSecs  float64
	FileSizeBytes int64
}

// Point orijinal zaman çizelgesinde bir çıktı parçasının sınırları ve tahmini boyutudur.
// Index konumsaldır, yeniden hesaplamalar arasında kimlik taşımaz.
type Point struct {
	Index              int     `json:"index"`
	StartSecs          float64 `json:"start_secs"`
	EndSecs            float64 `json:"end_secs"`
	EstimatedSizeBytes int64   `json:"estimated_size_bytes"`
}

// Duration parçanın orijinal zaman çizelgesindeki uzunluğudur (hariç aralıklar dahil).
func (p Point) Duration() float64 {
	return p.EndSecs - p.StartSecs
}

// Calculate kesim noktalarını hesaplar. meta nil ise veya süre bilinmiyorsa
// ok=false döner: bu bir hata değil, "henüz hazır değil" durumudur.
// Hesaplanabilir fakat parça çıkmayan durumlarda (tüm video hariç, hedef <= 0)
// boş liste ve ok=true döner.
func Calculate(meta *Metadata, targetSizeBytes int64, exclusions []interval.TimeInterval) ([]Point, bool) {
	if meta == nil || !(meta.DurationSecs > 0) {
		return nil, false
	}
	if targetSizeBytes <= 0 {
		return []Point{}, true
	}

	excluded := interval.ExcludedDuration(exclusions)
	effectiveDuration := meta.DurationSecs - excluded
	if !(effectiveDuration > 0) {
		return []Point{}, true
	}

	effectiveSize := effectiveDuration * float64(meta.FileSizeBytes) / meta.DurationSecs
	count := int(math.Ceil(effectiveSize / float64(targetSizeBytes)))
	if count <= 0 {
		return []Point{}, true
	}

	timePerPartition := effectiveDuration / float64(count)
	sorted := interval.SortByStart(exclusions)
	target := float64(targetSizeBytes)

	points := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		effStart := float64(i) * timePerPartition
		effEnd := math.Min(float64(i+1)*timePerPartition, effectiveDuration)

		est := math.Min(target, effectiveSize-float64(i)*target)
		points = append(points, Point{
			Index:              i,
			StartSecs:          effectiveToOriginalSorted(effStart, sorted),
			EndSecs:            effectiveToOriginalSorted(effEnd, sorted),
			EstimatedSizeBytes: int64(math.Round(est)),
		})
	}
	return points, true
}

// EffectiveToOriginal efektif zaman çizelgesindeki t anını, kendisinden önceki tüm
// hariç aralıkları atlayarak orijinal zaman çizelgesine taşır.
func EffectiveToOriginal(t float64, exclusions []interval.TimeInterval) float64 {
	return effectiveToOriginalSorted(t, interval.SortByStart(exclusions))
}

// sorted başlangıca göre sıralı olmalıdır. Birikim her çağrıda sıfırdan yürür.
func effectiveToOriginalSorted(t float64, sorted []interval.TimeInterval) float64 {
	accumulated := 0.0
	for _, ex := range sorted {
		if t+accumulated >= ex.StartSecs {
			accumulated += ex.EndSecs - ex.StartSecs
			continue
		}
		break
	}
	return t + accumulated
}

// Summary bir hesaplamanın özet değerleridir (plan çıktıları ve raporlar için).
type Summary struct {
	DurationSecs          float64 `json:"duration_secs"`
	ExcludedSecs          float64 `json:"excluded_secs"`
	EffectiveSecs         float64 `json:"effective_secs"`
	EffectiveSizeBytes    int64   `json:"effective_size_bytes"`
	TargetSizeBytes       int64   `json:"target_size_bytes"`
	PartitionCount        int     `json:"partition_count"`
	HasOverlappingExclude bool    `json:"has_overlapping_exclusions"`
}

// Summarize Calculate ile aynı formüllerle özet çıkarır.
func Summarize(meta Metadata, targetSizeBytes int64, exclusions []interval.TimeInterval, points []Point) Summary {
	s := Summary{
		DurationSecs:    meta.DurationSecs,
		ExcludedSecs:    interval.ExcludedDuration(exclusions),
		TargetSizeBytes: targetSizeBytes,
		PartitionCount:  len(points),
	}
	s.EffectiveSecs = math.Max(0, meta.DurationSecs-s.ExcludedSecs)
	if meta.DurationSecs > 0 {
		s.EffectiveSizeBytes = int64(math.Round(s.EffectiveSecs * float64(meta.FileSizeBytes) / meta.DurationSecs))
	}

	sorted := interval.SortByStart(exclusions)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Overlaps(sorted[i]) {
			s.HasOverlappingExclude = true
			break
		}
	}
	return s
}
