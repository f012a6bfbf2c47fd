// Package session bir düzenleme oturumunun durumunu tutar: yüklü video,
// hariç tutma aralıkları, hesaplanan parçalar, bölme durumu ve bildirimler.
// Hesaplayıcı ve editör saf kalır; durum yalnızca burada değişir.
package session

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mlihgenel/videopartitioner/internal/format"
	"github.com/mlihgenel/videopartitioner/internal/interval"
	"github.com/mlihgenel/videopartitioner/internal/logging"
	"github.com/mlihgenel/videopartitioner/internal/media"
	"github.com/mlihgenel/videopartitioner/internal/partition"
)

// DefaultTargetSizeGb varsayılan hedef parça boyutudur.
const DefaultTargetSizeGb = 4.0

// Status bölme işleminin durumudur.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusCalculating Status = "calculating"
	StatusProcessing  Status = "processing"
	StatusComplete    Status = "complete"
	StatusError       Status = "error"
)

// Session tek bir video için düzenleme bağlamıdır. Eşzamanlı kullanım için değildir.
type Session struct {
	ID string

	// Video
	VideoPath  string
	Metadata   *media.Metadata
	Position   float64
	Thumbnails []string

	// authoritative ffprobe okuması uygulandıysa true
	authoritative bool

	// Parçalar
	TargetSizeGb float64
	Exclusions   []interval.TimeInterval
	Points       []partition.Point
	OutputDir    string
	Status       Status
	Progress     float64
	ErrorMessage string

	toasts      []Toast
	nextToastID int

	log zerolog.Logger
}

// New boş bir oturum oluşturur.
func New() *Session {
	id := uuid.NewString()
	return &Session{
		ID:           id,
		TargetSizeGb: DefaultTargetSizeGb,
		Status:       StatusIdle,
		log:          logging.WithComponent("session").With().Str(logging.FieldSessionID, id).Logger(),
	}
}

// Logger oturum kimliği eklenmiş kaydediciyi döner.
func (s *Session) Logger() zerolog.Logger {
	return s.log
}

// LoadVideo yeni bir video seçer; video ve parça durumunu sıfırlar.
// Çıktı dizini ve hedef boyut kullanıcı tercihi olarak korunur.
func (s *Session) LoadVideo(path string) {
	s.resetVideo()
	s.resetPartition(false)
	s.VideoPath = path
	s.log.Debug().Str(logging.FieldPath, path).Msg("video yüklendi")
}

// Reset oturumu ilk durumuna döndürür.
func (s *Session) Reset() {
	s.resetVideo()
	s.resetPartition(true)
	s.toasts = nil
}

func (s *Session) resetVideo() {
	s.VideoPath = ""
	s.Metadata = nil
	s.Position = 0
	s.Thumbnails = nil
	s.authoritative = false
}

func (s *Session) resetPartition(all bool) {
	if all {
		s.TargetSizeGb = DefaultTargetSizeGb
		s.OutputDir = ""
	}
	s.Exclusions = nil
	s.Points = nil
	s.Status = StatusIdle
	s.Progress = 0
	s.ErrorMessage = ""
}

// SetMetadata meta veriyi mevcut olanla alan alan birleştirir ve parçaları yeniden hesaplar.
// authoritative okumanın sıfır olmayan alanları her zaman korunur; hızlı okuma
// ondan sonra gelirse yalnızca boş kalan alanları doldurur.
func (s *Session) SetMetadata(m media.Metadata, authoritative bool) {
	switch {
	case s.Metadata == nil:
		s.Metadata = &m
	case authoritative || !s.authoritative:
		merged := media.Merge(*s.Metadata, m)
		s.Metadata = &merged
	default:
		merged := media.Merge(m, *s.Metadata)
		s.Metadata = &merged
	}
	if authoritative {
		s.authoritative = true
	}
	s.Recalculate()
}

// Duration bilinen video süresidir; meta veri yoksa 0.
func (s *Session) Duration() float64 {
	if s.Metadata == nil {
		return 0
	}
	return s.Metadata.DurationSecs
}

// Ready parça hesabı için gereken meta verinin olup olmadığını döner.
func (s *Session) Ready() bool {
	return s.Metadata != nil && s.Metadata.DurationSecs > 0
}

// TargetSizeBytes hedef boyutu bayt olarak döner.
func (s *Session) TargetSizeBytes() int64 {
	return format.GbToBytes(s.TargetSizeGb)
}

// SetTargetSizeGb hedef boyutu değiştirir. Geçersiz değerler reddedilir.
func (s *Session) SetTargetSizeGb(gb float64) error {
	if !format.IsValidPartitionSize(gb) {
		return fmt.Errorf("geçersiz parça boyutu: %.2f GB (0 < boyut <= 100)", gb)
	}
	s.TargetSizeGb = gb
	s.Recalculate()
	return nil
}

// SetOutputDir çıktı dizinini ayarlar.
func (s *Session) SetOutputDir(dir string) {
	s.OutputDir = dir
}

// AddExclusion aralığı normalize edip ekler.
func (s *Session) AddExclusion(iv interval.TimeInterval) {
	s.Exclusions = append(s.Exclusions, iv.Normalize())
	s.Recalculate()
}

// SetExclusions kümeyi topluca değiştirir; editör commit sonucu için kullanılır.
func (s *Session) SetExclusions(set []interval.TimeInterval) {
	s.Exclusions = set
	s.Recalculate()
}

// UpdateExclusion i. aralığı değiştirir. Geçersiz indeks false döner.
func (s *Session) UpdateExclusion(i int, iv interval.TimeInterval) bool {
	if i < 0 || i >= len(s.Exclusions) {
		return false
	}
	s.Exclusions[i] = iv.Normalize()
	s.Recalculate()
	return true
}

// RemoveExclusion i. aralığı siler. Geçersiz indeks yok sayılır.
func (s *Session) RemoveExclusion(i int) bool {
	if i < 0 || i >= len(s.Exclusions) {
		return false
	}
	next := make([]interval.TimeInterval, 0, len(s.Exclusions)-1)
	next = append(next, s.Exclusions[:i]...)
	next = append(next, s.Exclusions[i+1:]...)
	s.Exclusions = next
	s.Recalculate()
	return true
}

// ExclusionAt t anını içeren ilk aralığın indeksini döner; yoksa -1.
func (s *Session) ExclusionAt(t float64) int {
	for i, iv := range s.Exclusions {
		if iv.Contains(t) {
			return i
		}
	}
	return -1
}

// ClearExclusions tüm aralıkları kaldırır.
func (s *Session) ClearExclusions() {
	s.Exclusions = nil
	s.Recalculate()
}

// Recalculate parçaları güncel girdilerden sıfırdan hesaplar.
// Süre biliniyorsa aralıklar önce [0, süre] içine sıkıştırılır.
// Meta veri yoksa önceki sonuç korunur.
func (s *Session) Recalculate() {
	if s.Metadata == nil {
		return
	}
	if d := s.Metadata.DurationSecs; d > 0 {
		if clamped := interval.ClampAll(s.Exclusions, d); !sameSet(clamped, s.Exclusions) {
			s.log.Debug().Int("before", len(s.Exclusions)).Int("after", len(clamped)).Msg("aralıklar süreye sıkıştırıldı")
			s.Exclusions = clamped
		}
	}
	points, ok := partition.Calculate(s.Metadata.Partition(), s.TargetSizeBytes(), s.Exclusions)
	if !ok {
		return
	}
	s.Points = points
	s.log.Debug().Int("partitions", len(points)).Int("exclusions", len(s.Exclusions)).Msg("parçalar hesaplandı")
}

func sameSet(a, b []interval.TimeInterval) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Summary güncel parça özetini döner.
func (s *Session) Summary() partition.Summary {
	if s.Metadata == nil {
		return partition.Summary{}
	}
	return partition.Summarize(*s.Metadata.Partition(), s.TargetSizeBytes(), s.Exclusions, s.Points)
}

// Seek oynatma konumunu [0, süre] aralığına sıkıştırarak ayarlar.
func (s *Session) Seek(t float64) {
	if t < 0 {
		t = 0
	}
	if d := s.Duration(); d > 0 && t > d {
		t = d
	}
	s.Position = t
}

// SetThumbnails önizleme görsellerini ayarlar.
func (s *Session) SetThumbnails(paths []string) {
	s.Thumbnails = paths
}

// BeginSplit bölme işlemini başlatır.
func (s *Session) BeginSplit() {
	s.Status = StatusProcessing
	s.Progress = 0
	s.ErrorMessage = ""
	s.log.Info().Str(logging.FieldPath, s.VideoPath).Str("output_dir", s.OutputDir).Msg("bölme başladı")
}

// SetProgress ilerlemeyi [0, 100] aralığında günceller.
func (s *Session) SetProgress(p float64) {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	s.Progress = p
}

// CompleteSplit işlemi tamamlar ve başarı bildirimi ekler.
func (s *Session) CompleteSplit(message string) {
	s.Status = StatusComplete
	s.Progress = 100
	s.Notify(ToastSuccess, message)
	s.log.Info().Msg(message)
}

// FailSplit işlemi hata durumuna alır ve hata bildirimi ekler.
func (s *Session) FailSplit(err error) {
	s.Status = StatusError
	s.ErrorMessage = err.Error()
	s.Notify(ToastError, err.Error())
	s.log.Error().Err(err).Msg("bölme başarısız")
}
