// Package watch yüklü video dosyasını izler ve dosya değişip durulduğunda haber verir.
package watch

import (
	"fmt"
	"os"
	"time"
)

// Engine izleme backend'idir.
type Engine interface {
	Bootstrap() error
	Poll(now time.Time) (bool, error)
	Events() <-chan struct{}
	Close() error
	Mode() string
	Target() string
}

type fileState struct {
	Exists     bool
	Size       int64
	ModTime    time.Time
	LastChange time.Time
	Processed  bool
}

// Watcher polling tabanlı tek dosya izleyicisidir.
type Watcher struct {
	Path      string
	SettleFor time.Duration

	state fileState
}

// NewWatcher yeni bir watcher oluşturur.
func NewWatcher(path string, settleFor time.Duration) *Watcher {
	if settleFor <= 0 {
		settleFor = 1500 * time.Millisecond
	}
	return &Watcher{Path: path, SettleFor: settleFor}
}

// Bootstrap dosyanın mevcut halini "zaten işlenmiş" olarak kaydeder.
func (w *Watcher) Bootstrap() error {
	info, err := os.Stat(w.Path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("izlenen yol bir dosya olmalidir: %s", w.Path)
	}
	w.state = fileState{
		Exists:     true,
		Size:       info.Size(),
		ModTime:    info.ModTime(),
		LastChange: time.Now(),
		Processed:  true,
	}
	return nil
}

// Poll dosya değiştiyse ve SettleFor boyunca sabit kaldıysa bir kez true döner.
// Dosya silinmişse izleme durumu sıfırlanır; yeniden oluşturulduğunda değişiklik sayılır.
func (w *Watcher) Poll(now time.Time) (bool, error) {
	info, err := os.Stat(w.Path)
	if err != nil {
		if os.IsNotExist(err) {
			w.state = fileState{LastChange: now}
			return false, nil
		}
		return false, err
	}

	state := w.state
	if !state.Exists || state.Size != info.Size() || !state.ModTime.Equal(info.ModTime()) {
		w.state = fileState{
			Exists:     true,
			Size:       info.Size(),
			ModTime:    info.ModTime(),
			LastChange: now,
		}
		return false, nil
	}

	if !state.Processed && now.Sub(state.LastChange) >= w.SettleFor {
		state.Processed = true
		w.state = state
		return true, nil
	}
	return false, nil
}

// Events polling backend'inde hiçbir zaman sinyal vermez.
func (w *Watcher) Events() <-chan struct{} { return nil }

func (w *Watcher) Close() error { return nil }

func (w *Watcher) Mode() string { return "polling" }

func (w *Watcher) Target() string { return w.Path }
