package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mlihgenel/videopartitioner/internal/logging"
)

// EventWatcher fsnotify ile event-driven izleme sağlar.
// Editörler dosyayı yeniden adlandırarak kaydedebildiği için üst dizin izlenir.
type EventWatcher struct {
	poller *Watcher
	fs     *fsnotify.Watcher

	path string

	events  chan struct{}
	done    chan struct{}
	exited  chan struct{}
	once    sync.Once
	running bool
}

// NewEventWatcher fsnotify backend'i oluşturur.
func NewEventWatcher(path string, settleFor time.Duration) (*EventWatcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fs.Close()
		return nil, err
	}

	return &EventWatcher{
		poller: NewWatcher(abs, settleFor),
		fs:     fs,
		path:   abs,
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}, nil
}

// NewAdaptiveWatcher event backend'i dener; olmazsa polling fallback döner.
func NewAdaptiveWatcher(path string, settleFor time.Duration) (Engine, error) {
	eventWatcher, err := NewEventWatcher(path, settleFor)
	if err != nil {
		return NewWatcher(path, settleFor), err
	}
	return eventWatcher, nil
}

func (w *EventWatcher) Bootstrap() error {
	if err := w.poller.Bootstrap(); err != nil {
		return err
	}
	if err := w.fs.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	w.running = true
	go w.loop()
	return nil
}

func (w *EventWatcher) Poll(now time.Time) (bool, error) {
	return w.poller.Poll(now)
}

func (w *EventWatcher) Events() <-chan struct{} {
	return w.events
}

// Close olay döngüsünü durdurur ve bitmesini bekler.
func (w *EventWatcher) Close() error {
	w.once.Do(func() {
		close(w.done)
	})
	err := w.fs.Close()
	if w.running {
		<-w.exited
	}
	return err
}

func (w *EventWatcher) Mode() string { return "event+polling" }

func (w *EventWatcher) Target() string { return w.path }

func (w *EventWatcher) loop() {
	defer close(w.exited)
	for {
		select {
		case <-w.done:
			return
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) == w.path {
				w.signal()
			}
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// Polling devam ettiği için event hatası sessiz geçilir.
			w.signal()
		}
	}
}

func (w *EventWatcher) signal() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}

// Run ctx iptal edilene kadar engine'i interval aralıklarla ve her olayda yoklar;
// dosya değişip durulduğunda onChange çağrılır.
func Run(ctx context.Context, e Engine, interval time.Duration, onChange func(path string)) error {
	if interval <= 0 {
		interval = time.Second
	}
	log := logging.WithComponent("watch")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		changed, err := e.Poll(time.Now())
		if err != nil {
			log.Warn().Err(err).Str(logging.FieldPath, e.Target()).Msg("izleme hatası")
			return
		}
		if changed {
			log.Info().Str(logging.FieldPath, e.Target()).Msg("dosya değişti")
			onChange(e.Target())
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			check()
		case <-e.Events():
			check()
		}
	}
}
