package session

// ToastKind bildirim türüdür.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

// Toast kısa süreli kullanıcı bildirimidir.
type Toast struct {
	ID      int
	Kind    ToastKind
	Message string
}

// Notify yeni bir bildirim ekler ve kimliğini döner.
func (s *Session) Notify(kind ToastKind, message string) int {
	id := s.nextToastID
	s.nextToastID++
	s.toasts = append(s.toasts, Toast{ID: id, Kind: kind, Message: message})
	return id
}

// Dismiss kimliği verilen bildirimi kaldırır.
func (s *Session) Dismiss(id int) {
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.toasts = kept
}

// Toasts güncel bildirimlerin kopyasını döner.
func (s *Session) Toasts() []Toast {
	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}
