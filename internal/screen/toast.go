package screen

import (
	"sync"
	"time"
)

// NoticeKind classifies a toast message.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient message shown to the user.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Toast is a single-slot transient message display. Showing a new message
// replaces the current one and restarts the dismiss timer.
type Toast struct {
	mu       sync.Mutex
	duration time.Duration
	current  *Notice
	seq      uint64
}

// NewToast creates a toast that auto-dismisses after the given duration.
func NewToast(duration time.Duration) *Toast {
	return &Toast{duration: duration}
}

// Show displays a message, replacing any current one and restarting the
// dismiss timer.
func (t *Toast) Show(kind NoticeKind, message string) {
	t.mu.Lock()
	t.seq++
	seq := t.seq
	t.current = &Notice{Kind: kind, Message: message}
	t.mu.Unlock()

	time.AfterFunc(t.duration, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		// A newer message restarted the timer; leave it alone.
		if t.seq == seq {
			t.current = nil
		}
	})
}

// Current returns the message currently showing, or nil.
func (t *Toast) Current() *Notice {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return nil
	}
	notice := *t.current
	return &notice
}
