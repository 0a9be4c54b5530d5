// File: native/timer.go
//
// Scoped ownership wrapper around the native periodic window timer.

package native

import (
	"time"

	"github.com/Javier97sm/yabridge/api"
)

// Timer owns at most one (window handle, timer id) binding. There is no
// timer-procedure callback path: delivery is exclusively via the owning
// window's message queue, consumed inside the event-loop pump handler.
type Timer struct {
	hwnd  uintptr
	id    uintptr
	bound bool
}

// NewTimer registers a periodic native timer against the window. Creation
// failure is returned to the caller and never retried internally.
func NewTimer(hwnd uintptr, id uintptr, interval time.Duration) (*Timer, error) {
	if interval <= 0 {
		return nil, api.ErrInvalidArgument
	}
	if err := setTimer(hwnd, id, interval); err != nil {
		return nil, err
	}
	return &Timer{hwnd: hwnd, id: id, bound: true}, nil
}

// Bound reports whether this value currently owns a timer binding.
func (t *Timer) Bound() bool {
	return t != nil && t.bound
}

// Move transfers the binding to the returned value, leaving the receiver
// with none.
func (t *Timer) Move() *Timer {
	nt := &Timer{hwnd: t.hwnd, id: t.id, bound: t.bound}
	t.bound = false
	return nt
}

// Close cancels the timer if the binding is still owned. Idempotent.
func (t *Timer) Close() error {
	if !t.Bound() {
		return nil
	}
	t.bound = false
	return killTimer(t.hwnd, t.id)
}
