// File: native/thread.go
//
// Scoped ownership wrapper around the native thread-creation primitive.

package native

import "github.com/Javier97sm/yabridge/api"

// Thread owns one OS thread handle exclusively. Ownership transfers with
// Move; the zero value owns nothing. Closing the handle does not join the
// thread: thread lifetime and handle lifetime are decoupled, matching the
// native primitive's semantics.
type Thread struct {
	handle uintptr
}

// SpawnThread starts fn on a newly created OS thread. The entry trampoline
// owns a heap-registered copy of fn and releases it after fn returns,
// however it returns. Creation failure is returned to the caller and never
// retried internally.
func SpawnThread(fn func()) (*Thread, error) {
	if fn == nil {
		return nil, api.ErrInvalidArgument
	}
	h, err := spawnThread(fn)
	if err != nil {
		return nil, err
	}
	return &Thread{handle: h}, nil
}

// Live reports whether this value currently owns a thread handle.
func (t *Thread) Live() bool {
	return t != nil && t.handle != 0
}

// Move transfers ownership of the handle to the returned value, leaving the
// receiver empty. Destroying the source afterwards is a no-op.
func (t *Thread) Move() *Thread {
	nt := &Thread{handle: t.handle}
	t.handle = 0
	return nt
}

// Close releases the thread handle if one is owned. Idempotent. The thread
// itself keeps running; only the handle is given up.
func (t *Thread) Close() error {
	if !t.Live() {
		return nil
	}
	h := t.handle
	t.handle = 0
	return closeThreadHandle(h)
}
