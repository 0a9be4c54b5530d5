//go:build !windows
// +build !windows

// File: native/timer_stub.go
//
// Portable stand-in that tracks bindings without a message queue behind
// them, preserving the ownership semantics for tests.

package native

import (
	"sync"
	"time"
)

var (
	stubTimersMu sync.Mutex
	stubTimers   = make(map[[2]uintptr]struct{})
)

func setTimer(hwnd, id uintptr, _ time.Duration) error {
	stubTimersMu.Lock()
	defer stubTimersMu.Unlock()
	// SetTimer replaces an existing binding with the same id, so no
	// duplicate check.
	stubTimers[[2]uintptr{hwnd, id}] = struct{}{}
	return nil
}

func killTimer(hwnd, id uintptr) error {
	stubTimersMu.Lock()
	defer stubTimersMu.Unlock()
	delete(stubTimers, [2]uintptr{hwnd, id})
	return nil
}
