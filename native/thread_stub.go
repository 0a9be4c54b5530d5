//go:build !windows
// +build !windows

// File: native/thread_stub.go
//
// Portable stand-in: the callable runs on a goroutine pinned to its OS
// thread, and handles are process-local pseudo-handles with the same
// ownership semantics as the windows build.

package native

import (
	"runtime"
	"sync/atomic"
)

var pseudoHandleSeq atomic.Uintptr

func spawnThread(fn func()) (uintptr, error) {
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		fn()
	}()
	return pseudoHandleSeq.Add(1), nil
}

func closeThreadHandle(uintptr) error {
	return nil
}
