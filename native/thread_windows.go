//go:build windows
// +build windows

// File: native/thread_windows.go
//
// CreateThread-backed implementation. CreateThread cannot invoke a Go
// closure directly, so a single registered callback looks the closure up by
// key, runs it, and drops the registration afterwards. The registry is the
// heap ownership of the bound callable; it cannot live inside the Thread
// value because moving the value would invalidate it.

package native

import (
	"fmt"
	"sync"

	"golang.org/x/sys/windows"
)

var (
	modkernel32      = windows.NewLazySystemDLL("kernel32.dll")
	procCreateThread = modkernel32.NewProc("CreateThread")
)

var (
	threadEntriesMu sync.Mutex
	threadEntries   = make(map[uintptr]func())
	threadEntrySeq  uintptr
)

var threadTrampoline = windows.NewCallback(func(param uintptr) uintptr {
	threadEntriesMu.Lock()
	fn := threadEntries[param]
	delete(threadEntries, param)
	threadEntriesMu.Unlock()
	if fn != nil {
		fn()
	}
	return 0
})

func spawnThread(fn func()) (uintptr, error) {
	threadEntriesMu.Lock()
	threadEntrySeq++
	key := threadEntrySeq
	threadEntries[key] = fn
	threadEntriesMu.Unlock()

	handle, _, callErr := procCreateThread.Call(0, 0, threadTrampoline, key, 0, 0)
	if handle == 0 {
		threadEntriesMu.Lock()
		delete(threadEntries, key)
		threadEntriesMu.Unlock()
		return 0, fmt.Errorf("native: CreateThread failed: %v", callErr)
	}
	return handle, nil
}

func closeThreadHandle(h uintptr) error {
	return windows.CloseHandle(windows.Handle(h))
}
