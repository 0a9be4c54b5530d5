//go:build windows
// +build windows

// File: native/timer_windows.go
//
// SetTimer/KillTimer bindings. The TIMERPROC parameter stays null so ticks
// arrive as WM_TIMER messages on the owning window's queue.

package native

import (
	"fmt"
	"time"

	"golang.org/x/sys/windows"
)

var (
	moduser32     = windows.NewLazySystemDLL("user32.dll")
	procSetTimer  = moduser32.NewProc("SetTimer")
	procKillTimer = moduser32.NewProc("KillTimer")
)

func setTimer(hwnd, id uintptr, interval time.Duration) error {
	ret, _, callErr := procSetTimer.Call(hwnd, id, uintptr(interval.Milliseconds()), 0)
	if ret == 0 {
		return fmt.Errorf("native: SetTimer failed: %v", callErr)
	}
	return nil
}

func killTimer(hwnd, id uintptr) error {
	ret, _, callErr := procKillTimer.Call(hwnd, id)
	if ret == 0 {
		return fmt.Errorf("native: KillTimer failed: %v", callErr)
	}
	return nil
}
