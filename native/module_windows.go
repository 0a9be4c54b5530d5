//go:build windows
// +build windows

// File: native/module_windows.go

package native

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/Javier97sm/yabridge/api"
)

type module struct {
	handle windows.Handle
}

func loadModule(path string) (api.Module, error) {
	h, err := windows.LoadLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", api.ErrModuleLoadFailed, path, err)
	}
	return &module{handle: h}, nil
}

func (m *module) Proc(name string) (uintptr, error) {
	addr, err := windows.GetProcAddress(m.handle, name)
	if err != nil {
		return 0, fmt.Errorf("native: resolve %q: %w", name, err)
	}
	return addr, nil
}

func (m *module) Close() error {
	if m.handle == 0 {
		return nil
	}
	h := m.handle
	m.handle = 0
	return windows.FreeLibrary(h)
}
