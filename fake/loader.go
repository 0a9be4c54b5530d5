// File: fake/loader.go
//
// Fake module loader with scripted symbol tables.

package fake

import (
	"fmt"
	"sync"

	"github.com/Javier97sm/yabridge/api"
)

// Loader is a fake implementation of api.ModuleLoader.
type Loader struct {
	mu      sync.Mutex
	modules map[string]*Module
	loadErr error
	loaded  []string
}

// NewLoader creates an empty fake loader.
func NewLoader() *Loader {
	return &Loader{modules: make(map[string]*Module)}
}

// AddModule scripts a module for path with the given symbol table.
func (l *Loader) AddModule(path string, procs map[string]uintptr) *Module {
	l.mu.Lock()
	defer l.mu.Unlock()
	m := &Module{procs: procs}
	l.modules[path] = m
	return m
}

// SetLoadError configures Load to fail.
func (l *Loader) SetLoadError(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadErr = err
}

// Loaded returns the paths passed to Load, in order.
func (l *Loader) Loaded() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.loaded))
	copy(out, l.loaded)
	return out
}

// Load implements api.ModuleLoader.Load.
func (l *Loader) Load(path string) (api.Module, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = append(l.loaded, path)
	if l.loadErr != nil {
		return nil, l.loadErr
	}
	m, ok := l.modules[path]
	if !ok {
		return nil, fmt.Errorf("%w: %q", api.ErrModuleLoadFailed, path)
	}
	return m, nil
}

// Module is a fake loaded module.
type Module struct {
	mu     sync.Mutex
	procs  map[string]uintptr
	closed bool
}

// Proc implements api.Module.Proc.
func (m *Module) Proc(name string) (uintptr, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, api.ErrNotFound
	}
	addr, ok := m.procs[name]
	if !ok {
		return 0, fmt.Errorf("%w: symbol %q", api.ErrNotFound, name)
	}
	return addr, nil
}

// Close implements api.Module.Close.
func (m *Module) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *Module) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
