// File: api/loader.go
//
// Plugin module loader contract. Loading and unloading the binary module and
// resolving its entry point happens on threads created via the native thread
// wrapper; the loader itself is a collaborator behind this interface.

package api

// ModuleLoader loads binary plugin modules.
type ModuleLoader interface {
	// Load maps the module at path into the process. Returns
	// ErrModuleLoadFailed (wrapped) when the module cannot be loaded.
	Load(path string) (Module, error)
}

// Module is one loaded binary plugin module.
type Module interface {
	// Proc resolves an exported symbol, typically the plugin's entry point.
	Proc(name string) (uintptr, error)

	// Close unmaps the module. The module must not be entered afterwards.
	Close() error
}
