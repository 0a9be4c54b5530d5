// File: native/module.go
//
// Loader implements api.ModuleLoader on top of the platform's module-load
// primitive. Load and Close must run on threads created via SpawnThread
// when the module is a plugin binary.

package native

import "github.com/Javier97sm/yabridge/api"

// Loader loads binary plugin modules. The zero value is ready to use.
type Loader struct{}

// Load maps the module at path into the process.
func (Loader) Load(path string) (api.Module, error) {
	return loadModule(path)
}
