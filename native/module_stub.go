//go:build !windows
// +build !windows

// File: native/module_stub.go

package native

import (
	"fmt"

	"github.com/Javier97sm/yabridge/api"
)

func loadModule(path string) (api.Module, error) {
	return nil, fmt.Errorf("%w: native module loading requires a windows build (path %q)", api.ErrNotSupported, path)
}
