// File: core/dispatch/registry.go
//
// Registry maps (interface id, method id) pairs to local handler functions
// for calls initiated by the remote side. The handler decodes the argument
// tuple, invokes the real local implementation, and encodes its output.

package dispatch

import (
	"sync"

	"github.com/Javier97sm/yabridge/api"
	"github.com/Javier97sm/yabridge/wire"
)

// HandlerFunc handles one inbound call against a local object instance.
// It returns the encoded output values and the interface-native result.
type HandlerFunc func(instance api.InstanceID, args []byte) ([]byte, api.Result)

type methodKey struct {
	iface  api.InterfaceID
	method api.MethodID
}

// Registry is safe for concurrent registration and dispatch.
type Registry struct {
	mu       sync.RWMutex
	handlers map[methodKey]HandlerFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[methodKey]HandlerFunc)}
}

// Register installs fn for one interface method, replacing any previous
// handler for that method.
func (r *Registry) Register(iface api.InterfaceID, method api.MethodID, fn HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[methodKey{iface, method}] = fn
}

// Dispatch executes the handler for req. Unknown methods produce a
// not-implemented response rather than an error; a panicking handler is
// reported as an internal error so one bad callback cannot take down the
// serve loop.
func (r *Registry) Dispatch(req *wire.CallRequest) (resp *wire.CallResponse) {
	r.mu.RLock()
	fn, ok := r.handlers[methodKey{req.Interface, req.Method}]
	r.mu.RUnlock()
	if !ok {
		return &wire.CallResponse{Result: api.ResultNotImplemented}
	}

	defer func() {
		if recover() != nil {
			resp = &wire.CallResponse{Result: api.ResultInternalError}
		}
	}()
	payload, code := fn(req.Instance, req.Args)
	return &wire.CallResponse{Result: code, Payload: payload}
}
