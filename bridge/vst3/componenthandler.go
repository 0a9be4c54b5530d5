// File: bridge/vst3/componenthandler.go

package vst3

import (
	"github.com/Javier97sm/yabridge/api"
	"github.com/Javier97sm/yabridge/core/dispatch"
)

// ComponentHandlerArgs snapshots whether the real object implements
// ComponentHandler. Immutable once constructed.
type ComponentHandlerArgs struct {
	Supported bool `cbor:"1,keyasint"`
}

// NewComponentHandlerArgs queries object for the optional interface. The
// zero value represents "unsupported".
func NewComponentHandlerArgs(object any) ComponentHandlerArgs {
	_, ok := object.(ComponentHandler)
	return ComponentHandlerArgs{Supported: ok}
}

// Wire argument tuples. One struct per method with arguments.
type beginEditArgs struct {
	ID ParamID `cbor:"1,keyasint"`
}

type performEditArgs struct {
	ID    ParamID    `cbor:"1,keyasint"`
	Value ParamValue `cbor:"2,keyasint"`
}

type endEditArgs struct {
	ID ParamID `cbor:"1,keyasint"`
}

type restartComponentArgs struct {
	Flags int32 `cbor:"1,keyasint"`
}

// ComponentHandlerProxy forwards edit notifications to the remote handler.
// Every method is pure pass-through over the channel, except when the
// snapshot says the interface is unsupported, in which case calls fail fast
// locally with zero round trips.
type ComponentHandlerProxy struct {
	args     ComponentHandlerArgs
	instance api.InstanceID
	invoker  *dispatch.Invoker
}

// NewComponentHandlerProxy reconstructs a proxy from transferred args.
func NewComponentHandlerProxy(args ComponentHandlerArgs, instance api.InstanceID, invoker *dispatch.Invoker) *ComponentHandlerProxy {
	return &ComponentHandlerProxy{args: args, instance: instance, invoker: invoker}
}

// Supported answers the capability query locally from the snapshot.
func (p *ComponentHandlerProxy) Supported() bool {
	return p.args.Supported
}

func (p *ComponentHandlerProxy) BeginEdit(id ParamID) api.Result {
	if !p.args.Supported {
		return api.ResultNotImplemented
	}
	return p.invoker.Call(p.instance, InterfaceComponentHandler, MethodBeginEdit, beginEditArgs{ID: id}, nil)
}

func (p *ComponentHandlerProxy) PerformEdit(id ParamID, value ParamValue) api.Result {
	if !p.args.Supported {
		return api.ResultNotImplemented
	}
	return p.invoker.Call(p.instance, InterfaceComponentHandler, MethodPerformEdit, performEditArgs{ID: id, Value: value}, nil)
}

func (p *ComponentHandlerProxy) EndEdit(id ParamID) api.Result {
	if !p.args.Supported {
		return api.ResultNotImplemented
	}
	return p.invoker.Call(p.instance, InterfaceComponentHandler, MethodEndEdit, endEditArgs{ID: id}, nil)
}

func (p *ComponentHandlerProxy) RestartComponent(flags int32) api.Result {
	if !p.args.Supported {
		return api.ResultNotImplemented
	}
	return p.invoker.Call(p.instance, InterfaceComponentHandler, MethodRestartComponent, restartComponentArgs{Flags: flags}, nil)
}

// RegisterComponentHandler wires a local ComponentHandler implementation
// into the inbound dispatch table. resolve maps the addressed instance to
// the handler registered for it, nil when unknown.
func RegisterComponentHandler(reg *dispatch.Registry, codec api.Codec, resolve func(api.InstanceID) ComponentHandler) {
	reg.Register(InterfaceComponentHandler, MethodBeginEdit, func(instance api.InstanceID, args []byte) ([]byte, api.Result) {
		handler := resolve(instance)
		if handler == nil {
			return nil, api.ResultNotInitialized
		}
		var a beginEditArgs
		if err := codec.Unmarshal(args, &a); err != nil {
			return nil, api.ResultInvalidArgument
		}
		return nil, handler.BeginEdit(a.ID)
	})
	reg.Register(InterfaceComponentHandler, MethodPerformEdit, func(instance api.InstanceID, args []byte) ([]byte, api.Result) {
		handler := resolve(instance)
		if handler == nil {
			return nil, api.ResultNotInitialized
		}
		var a performEditArgs
		if err := codec.Unmarshal(args, &a); err != nil {
			return nil, api.ResultInvalidArgument
		}
		return nil, handler.PerformEdit(a.ID, a.Value)
	})
	reg.Register(InterfaceComponentHandler, MethodEndEdit, func(instance api.InstanceID, args []byte) ([]byte, api.Result) {
		handler := resolve(instance)
		if handler == nil {
			return nil, api.ResultNotInitialized
		}
		var a endEditArgs
		if err := codec.Unmarshal(args, &a); err != nil {
			return nil, api.ResultInvalidArgument
		}
		return nil, handler.EndEdit(a.ID)
	})
	reg.Register(InterfaceComponentHandler, MethodRestartComponent, func(instance api.InstanceID, args []byte) ([]byte, api.Result) {
		handler := resolve(instance)
		if handler == nil {
			return nil, api.ResultNotInitialized
		}
		var a restartComponentArgs
		if err := codec.Unmarshal(args, &a); err != nil {
			return nil, api.ResultInvalidArgument
		}
		return nil, handler.RestartComponent(a.Flags)
	})
}
