// File: bridge/vst3/unithandler.go

package vst3

import (
	"github.com/Javier97sm/yabridge/api"
	"github.com/Javier97sm/yabridge/core/dispatch"
)

// UnitHandlerArgs snapshots both the base interface and its optional
// UnitHandler2 extension in one record, so the extension's availability is
// answered locally for the lifetime of the proxy.
type UnitHandlerArgs struct {
	Supported  bool `cbor:"1,keyasint"`
	Supported2 bool `cbor:"2,keyasint"`
}

// NewUnitHandlerArgs queries object for both interface levels.
func NewUnitHandlerArgs(object any) UnitHandlerArgs {
	var args UnitHandlerArgs
	if _, ok := object.(UnitHandler); ok {
		args.Supported = true
	}
	if _, ok := object.(UnitHandler2); ok {
		args.Supported2 = true
	}
	return args
}

type notifyUnitSelectionArgs struct {
	UnitID UnitID `cbor:"1,keyasint"`
}

type notifyProgramListChangeArgs struct {
	ListID       ProgramListID `cbor:"1,keyasint"`
	ProgramIndex int32         `cbor:"2,keyasint"`
}

// UnitHandlerProxy implements the full UnitHandler2 surface; calls on the
// unsupported part of the surface fail fast without touching the channel.
type UnitHandlerProxy struct {
	args     UnitHandlerArgs
	instance api.InstanceID
	invoker  *dispatch.Invoker
}

// NewUnitHandlerProxy reconstructs a proxy from transferred args.
func NewUnitHandlerProxy(args UnitHandlerArgs, instance api.InstanceID, invoker *dispatch.Invoker) *UnitHandlerProxy {
	return &UnitHandlerProxy{args: args, instance: instance, invoker: invoker}
}

// Supported answers the base capability query locally.
func (p *UnitHandlerProxy) Supported() bool {
	return p.args.Supported
}

// Supported2 answers the extension capability query locally.
func (p *UnitHandlerProxy) Supported2() bool {
	return p.args.Supported2
}

func (p *UnitHandlerProxy) NotifyUnitSelection(unitID UnitID) api.Result {
	if !p.args.Supported {
		return api.ResultNotImplemented
	}
	return p.invoker.Call(p.instance, InterfaceUnitHandler, MethodNotifyUnitSelection, notifyUnitSelectionArgs{UnitID: unitID}, nil)
}

func (p *UnitHandlerProxy) NotifyProgramListChange(listID ProgramListID, programIndex int32) api.Result {
	if !p.args.Supported {
		return api.ResultNotImplemented
	}
	return p.invoker.Call(p.instance, InterfaceUnitHandler, MethodNotifyProgramListChange, notifyProgramListChangeArgs{ListID: listID, ProgramIndex: programIndex}, nil)
}

func (p *UnitHandlerProxy) NotifyUnitByBusChange() api.Result {
	if !p.args.Supported2 {
		return api.ResultNotImplemented
	}
	return p.invoker.Call(p.instance, InterfaceUnitHandler, MethodNotifyUnitByBusChange, nil, nil)
}

// RegisterUnitHandler wires a local UnitHandler (optionally UnitHandler2)
// into the inbound dispatch table.
func RegisterUnitHandler(reg *dispatch.Registry, codec api.Codec, resolve func(api.InstanceID) UnitHandler) {
	reg.Register(InterfaceUnitHandler, MethodNotifyUnitSelection, func(instance api.InstanceID, args []byte) ([]byte, api.Result) {
		handler := resolve(instance)
		if handler == nil {
			return nil, api.ResultNotInitialized
		}
		var a notifyUnitSelectionArgs
		if err := codec.Unmarshal(args, &a); err != nil {
			return nil, api.ResultInvalidArgument
		}
		return nil, handler.NotifyUnitSelection(a.UnitID)
	})
	reg.Register(InterfaceUnitHandler, MethodNotifyProgramListChange, func(instance api.InstanceID, args []byte) ([]byte, api.Result) {
		handler := resolve(instance)
		if handler == nil {
			return nil, api.ResultNotInitialized
		}
		var a notifyProgramListChangeArgs
		if err := codec.Unmarshal(args, &a); err != nil {
			return nil, api.ResultInvalidArgument
		}
		return nil, handler.NotifyProgramListChange(a.ListID, a.ProgramIndex)
	})
	reg.Register(InterfaceUnitHandler, MethodNotifyUnitByBusChange, func(instance api.InstanceID, _ []byte) ([]byte, api.Result) {
		handler := resolve(instance)
		if handler == nil {
			return nil, api.ResultNotInitialized
		}
		extended, ok := handler.(UnitHandler2)
		if !ok {
			return nil, api.ResultNotImplemented
		}
		return nil, extended.NotifyUnitByBusChange()
	})
}
