// File: bridge/vst3/plugframe.go

package vst3

import (
	"github.com/Javier97sm/yabridge/api"
	"github.com/Javier97sm/yabridge/core/dispatch"
)

// PlugFrameArgs snapshots whether the real object implements PlugFrame.
type PlugFrameArgs struct {
	Supported bool `cbor:"1,keyasint"`
}

// NewPlugFrameArgs queries object for the optional interface.
func NewPlugFrameArgs(object any) PlugFrameArgs {
	_, ok := object.(PlugFrame)
	return PlugFrameArgs{Supported: ok}
}

type resizeViewArgs struct {
	ViewID api.InstanceID `cbor:"1,keyasint"`
	Width  int32          `cbor:"2,keyasint"`
	Height int32          `cbor:"3,keyasint"`
}

// Sender performs the outbound call for the proxy. ResizeView is invoked
// from inside the message pump and the host will reenter the view before
// answering, so the proxy takes the bridge's mutually recursive send path
// rather than the invoker directly.
type Sender interface {
	SendMutuallyRecursive(instance api.InstanceID, iface api.InterfaceID, method api.MethodID, args any, out any) api.Result
}

// PlugFrameProxy forwards resize requests to the remote frame.
type PlugFrameProxy struct {
	args     PlugFrameArgs
	instance api.InstanceID
	sender   Sender
}

// NewPlugFrameProxy reconstructs a proxy from transferred args.
func NewPlugFrameProxy(args PlugFrameArgs, instance api.InstanceID, sender Sender) *PlugFrameProxy {
	return &PlugFrameProxy{args: args, instance: instance, sender: sender}
}

// Supported answers the capability query locally from the snapshot.
func (p *PlugFrameProxy) Supported() bool {
	return p.args.Supported
}

func (p *PlugFrameProxy) ResizeView(viewID api.InstanceID, width, height int32) api.Result {
	if !p.args.Supported {
		return api.ResultNotImplemented
	}
	return p.sender.SendMutuallyRecursive(p.instance, InterfacePlugFrame, MethodResizeView, resizeViewArgs{ViewID: viewID, Width: width, Height: height}, nil)
}

// RegisterPlugFrame wires a local PlugFrame into the inbound dispatch table.
func RegisterPlugFrame(reg *dispatch.Registry, codec api.Codec, resolve func(api.InstanceID) PlugFrame) {
	reg.Register(InterfacePlugFrame, MethodResizeView, func(instance api.InstanceID, args []byte) ([]byte, api.Result) {
		frame := resolve(instance)
		if frame == nil {
			return nil, api.ResultNotInitialized
		}
		var a resizeViewArgs
		if err := codec.Unmarshal(args, &a); err != nil {
			return nil, api.ResultInvalidArgument
		}
		return nil, frame.ResizeView(a.ViewID, a.Width, a.Height)
	})
}
