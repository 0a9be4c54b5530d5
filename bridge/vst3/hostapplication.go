// File: bridge/vst3/hostapplication.go

package vst3

import (
	"github.com/Javier97sm/yabridge/api"
	"github.com/Javier97sm/yabridge/core/dispatch"
)

// HostApplicationArgs snapshots whether the real object implements
// HostApplication, plus the host name so the plugin side can answer GetName
// without a round trip. Immutable once constructed; serialized exactly once
// when the proxy is created.
type HostApplicationArgs struct {
	Supported bool   `cbor:"1,keyasint"`
	Name      string `cbor:"2,keyasint,omitempty"`
}

// NewHostApplicationArgs queries object for the optional interface and
// captures its state. The zero value represents "unsupported".
func NewHostApplicationArgs(object any) HostApplicationArgs {
	host, ok := object.(HostApplication)
	if !ok {
		return HostApplicationArgs{}
	}
	args := HostApplicationArgs{Supported: true}
	if name, res := host.GetName(); res.Ok() {
		args.Name = name
	}
	return args
}

// HostApplicationProxy is the remote side's stand-in for the host's
// HostApplication object.
type HostApplicationProxy struct {
	args     HostApplicationArgs
	instance api.InstanceID
	invoker  *dispatch.Invoker
}

// NewHostApplicationProxy reconstructs a proxy from transferred args.
func NewHostApplicationProxy(args HostApplicationArgs, instance api.InstanceID, invoker *dispatch.Invoker) *HostApplicationProxy {
	return &HostApplicationProxy{args: args, instance: instance, invoker: invoker}
}

// Supported answers the capability query locally from the snapshot.
func (p *HostApplicationProxy) Supported() bool {
	return p.args.Supported
}

// GetName is answered from the snapshot captured at proxy creation; the
// host name cannot change within a session.
func (p *HostApplicationProxy) GetName() (string, api.Result) {
	if !p.args.Supported {
		return "", api.ResultNotImplemented
	}
	return p.args.Name, api.ResultOk
}

type getNameOut struct {
	Name string `cbor:"1,keyasint"`
}

// RegisterHostApplication wires a local HostApplication into the inbound
// dispatch table for remotes that query the name explicitly.
func RegisterHostApplication(reg *dispatch.Registry, codec api.Codec, resolve func(api.InstanceID) HostApplication) {
	reg.Register(InterfaceHostApplication, MethodGetName, func(instance api.InstanceID, _ []byte) ([]byte, api.Result) {
		host := resolve(instance)
		if host == nil {
			return nil, api.ResultNotInitialized
		}
		name, res := host.GetName()
		if !res.Ok() {
			return nil, res
		}
		payload, err := codec.Marshal(getNameOut{Name: name})
		if err != nil {
			return nil, api.ResultInternalError
		}
		return payload, api.ResultOk
	})
}
