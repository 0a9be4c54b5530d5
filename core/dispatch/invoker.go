// File: core/dispatch/invoker.go
//
// Invoker is the single generic call-forwarding routine behind every proxy
// method: marshal the argument tuple, send the envelope, block for the
// matching response, decode the output values, return the interface-native
// result code. Proxy types parameterize it with (instance, interface id,
// method id, argument value, output target) instead of repeating the
// send/receive sequence per method.

package dispatch

import (
	"github.com/Javier97sm/yabridge/api"
	"github.com/Javier97sm/yabridge/wire"
)

// Invoker forwards proxy method calls over a shared channel.
type Invoker struct {
	channel api.Channel
	codec   api.Codec
}

// NewInvoker creates an invoker bound to one channel session.
func NewInvoker(channel api.Channel, codec api.Codec) *Invoker {
	return &Invoker{channel: channel, codec: codec}
}

// Call performs one synchronous remote method invocation. args may be nil
// for methods without arguments; out may be nil for methods without output
// values. Transport failures surface as the interface's standard unexpected
// failure code, indistinguishable from a local failure of the same method.
func (inv *Invoker) Call(instance api.InstanceID, iface api.InterfaceID, method api.MethodID, args any, out any) api.Result {
	req := wire.CallRequest{
		Instance:  instance,
		Interface: iface,
		Method:    method,
	}
	if args != nil {
		enc, err := inv.codec.Marshal(args)
		if err != nil {
			return api.ResultInvalidArgument
		}
		req.Args = enc
	}

	payload, err := wire.MarshalRequest(&req)
	if err != nil {
		return api.ResultInternalError
	}

	respPayload, err := inv.channel.Send(payload)
	if err != nil {
		return api.ResultFromError(err)
	}

	resp, err := wire.UnmarshalResponse(respPayload)
	if err != nil {
		return api.ResultInternalError
	}
	if out != nil && len(resp.Payload) > 0 {
		if err := inv.codec.Unmarshal(resp.Payload, out); err != nil {
			return api.ResultInternalError
		}
	}
	return resp.Result
}
