// File: bridge/serve.go
//
// The inbound half of the bridge: receive remote-initiated calls, pick a
// dispatch path, run the middleware chain around the registered handler,
// reply.

package bridge

import (
	"errors"

	"github.com/Javier97sm/yabridge/api"
	"github.com/Javier97sm/yabridge/wire"
)

// Serve receives remote-initiated calls until the channel is torn down.
// Calls arriving while the event loop is outside its pump handler are
// queued onto the loop in arrival order; calls arriving during the pump run
// on their own ad hoc thread to avoid deadlocking against the busy loop
// thread. Channel teardown ends the loop silently; it is the normal
// shutdown path, not an error.
func (b *Bridge) Serve() error {
	for {
		in, err := b.channel.Next()
		if err != nil {
			if errors.Is(err, api.ErrChannelClosed) {
				return nil
			}
			return err
		}

		req, err := wire.UnmarshalRequest(in.Payload())
		if err != nil {
			b.log.Errorf("dropping undecodable inbound call: %v", err)
			b.reply(in, &wire.CallResponse{Result: api.ResultInvalidArgument})
			continue
		}

		work := func() {
			call := &InboundCall{Request: req}
			if err := b.inbound.Handle(call); err != nil {
				b.log.Errorf("inbound handler chain: %v", err)
			}
			if call.Response == nil {
				// A middleware short-circuited without producing a
				// response; the remote side still needs an answer.
				call.Response = &wire.CallResponse{Result: api.ResultInternalError}
			}
			b.reply(in, call.Response)
		}
		path, err := b.router.Deliver(work)
		if err != nil {
			b.log.Errorf("inbound dispatch failed (iface %d method %d): %v", req.Interface, req.Method, err)
			b.reply(in, &wire.CallResponse{Result: api.ResultInternalError})
			continue
		}
		switch path {
		case api.DispatchImmediate:
			b.immediate.Add(1)
		default:
			b.queued.Add(1)
		}
	}
}

func (b *Bridge) reply(in api.Inbound, resp *wire.CallResponse) {
	payload, err := wire.MarshalResponse(resp)
	if err != nil {
		b.log.Errorf("encoding reply: %v", err)
		return
	}
	if err := in.Reply(payload); err != nil {
		b.log.Errorf("sending reply: %v", err)
	}
}
