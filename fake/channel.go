// Package fake
//
// Fake implementations for testing and development.
// Provides predictable, controllable behavior for the core contracts.

package fake

import (
	"sync"

	"github.com/Javier97sm/yabridge/api"
	"github.com/Javier97sm/yabridge/wire"
)

// Channel is a fake implementation of api.Channel for testing. Send returns
// scripted responses in order; every sent payload is recorded.
type Channel struct {
	mu        sync.Mutex
	sent      [][]byte
	responses [][]byte
	sendError error
	closed    bool
	done      chan struct{}
	inbound   chan *scriptedInbound
}

// NewChannel creates a fake channel with no scripted responses. An
// unscripted Send returns an empty ok response.
func NewChannel() *Channel {
	return &Channel{
		done:    make(chan struct{}),
		inbound: make(chan *scriptedInbound, 16),
	}
}

// Send implements api.Channel.Send.
func (c *Channel) Send(payload []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, api.ErrChannelClosed
	}
	if c.sendError != nil {
		return nil, c.sendError
	}

	buf := make([]byte, len(payload))
	copy(buf, payload)
	c.sent = append(c.sent, buf)

	if len(c.responses) > 0 {
		resp := c.responses[0]
		c.responses = c.responses[1:]
		return resp, nil
	}
	return wire.MarshalResponse(&wire.CallResponse{Result: api.ResultOk})
}

// Next implements api.Channel.Next.
func (c *Channel) Next() (api.Inbound, error) {
	select {
	case in := <-c.inbound:
		return in, nil
	case <-c.done:
		return nil, api.ErrChannelClosed
	}
}

// Close implements api.Channel.Close.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.done)
	}
	return nil
}

// Done implements api.Channel.Done.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// ScriptResponse queues a response payload for a future Send call.
func (c *Channel) ScriptResponse(payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf := make([]byte, len(payload))
	copy(buf, payload)
	c.responses = append(c.responses, buf)
}

// ScriptResult queues an encoded CallResponse with the given result code.
func (c *Channel) ScriptResult(code api.Result) {
	payload, err := wire.MarshalResponse(&wire.CallResponse{Result: code})
	if err != nil {
		panic(err)
	}
	c.ScriptResponse(payload)
}

// SetSendError configures the channel to fail Send calls.
func (c *Channel) SetSendError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sendError = err
}

// SentPayloads returns a copy of every payload passed to Send.
func (c *Channel) SentPayloads() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	sent := make([][]byte, len(c.sent))
	copy(sent, c.sent)
	return sent
}

// PushInbound injects a remote-initiated call and returns a channel that
// yields the reply payload.
func (c *Channel) PushInbound(payload []byte) <-chan []byte {
	in := &scriptedInbound{payload: payload, reply: make(chan []byte, 1)}
	c.inbound <- in
	return in.reply
}

type scriptedInbound struct {
	payload []byte
	reply   chan []byte
}

func (in *scriptedInbound) Payload() []byte {
	return in.payload
}

func (in *scriptedInbound) Reply(payload []byte) error {
	buf := make([]byte, len(payload))
	copy(buf, payload)
	in.reply <- buf
	return nil
}
