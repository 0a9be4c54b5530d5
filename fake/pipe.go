// File: fake/pipe.go
//
// In-process channel pair: what one end sends, the other receives via Next,
// with per-call reply correlation. Used to exercise both bridge halves in
// one test process.

package fake

import (
	"sync"

	"github.com/Javier97sm/yabridge/api"
)

type pipeCall struct {
	payload []byte
	reply   chan []byte
}

// PipeEnd is one side of an in-process channel pair.
type PipeEnd struct {
	out       chan *pipeCall
	in        chan *pipeCall
	done      chan struct{}
	closeOnce *sync.Once
}

// NewChannelPipe creates two connected channel ends. Closing either end
// tears down both.
func NewChannelPipe() (*PipeEnd, *PipeEnd) {
	ab := make(chan *pipeCall, 16)
	ba := make(chan *pipeCall, 16)
	done := make(chan struct{})
	once := &sync.Once{}
	a := &PipeEnd{out: ab, in: ba, done: done, closeOnce: once}
	b := &PipeEnd{out: ba, in: ab, done: done, closeOnce: once}
	return a, b
}

// Send implements api.Channel.Send.
func (p *PipeEnd) Send(payload []byte) ([]byte, error) {
	call := &pipeCall{payload: payload, reply: make(chan []byte, 1)}
	select {
	case p.out <- call:
	case <-p.done:
		return nil, api.ErrChannelClosed
	}
	select {
	case resp := <-call.reply:
		return resp, nil
	case <-p.done:
		return nil, api.ErrChannelClosed
	}
}

// Next implements api.Channel.Next.
func (p *PipeEnd) Next() (api.Inbound, error) {
	select {
	case call := <-p.in:
		return &pipeInbound{call: call}, nil
	case <-p.done:
		return nil, api.ErrChannelClosed
	}
}

// Close implements api.Channel.Close.
func (p *PipeEnd) Close() error {
	p.closeOnce.Do(func() { close(p.done) })
	return nil
}

// Done implements api.Channel.Done.
func (p *PipeEnd) Done() <-chan struct{} {
	return p.done
}

type pipeInbound struct {
	call *pipeCall
}

func (in *pipeInbound) Payload() []byte {
	return in.call.payload
}

func (in *pipeInbound) Reply(payload []byte) error {
	in.call.reply <- payload
	return nil
}
