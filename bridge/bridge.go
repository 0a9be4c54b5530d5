// File: bridge/bridge.go
// Package bridge ties one plugin group's event loop, channel session, and
// dispatch tables together. It owns the registry of remote object instances
// and applies the reentrancy policy to every call the remote side initiates.

package bridge

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/tliron/commonlog"

	"github.com/Javier97sm/yabridge/adapters"
	"github.com/Javier97sm/yabridge/api"
	"github.com/Javier97sm/yabridge/core/dispatch"
	"github.com/Javier97sm/yabridge/core/eventloop"
	"github.com/Javier97sm/yabridge/wire"
)

// Bridge relays interface calls between the native host side and the plugin
// helper side of one channel session.
type Bridge struct {
	loop     *eventloop.MainContext
	channel  api.Channel
	codec    api.Codec
	registry *dispatch.Registry
	router   *dispatch.Router
	invoker  *dispatch.Invoker
	inbound  api.Handler
	log      commonlog.Logger

	instancesMu  sync.Mutex
	instances    map[api.InstanceID]any
	nextInstance atomic.Uint64

	// Stack of nested contexts opened by mutually recursive sends. The
	// innermost one, when present, is where reentrant work must land.
	recursionMu   sync.Mutex
	recursion     []*eventloop.MainContext
	queued        atomic.Uint64
	immediate     atomic.Uint64
	outboundCalls atomic.Uint64
	startedAt     time.Time
}

// Options configures a Bridge. Channel is required; zero-value fields fall
// back to sensible defaults.
type Options struct {
	Loop    *eventloop.MainContext
	Channel api.Channel
	Codec   api.Codec
	// PumpInterval overrides the event loop's nominal pump period when
	// Loop is nil, typically from the group configuration. Zero keeps the
	// default.
	PumpInterval time.Duration
	// Middleware wraps the inbound dispatch handler, outermost first. Each
	// invocation receives a *InboundCall.
	Middleware []func(api.Handler) api.Handler
	// Spawn overrides the ad hoc execution context used for calls that
	// arrive while the event loop is pumping messages. Tests use this to
	// observe the dispatch-path decision.
	Spawn dispatch.SpawnFunc
}

// InboundCall is one remote-initiated call as it flows through the
// middleware chain. Middleware sees the decoded request on the way in and,
// once the next handler has run, the response on the way out.
type InboundCall struct {
	Request  *wire.CallRequest
	Response *wire.CallResponse
}

// New creates a bridge over one channel session.
func New(opts Options) *Bridge {
	if opts.Channel == nil {
		panic("bridge: Options.Channel is required")
	}
	loop := opts.Loop
	if loop == nil {
		loop = eventloop.NewMainContextWithInterval(opts.PumpInterval)
	}
	codec := opts.Codec
	if codec == nil {
		codec = wire.Codec{}
	}
	b := &Bridge{
		loop:      loop,
		channel:   opts.Channel,
		codec:     codec,
		registry:  dispatch.NewRegistry(),
		router:    dispatch.NewRouter(loop, opts.Spawn),
		invoker:   dispatch.NewInvoker(opts.Channel, codec),
		log:       commonlog.GetLogger("yabridge.bridge"),
		instances: make(map[api.InstanceID]any),
		startedAt: time.Now(),
	}

	chain := adapters.NewMiddlewareHandler(adapters.HandlerFunc(func(data any) error {
		call := data.(*InboundCall)
		call.Response = b.registry.Dispatch(call.Request)
		return nil
	}))
	for _, mw := range opts.Middleware {
		chain.Use(mw)
	}
	b.inbound = chain
	return b
}

// Loop returns the group's event-loop context. Run it from exactly one
// thread for the lifetime of the bridge.
func (b *Bridge) Loop() *eventloop.MainContext {
	return b.loop
}

// Codec returns the session's serialization codec.
func (b *Bridge) Codec() api.Codec {
	return b.codec
}

// Registry returns the inbound dispatch table for handler registration.
func (b *Bridge) Registry() *dispatch.Registry {
	return b.registry
}

// Invoker returns the outbound call forwarder shared by all proxies on this
// session.
func (b *Bridge) Invoker() *dispatch.Invoker {
	return b.invoker
}

// RegisterInstance assigns a unique identifier to a local object so the
// remote side can address calls to it.
func (b *Bridge) RegisterInstance(object any) api.InstanceID {
	id := api.InstanceID(b.nextInstance.Add(1))
	b.instancesMu.Lock()
	b.instances[id] = object
	b.instancesMu.Unlock()
	return id
}

// Instance resolves a previously registered object.
func (b *Bridge) Instance(id api.InstanceID) (any, bool) {
	b.instancesMu.Lock()
	defer b.instancesMu.Unlock()
	object, ok := b.instances[id]
	return object, ok
}

// UnregisterInstance drops a registered object. Called when the remote
// proxy for it is destroyed.
func (b *Bridge) UnregisterInstance(id api.InstanceID) {
	b.instancesMu.Lock()
	delete(b.instances, id)
	b.instancesMu.Unlock()
}

// InstanceCount returns the number of live registered objects.
func (b *Bridge) InstanceCount() int {
	b.instancesMu.Lock()
	defer b.instancesMu.Unlock()
	return len(b.instances)
}

// SendMessage performs one outbound call on the session channel.
func (b *Bridge) SendMessage(instance api.InstanceID, iface api.InterfaceID, method api.MethodID, args any, out any) api.Result {
	b.outboundCalls.Add(1)
	return b.invoker.Call(instance, iface, method, args, out)
}

// Metrics returns a snapshot of the bridge's counters.
func (b *Bridge) Metrics() api.BridgeMetrics {
	return api.BridgeMetrics{
		OutboundCalls:    b.outboundCalls.Load(),
		InboundQueued:    b.queued.Load(),
		InboundImmediate: b.immediate.Load(),
		EventLoopTicks:   b.loop.Ticks(),
		ActiveInstances:  b.InstanceCount(),
		StartedAt:        b.startedAt,
	}
}

// Shutdown closes the channel and stops the event loop. In-flight calls
// fail with the channel teardown; queued work still drains.
func (b *Bridge) Shutdown() error {
	err := b.channel.Close()
	b.loop.Stop()
	return err
}
