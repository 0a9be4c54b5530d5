package bridge_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/Javier97sm/yabridge/adapters"
	"github.com/Javier97sm/yabridge/api"
	"github.com/Javier97sm/yabridge/bridge"
	"github.com/Javier97sm/yabridge/bridge/vst3"
	"github.com/Javier97sm/yabridge/core/dispatch"
	"github.com/Javier97sm/yabridge/core/eventloop"
	"github.com/Javier97sm/yabridge/fake"
	"github.com/Javier97sm/yabridge/wire"
)

type countingHandler struct {
	beginEdits atomic.Int32
}

func (h *countingHandler) BeginEdit(vst3.ParamID) api.Result {
	h.beginEdits.Add(1)
	return api.ResultOk
}

func (h *countingHandler) PerformEdit(vst3.ParamID, vst3.ParamValue) api.Result {
	return api.ResultOk
}

func (h *countingHandler) EndEdit(vst3.ParamID) api.Result { return api.ResultOk }

func (h *countingHandler) RestartComponent(int32) api.Result { return api.ResultOk }

func TestInstanceRegistry(t *testing.T) {
	b := bridge.New(bridge.Options{Channel: fake.NewChannel()})

	first := b.RegisterInstance("first")
	second := b.RegisterInstance("second")
	if first == second {
		t.Fatalf("duplicate instance ids: %d", first)
	}

	object, ok := b.Instance(first)
	if !ok || object != "first" {
		t.Errorf("Instance(%d) = (%v, %v)", first, object, ok)
	}
	if b.InstanceCount() != 2 {
		t.Errorf("count = %d, want 2", b.InstanceCount())
	}

	b.UnregisterInstance(first)
	if _, ok := b.Instance(first); ok {
		t.Error("instance survived unregister")
	}
	if b.InstanceCount() != 1 {
		t.Errorf("count = %d, want 1", b.InstanceCount())
	}
}

// Full round trip: a proxy on one pipe end drives a registered handler on a
// bridge serving the other end, with the call queued through the event loop.
func TestServeRoundTripOverPipe(t *testing.T) {
	hostEnd, pluginEnd := fake.NewChannelPipe()
	host := bridge.New(bridge.Options{Channel: hostEnd})

	handler := &countingHandler{}
	id := host.RegisterInstance(handler)
	vst3.RegisterComponentHandler(host.Registry(), host.Codec(), func(i api.InstanceID) vst3.ComponentHandler {
		object, ok := host.Instance(i)
		if !ok {
			return nil
		}
		return object.(vst3.ComponentHandler)
	})

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		host.Loop().Run()
	}()
	serveDone := make(chan error, 1)
	go func() { serveDone <- host.Serve() }()

	inv := dispatch.NewInvoker(pluginEnd, wire.Codec{})
	proxy := vst3.NewComponentHandlerProxy(vst3.ComponentHandlerArgs{Supported: true}, id, inv)
	if res := proxy.BeginEdit(7); !res.Ok() {
		t.Fatalf("BeginEdit = %v", res)
	}
	if n := handler.beginEdits.Load(); n != 1 {
		t.Errorf("handler ran %d times, want 1", n)
	}

	// The queued counter is bumped after the reply is already on its way,
	// so give it a moment.
	deadline := time.Now().Add(time.Second)
	for host.Metrics().InboundQueued == 0 {
		if time.Now().After(deadline) {
			t.Fatal("inbound call never counted as queued")
		}
		time.Sleep(time.Millisecond)
	}

	if err := host.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if err := <-serveDone; err != nil {
		t.Errorf("Serve returned %v after shutdown, want nil", err)
	}
	select {
	case <-loopDone:
	case <-time.After(time.Second):
		t.Fatal("event loop did not stop")
	}
}

// Middleware configured on the bridge must see every inbound call: the
// decoded request before dispatch, the response after, and the metrics
// middleware must feed the control counters.
func TestInboundMiddlewareWrapsDispatch(t *testing.T) {
	hostEnd, pluginEnd := fake.NewChannelPipe()
	ctl := adapters.NewControlAdapter()

	var sawInterface atomic.Uint32
	var sawResult atomic.Int32
	observe := func(next api.Handler) api.Handler {
		return adapters.HandlerFunc(func(data any) error {
			call := data.(*bridge.InboundCall)
			sawInterface.Store(uint32(call.Request.Interface))
			err := next.Handle(data)
			sawResult.Store(int32(call.Response.Result) + 1)
			return err
		})
	}

	host := bridge.New(bridge.Options{
		Channel: hostEnd,
		Middleware: []func(api.Handler) api.Handler{
			observe,
			adapters.MetricsMiddleware(ctl),
		},
	})
	handler := &countingHandler{}
	id := host.RegisterInstance(handler)
	vst3.RegisterComponentHandler(host.Registry(), host.Codec(), func(i api.InstanceID) vst3.ComponentHandler {
		object, ok := host.Instance(i)
		if !ok {
			return nil
		}
		return object.(vst3.ComponentHandler)
	})

	go host.Loop().Run()
	serveDone := make(chan error, 1)
	go func() { serveDone <- host.Serve() }()

	inv := dispatch.NewInvoker(pluginEnd, wire.Codec{})
	proxy := vst3.NewComponentHandlerProxy(vst3.ComponentHandlerArgs{Supported: true}, id, inv)
	if res := proxy.BeginEdit(1); !res.Ok() {
		t.Fatalf("BeginEdit = %v", res)
	}

	if got := sawInterface.Load(); got != uint32(vst3.InterfaceComponentHandler) {
		t.Errorf("middleware saw interface %d, want %d", got, vst3.InterfaceComponentHandler)
	}
	if got := sawResult.Load(); got != int32(api.ResultOk)+1 {
		t.Errorf("middleware saw result %d, want ok", got-1)
	}
	if got := ctl.Stats()["callback.processed"]; got != int64(1) {
		t.Errorf("callback.processed = %v, want 1", got)
	}

	if err := host.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if err := <-serveDone; err != nil {
		t.Errorf("Serve = %v, want nil", err)
	}
}

func TestPumpIntervalOption(t *testing.T) {
	b := bridge.New(bridge.Options{
		Channel:      fake.NewChannel(),
		PumpInterval: 10 * time.Millisecond,
	})
	if got := b.Loop().Interval(); got != 10*time.Millisecond {
		t.Errorf("interval = %v, want 10ms", got)
	}

	b = bridge.New(bridge.Options{Channel: fake.NewChannel()})
	if got := b.Loop().Interval(); got != eventloop.EventLoopInterval {
		t.Errorf("default interval = %v, want %v", got, eventloop.EventLoopInterval)
	}
}

func TestServeRejectsUndecodablePayload(t *testing.T) {
	channel := fake.NewChannel()
	b := bridge.New(bridge.Options{Channel: channel})
	serveDone := make(chan error, 1)
	go func() { serveDone <- b.Serve() }()

	reply := channel.PushInbound([]byte{0xff, 0x00})
	select {
	case payload := <-reply:
		resp, err := wire.UnmarshalResponse(payload)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Result != api.ResultInvalidArgument {
			t.Errorf("result = %v, want invalid argument", resp.Result)
		}
	case <-time.After(time.Second):
		t.Fatal("no reply to undecodable payload")
	}

	if err := b.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if err := <-serveDone; err != nil {
		t.Errorf("Serve = %v, want nil", err)
	}
}

// While a mutually recursive send is in flight, callback work posted through
// HandleOrQueue must run on the sending thread before the response lands.
func TestSendMutuallyRecursive(t *testing.T) {
	local, remote := fake.NewChannelPipe()
	b := bridge.New(bridge.Options{Channel: local})

	var callbackRan atomic.Bool
	go func() {
		in, err := remote.Next()
		if err != nil {
			t.Error(err)
			return
		}
		// The sender is parked in its nested context right now; this
		// must execute there before we answer.
		if err := b.HandleOrQueueWait(func() { callbackRan.Store(true) }); err != nil {
			t.Error(err)
		}
		payload, err := wire.MarshalResponse(&wire.CallResponse{Result: api.ResultTrue})
		if err != nil {
			t.Error(err)
			return
		}
		if err := in.Reply(payload); err != nil {
			t.Error(err)
		}
	}()

	res := b.SendMutuallyRecursive(1, vst3.InterfacePlugFrame, vst3.MethodResizeView, nil, nil)
	if res != api.ResultTrue {
		t.Errorf("result = %v, want true", res)
	}
	if !callbackRan.Load() {
		t.Error("callback did not run during the recursive send")
	}
	if b.Metrics().OutboundCalls != 1 {
		t.Errorf("outbound calls = %d, want 1", b.Metrics().OutboundCalls)
	}
}

// With no recursive send in flight, HandleOrQueue lands on the main loop.
func TestHandleOrQueueFallsBackToMainLoop(t *testing.T) {
	b := bridge.New(bridge.Options{Channel: fake.NewChannel()})

	ran := make(chan struct{})
	if err := b.HandleOrQueue(func() { close(ran) }); err != nil {
		t.Fatal(err)
	}

	b.Loop().Stop()
	b.Loop().Run()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("queued callback never ran on the main loop")
	}
}

func TestMetricsSnapshot(t *testing.T) {
	channel := fake.NewChannel()
	b := bridge.New(bridge.Options{Channel: channel})

	channel.ScriptResult(api.ResultOk)
	if res := b.SendMessage(1, 2, 3, nil, nil); !res.Ok() {
		t.Fatalf("SendMessage = %v", res)
	}
	b.RegisterInstance(struct{}{})

	m := b.Metrics()
	if m.OutboundCalls != 1 {
		t.Errorf("outbound = %d, want 1", m.OutboundCalls)
	}
	if m.ActiveInstances != 1 {
		t.Errorf("instances = %d, want 1", m.ActiveInstances)
	}
	if m.StartedAt.IsZero() {
		t.Error("StartedAt not set")
	}
}
