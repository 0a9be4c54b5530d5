// File: bridge/recursion.go
//
// Mutually recursive sends. When a plugin resizes itself it calls the
// host's frame from inside the message pump; the host answers by calling
// back into the view, and that call must run on the very GUI thread that is
// blocked waiting for the resize to return. The blocking send is therefore
// moved to its own thread while the GUI thread runs a nested context that
// accepts exactly that callback work until the response lands. Nested
// resizes stack, so the contexts do too.

package bridge

import (
	"github.com/Javier97sm/yabridge/api"
	"github.com/Javier97sm/yabridge/core/eventloop"
	"github.com/Javier97sm/yabridge/native"
)

// SendMutuallyRecursive performs an outbound call while keeping the calling
// thread available for callback work posted through HandleOrQueue. Must be
// called from the thread that owns the group's event loop (or a nested
// context of it).
func (b *Bridge) SendMutuallyRecursive(instance api.InstanceID, iface api.InterfaceID, method api.MethodID, args any, out any) api.Result {
	nested := eventloop.NewMainContext()
	b.pushRecursion(nested)

	var result api.Result
	thread, err := native.SpawnThread(func() {
		result = b.SendMessage(instance, iface, method, args, out)

		// Stop accepting additional work on the calling thread once the
		// response has arrived.
		b.popRecursion(nested)
		nested.Stop()
	})
	if err != nil {
		// No thread to carry the send; fall back to a plain blocking call.
		b.popRecursion(nested)
		return b.SendMessage(instance, iface, method, args, out)
	}
	defer thread.Close()

	// Run callback work from the sending thread until the response lands.
	nested.Run()
	return result
}

// HandleOrQueue runs fn on the thread a mutually recursive send is keeping
// available, if one is in flight; otherwise it posts fn to the group's main
// event loop.
func (b *Bridge) HandleOrQueue(fn func()) error {
	b.recursionMu.Lock()
	target := b.loop
	if n := len(b.recursion); n > 0 {
		target = b.recursion[n-1]
	}
	b.recursionMu.Unlock()
	return target.Schedule(fn)
}

// HandleOrQueueWait is HandleOrQueue plus completion: it blocks until fn
// has finished executing on its target thread.
func (b *Bridge) HandleOrQueueWait(fn func()) error {
	done := make(chan struct{})
	err := b.HandleOrQueue(func() {
		defer close(done)
		fn()
	})
	if err != nil {
		return err
	}
	<-done
	return nil
}

func (b *Bridge) pushRecursion(ctx *eventloop.MainContext) {
	b.recursionMu.Lock()
	b.recursion = append(b.recursion, ctx)
	b.recursionMu.Unlock()
}

func (b *Bridge) popRecursion(ctx *eventloop.MainContext) {
	b.recursionMu.Lock()
	for i := len(b.recursion) - 1; i >= 0; i-- {
		if b.recursion[i] == ctx {
			b.recursion = append(b.recursion[:i], b.recursion[i+1:]...)
			break
		}
	}
	b.recursionMu.Unlock()
}
