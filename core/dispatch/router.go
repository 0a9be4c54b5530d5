// File: core/dispatch/router.go
//
// Router decides where an inbound call executes. The normal path posts it
// to the event-loop task queue, preserving arrival order on the owning
// thread. While the loop is inside its message-pump handler that thread is
// blocked, and a plugin calling back into the host during the pump would
// deadlock if queued; such calls run on their own ad hoc thread instead,
// trading ordering for deadlock avoidance.

package dispatch

import (
	"github.com/Javier97sm/yabridge/api"
	"github.com/Javier97sm/yabridge/native"
)

// Loop is the slice of the event-loop context the router depends on.
type Loop interface {
	Schedule(task func()) error
	IsEventLoopActive() bool
}

// SpawnFunc starts fn on a fresh execution context. The default spawns a
// native thread, since redirected calls typically reenter plugin code.
type SpawnFunc func(fn func()) error

// Router applies the reentrancy dispatch policy.
type Router struct {
	loop  Loop
	spawn SpawnFunc
}

// NewRouter creates a router for loop. A nil spawn uses a detached native
// thread per redirected call.
func NewRouter(loop Loop, spawn SpawnFunc) *Router {
	if spawn == nil {
		spawn = spawnDetached
	}
	return &Router{loop: loop, spawn: spawn}
}

// Deliver schedules fn and reports which path it took. The reentrancy flag
// is checked at the moment the call arrives; calls redirected while the
// flag is set have no ordering guarantee relative to queued work.
func (r *Router) Deliver(fn func()) (api.DispatchPath, error) {
	if r.loop.IsEventLoopActive() {
		if err := r.spawn(fn); err != nil {
			return api.DispatchImmediate, err
		}
		return api.DispatchImmediate, nil
	}
	if err := r.loop.Schedule(fn); err != nil {
		return api.DispatchQueued, err
	}
	return api.DispatchQueued, nil
}

func spawnDetached(fn func()) error {
	t, err := native.SpawnThread(fn)
	if err != nil {
		return err
	}
	// Thread lifetime and handle lifetime are decoupled; the call keeps
	// running after the handle is released.
	return t.Close()
}
