// File: core/eventloop/eventloop.go
//
// MainContext is the single-threaded owner of a plugin group's deferred work
// queue and periodic GUI message pump. A single instance is shared by every
// plugin in a group so that GUI-affecting events can be handled on one
// thread, which the native toolkit requires.
//
// While the periodic handler is pumping the message loop the owning thread
// cannot drain its queue. The reentrancy flag exposed here lets the dispatch
// layer detect that window and run inbound calls on their own thread instead
// of queueing them, which would deadlock.

package eventloop

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"

	"github.com/Javier97sm/yabridge/api"
)

// EventLoopInterval is the nominal delay between message-pump ticks, at an
// even more than cinematic 30 fps. Group configuration may override it per
// context.
const EventLoopInterval = time.Second / 30

// MinimumSlack is the floor between a tick finishing and the next one
// firing. Keeps other queued work runnable when a pump tick overruns.
const MinimumSlack = 5 * time.Millisecond

// pump holds the registered periodic handler and its rolling deadline. The
// expiry field is only touched by the owning thread once registered.
type pump struct {
	handler func()
	expiry  time.Time
}

// MainContext multiplexes a FIFO task queue and a periodic message-pump
// handler onto one owning thread.
type MainContext struct {
	mu     sync.Mutex
	tasks  *queue.Queue // FIFO of func(), guarded by mu
	pump   *pump        // nil until SchedulePeriodic
	closed bool

	interval time.Duration // pump period, fixed at construction

	wake   chan struct{} // producer kick, buffered
	quitCh chan struct{} // closed on Stop()
	doneCh chan struct{} // closed after Run() exits

	running    atomic.Bool
	pumpActive atomic.Bool
	ticks      atomic.Uint64
}

// NewMainContext creates an idle context with the nominal pump interval.
// Run must be called from exactly one thread for the lifetime of the context.
func NewMainContext() *MainContext {
	return NewMainContextWithInterval(EventLoopInterval)
}

// NewMainContextWithInterval creates an idle context whose pump fires every
// interval, for groups that configure a non-default period. Non-positive
// intervals fall back to the nominal one.
func NewMainContextWithInterval(interval time.Duration) *MainContext {
	if interval <= 0 {
		interval = EventLoopInterval
	}
	return &MainContext{
		tasks:    queue.New(),
		interval: interval,
		wake:     make(chan struct{}, 1),
		quitCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Interval returns the pump period this context was created with.
func (mc *MainContext) Interval() time.Duration {
	return mc.interval
}

// Schedule posts a task to be executed on the owning thread. Tasks posted
// while the loop is not inside the pump handler run in strict arrival order.
// Returns api.ErrQueueClosed after Stop.
func (mc *MainContext) Schedule(task func()) error {
	if task == nil {
		return api.ErrInvalidArgument
	}
	mc.mu.Lock()
	if mc.closed {
		mc.mu.Unlock()
		return api.ErrQueueClosed
	}
	mc.tasks.Add(task)
	mc.mu.Unlock()

	select {
	case mc.wake <- struct{}{}:
	default:
	}
	return nil
}

// SchedulePeriodic registers handler to run once per tick on the owning
// thread. The handler is expected to pump all pending native GUI messages
// and any other native event source in one call. Registering a new handler
// replaces the previous one.
func (mc *MainContext) SchedulePeriodic(handler func()) {
	p := &pump{handler: handler, expiry: time.Now().Add(mc.interval)}
	mc.mu.Lock()
	mc.pump = p
	mc.mu.Unlock()

	select {
	case mc.wake <- struct{}{}:
	default:
	}
}

// IsEventLoopActive reports whether the owning thread is currently inside
// the pump handler and therefore unavailable to drain the task queue.
func (mc *MainContext) IsEventLoopActive() bool {
	return mc.pumpActive.Load()
}

// Ticks returns the number of pump ticks fired so far.
func (mc *MainContext) Ticks() uint64 {
	return mc.ticks.Load()
}

// Pending returns the number of queued tasks awaiting the owning thread.
func (mc *MainContext) Pending() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.tasks.Length()
}

// Run blocks the calling thread, draining the task queue and firing the
// periodic pump until Stop is called. Queued work and the pump handler
// execute on this thread only. Run is single-shot: concurrent calls and
// calls after it has returned are no-ops.
func (mc *MainContext) Run() {
	if !mc.running.CompareAndSwap(false, true) {
		return // running now or already ran to completion
	}
	defer close(mc.doneCh)

	// Reusable timer, initially stopped.
	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}

	for {
		for {
			task, ok := mc.pop()
			if !ok {
				break
			}
			task()
		}

		mc.mu.Lock()
		closed := mc.closed
		empty := mc.tasks.Length() == 0
		p := mc.pump
		mc.mu.Unlock()

		if closed && empty {
			// Stop also ends the periodic rescheduling chain. This is the
			// normal shutdown path, not an error.
			return
		}
		if !empty {
			continue
		}

		if p != nil {
			now := time.Now()
			if !now.Before(p.expiry) {
				p.expiry = nextExpiry(p.expiry, now, mc.interval)
				mc.pumpActive.Store(true)
				p.handler()
				mc.pumpActive.Store(false)
				mc.ticks.Add(1)
				continue
			}
			timer.Reset(p.expiry.Sub(now))
			select {
			case <-mc.wake:
				stopTimer(timer)
			case <-mc.quitCh:
				stopTimer(timer)
			case <-timer.C:
			}
		} else {
			select {
			case <-mc.wake:
			case <-mc.quitCh:
			}
		}
	}
}

// Stop marks the queue closed. Pending work still runs to completion; Run
// returns once the queue has drained. Does not guarantee immediate return.
func (mc *MainContext) Stop() {
	mc.mu.Lock()
	mc.closed = true
	mc.mu.Unlock()

	select {
	case <-mc.quitCh:
		// already closed
	default:
		close(mc.quitCh)
	}
}

// Done is closed once Run has returned.
func (mc *MainContext) Done() <-chan struct{} {
	return mc.doneCh
}

func (mc *MainContext) pop() (func(), bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.tasks.Length() == 0 {
		return nil, false
	}
	return mc.tasks.Remove().(func()), true
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

// nextExpiry keeps a steady tick cadence by advancing from the previous
// deadline, with a slack floor so an overrunning tick never causes
// back-to-back catch-up bursts.
func nextExpiry(prev, now time.Time, interval time.Duration) time.Time {
	next := prev.Add(interval)
	if floor := now.Add(MinimumSlack); floor.After(next) {
		next = floor
	}
	return next
}
