package eventloop

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/Javier97sm/yabridge/api"
)

func TestNextExpirySlackFloor(t *testing.T) {
	now := time.Now()

	// Tick overran: previous expiry is far in the past. The next deadline
	// must still be at least MinimumSlack away, never a catch-up burst.
	next := nextExpiry(now.Add(-10*EventLoopInterval), now, EventLoopInterval)
	if next.Before(now.Add(MinimumSlack)) {
		t.Errorf("next expiry %v violates slack floor %v", next, now.Add(MinimumSlack))
	}

	// Nominal case: cadence advances from the previous expiry.
	prev := now.Add(2 * time.Millisecond)
	next = nextExpiry(prev, now, EventLoopInterval)
	if got, want := next, prev.Add(EventLoopInterval); !got.Equal(want) {
		t.Errorf("next expiry = %v, want %v", got, want)
	}
}

func TestNextExpiryMonotonic(t *testing.T) {
	now := time.Now()
	expiry := now
	for i := 0; i < 1000; i++ {
		next := nextExpiry(expiry, now, EventLoopInterval)
		if next.Before(expiry) {
			t.Fatalf("expiry regressed at step %d: %v -> %v", i, expiry, next)
		}
		if next.Before(now.Add(MinimumSlack)) {
			t.Fatalf("expiry below slack floor at step %d", i)
		}
		expiry = next
		// Simulate an overrunning handler every third tick.
		if i%3 == 0 {
			now = expiry.Add(3 * EventLoopInterval)
		} else {
			now = expiry
		}
	}
}

func TestPeriodicTickRate(t *testing.T) {
	mc := NewMainContext()
	var ticks atomic.Uint64
	mc.SchedulePeriodic(func() { ticks.Add(1) })

	go func() {
		time.Sleep(1 * time.Second)
		mc.Stop()
	}()
	mc.Run()

	got := ticks.Load()
	if got < 25 || got > 35 {
		t.Errorf("ticks in 1s = %d, want [25, 35]", got)
	}
}

func TestConfiguredPumpInterval(t *testing.T) {
	if got := NewMainContext().Interval(); got != EventLoopInterval {
		t.Errorf("default interval = %v, want %v", got, EventLoopInterval)
	}
	if got := NewMainContextWithInterval(0).Interval(); got != EventLoopInterval {
		t.Errorf("zero interval = %v, want nominal fallback %v", got, EventLoopInterval)
	}

	// A shorter configured period must actually speed up the pump.
	mc := NewMainContextWithInterval(10 * time.Millisecond)
	var ticks atomic.Uint64
	mc.SchedulePeriodic(func() { ticks.Add(1) })

	go func() {
		time.Sleep(1 * time.Second)
		mc.Stop()
	}()
	mc.Run()

	got := ticks.Load()
	if got < 70 || got > 130 {
		t.Errorf("ticks in 1s at 10ms period = %d, want [70, 130]", got)
	}
}

func TestReentrancyFlagWindow(t *testing.T) {
	mc := NewMainContext()

	var sawActive, sawInactiveInside atomic.Bool
	mc.SchedulePeriodic(func() {
		if mc.IsEventLoopActive() {
			sawActive.Store(true)
		} else {
			sawInactiveInside.Store(true)
		}
	})

	var sawActiveOutside atomic.Bool
	for i := 0; i < 10; i++ {
		if err := mc.Schedule(func() {
			if mc.IsEventLoopActive() {
				sawActiveOutside.Store(true)
			}
		}); err != nil {
			t.Fatal(err)
		}
	}

	go func() {
		time.Sleep(200 * time.Millisecond)
		mc.Stop()
	}()
	mc.Run()

	if !sawActive.Load() {
		t.Error("flag was never true inside the pump handler")
	}
	if sawInactiveInside.Load() {
		t.Error("flag observed false inside the pump handler")
	}
	if sawActiveOutside.Load() {
		t.Error("flag observed true outside the pump handler")
	}
	if mc.IsEventLoopActive() {
		t.Error("flag still true after Run returned")
	}
}

func TestScheduleFIFO(t *testing.T) {
	mc := NewMainContext()

	var order []int
	for i := 0; i < 100; i++ {
		i := i
		if err := mc.Schedule(func() { order = append(order, i) }); err != nil {
			t.Fatal(err)
		}
	}
	mc.Stop()
	mc.Run()

	if len(order) != 100 {
		t.Fatalf("ran %d tasks, want 100", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("task %d ran at position %d", v, i)
		}
	}
}

func TestStopDrainsPendingWork(t *testing.T) {
	mc := NewMainContext()

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		if err := mc.Schedule(func() { ran.Add(1) }); err != nil {
			t.Fatal(err)
		}
	}
	mc.Stop()
	mc.Run()

	if got := ran.Load(); got != 5 {
		t.Errorf("ran %d pending tasks after Stop, want 5", got)
	}
	if err := mc.Schedule(func() {}); err != api.ErrQueueClosed {
		t.Errorf("Schedule after Stop = %v, want ErrQueueClosed", err)
	}
}

func TestConcurrentRunRejected(t *testing.T) {
	mc := NewMainContext()
	go mc.Run()

	// Give the first Run time to take ownership, then a second Run must
	// return immediately instead of competing for the queue.
	time.Sleep(20 * time.Millisecond)
	done := make(chan struct{})
	go func() {
		mc.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second Run did not return immediately")
	}

	mc.Stop()
	select {
	case <-mc.Done():
	case <-time.After(time.Second):
		t.Fatal("Run did not exit after Stop")
	}
}

func TestRunAfterCompletionIsNoOp(t *testing.T) {
	mc := NewMainContext()
	mc.Stop()
	mc.Run()

	select {
	case <-mc.Done():
	case <-time.After(time.Second):
		t.Fatal("first Run did not complete")
	}

	// A second sequential Run must return without executing anything,
	// never panic on the completed context.
	done := make(chan struct{})
	go func() {
		mc.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run on a completed context did not return")
	}
}
