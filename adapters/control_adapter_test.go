package adapters

import (
	"testing"

	"github.com/Javier97sm/yabridge/api"
)

func TestControlAdapterConfigRoundTrip(t *testing.T) {
	c := NewControlAdapter()
	if err := c.SetConfig(map[string]any{"verbosity": 1}); err != nil {
		t.Fatal(err)
	}
	cfg := c.GetConfig()
	if cfg["verbosity"] != 1 {
		t.Errorf("verbosity = %v, want 1", cfg["verbosity"])
	}
}

func TestControlAdapterStatsCombineProbes(t *testing.T) {
	c := NewControlAdapter()
	c.AddMetric("calls.outbound", 3)
	c.RegisterDebugProbe("loop.active", func() any { return false })

	stats := c.Stats()
	if stats["calls.outbound"] != int64(3) {
		t.Errorf("counter = %v, want 3", stats["calls.outbound"])
	}
	if stats["debug.loop.active"] != false {
		t.Errorf("probe missing from stats: %v", stats)
	}
}

func TestControlAdapterServiceInfoProbe(t *testing.T) {
	c := NewControlAdapter()
	info := api.ServiceInfo{Name: "grouphost", Version: "1.0.0"}
	c.RegisterServiceInfo(info)

	got, ok := c.Stats()["debug.service"].(api.ServiceInfo)
	if !ok {
		t.Fatalf("service probe missing from stats: %v", c.Stats())
	}
	if got.Name != "grouphost" || got.Version != "1.0.0" {
		t.Errorf("service info = %+v, want %+v", got, info)
	}
}

func TestControlAdapterReload(t *testing.T) {
	c := NewControlAdapter()
	fired := false
	c.OnReload(func() { fired = true })
	if err := c.SetConfig(map[string]any{"x": 1}); err != nil {
		t.Fatal(err)
	}
	if !fired {
		t.Error("reload listener did not fire")
	}
}

func TestMiddlewareChainOrder(t *testing.T) {
	var order []string
	base := HandlerFunc(func(any) error {
		order = append(order, "base")
		return nil
	})
	m := NewMiddlewareHandler(base)
	m.Use(func(next api.Handler) api.Handler {
		return HandlerFunc(func(data any) error {
			order = append(order, "first")
			return next.Handle(data)
		})
	})
	m.Use(func(next api.Handler) api.Handler {
		return HandlerFunc(func(data any) error {
			order = append(order, "second")
			return next.Handle(data)
		})
	})

	if err := m.Handle(nil); err != nil {
		t.Fatal(err)
	}
	want := []string{"first", "second", "base"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestMetricsMiddlewareCounts(t *testing.T) {
	c := NewControlAdapter()
	h := MetricsMiddleware(c)(HandlerFunc(func(any) error { return nil }))
	for i := 0; i < 3; i++ {
		if err := h.Handle(nil); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.Stats()["callback.processed"]; got != int64(3) {
		t.Errorf("callback.processed = %v, want 3", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(HandlerFunc(func(any) error {
		panic("plugin callback exploded")
	}))
	if err := h.Handle(nil); err != nil {
		t.Errorf("recovered handler returned error: %v", err)
	}
}
