// File: adapters/control_adapter.go
// Package adapters
//
// Control adapter implementing the api.Control interface using control
// package primitives.

package adapters

import (
	"github.com/Javier97sm/yabridge/api"
	"github.com/Javier97sm/yabridge/control"
)

// ControlAdapter bundles config, metrics, and debug probes behind
// api.Control.
type ControlAdapter struct {
	config  *control.ConfigStore
	metrics *control.MetricsRegistry
	debug   *control.DebugProbes
}

// NewControlAdapter constructs an api.Control with empty state.
func NewControlAdapter() *ControlAdapter {
	return &ControlAdapter{
		config:  control.NewConfigStore(),
		metrics: control.NewMetricsRegistry(),
		debug:   control.NewDebugProbes(),
	}
}

func (c *ControlAdapter) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}

func (c *ControlAdapter) SetConfig(cfg map[string]any) error {
	c.config.SetConfig(cfg)
	return nil
}

func (c *ControlAdapter) Stats() map[string]any {
	stats := c.metrics.GetSnapshot()
	debugStats := c.debug.DumpState()
	combined := make(map[string]any, len(stats)+len(debugStats))
	for k, v := range stats {
		combined[k] = v
	}
	for k, v := range debugStats {
		combined["debug."+k] = v
	}
	return combined
}

func (c *ControlAdapter) OnReload(fn func()) {
	c.config.OnReload(fn)
}

// SetMetric records a metric value.
func (c *ControlAdapter) SetMetric(key string, value any) {
	c.metrics.Set(key, value)
}

// AddMetric increments a counter metric.
func (c *ControlAdapter) AddMetric(key string, delta int64) {
	c.metrics.Add(key, delta)
}

func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}

// RegisterServiceInfo exposes the bridge binary's identity as a debug
// probe, for external tools scraping Stats.
func (c *ControlAdapter) RegisterServiceInfo(info api.ServiceInfo) {
	c.debug.RegisterProbe("service", func() any { return info })
}

// RegisterBridgeProbes exposes a bridge's live counters as debug probes.
func RegisterBridgeProbes(c *ControlAdapter, metrics func() api.BridgeMetrics) {
	c.RegisterDebugProbe("bridge.metrics", func() any {
		return metrics()
	})
}
