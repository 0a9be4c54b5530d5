// File: control/config.go
//
// Group configuration: a TOML file loaded at startup plus a thread-safe
// store for values that may change at runtime.

package control

import (
	"fmt"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// GroupConfig is the static configuration for one plugin group, loaded from
// the yabridge.toml file that sits next to the bridged plugin.
type GroupConfig struct {
	// Group names the plugin group; plugins sharing a group share one
	// event-loop thread.
	Group string `toml:"group"`

	// EventLoopIntervalMS overrides the nominal message-pump period. Zero
	// keeps the built-in ~33 ms default.
	EventLoopIntervalMS int `toml:"event_loop_interval_ms"`

	// Verbosity selects how chatty the bridge logger is.
	Verbosity int `toml:"verbosity"`
}

// EventLoopInterval returns the configured pump period, or zero when the
// default applies.
func (c *GroupConfig) EventLoopInterval() time.Duration {
	return time.Duration(c.EventLoopIntervalMS) * time.Millisecond
}

// LoadGroupConfig parses a group configuration file.
func LoadGroupConfig(path string) (*GroupConfig, error) {
	var cfg GroupConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("control: load group config %q: %w", path, err)
	}
	return &cfg, nil
}

// ParseGroupConfig parses group configuration from TOML text.
func ParseGroupConfig(data string) (*GroupConfig, error) {
	var cfg GroupConfig
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("control: parse group config: %w", err)
	}
	return &cfg, nil
}

// ConfigStore is a dynamic key/value map with atomic snapshot and listener
// support for values tuned while the bridge is running.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
}

// NewConfigStore initializes a new config store with empty data.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config:    make(map[string]any),
		listeners: make([]func(), 0),
	}
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		out[k] = v
	}
	return out
}

// SetConfig merges new values and notifies reload listeners.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) {
	cs.mu.Lock()
	for k, v := range newCfg {
		cs.config[k] = v
	}
	listeners := make([]func(), len(cs.listeners))
	copy(listeners, cs.listeners)
	cs.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
