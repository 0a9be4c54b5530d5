// File: api/types.go
//
// Shared API-level type declarations, identifiers, and constants.

package api

import "time"

// InstanceID identifies one remote object instance for the lifetime of a
// channel session. Identity is channel-scoped: the same ID never refers to
// two different remote objects within a session.
type InstanceID uint64

// InterfaceID identifies a proxied interface family on the wire.
type InterfaceID uint32

// MethodID identifies one method of a proxied interface on the wire.
type MethodID uint32

// DispatchPath records how an inbound call was scheduled.
type DispatchPath int

const (
	// DispatchQueued means the call was posted to the event-loop task queue
	// and will execute on the owning thread in arrival order.
	DispatchQueued DispatchPath = iota
	// DispatchImmediate means the call was run on its own ad hoc thread
	// because the event loop was busy inside its message-pump handler.
	DispatchImmediate
)

func (p DispatchPath) String() string {
	switch p {
	case DispatchQueued:
		return "queued"
	case DispatchImmediate:
		return "immediate"
	default:
		return "unknown"
	}
}

// BridgeMetrics provides a standard layout for bridge health reporting.
type BridgeMetrics struct {
	OutboundCalls    uint64
	InboundQueued    uint64
	InboundImmediate uint64
	EventLoopTicks   uint64
	ActiveInstances  int
	StartedAt        time.Time
}

// ServiceInfo exposes descriptive build- and runtime info for external tools.
type ServiceInfo struct {
	Name      string
	Version   string
	Build     string
	StartedAt time.Time
}
