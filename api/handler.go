// File: api/handler.go
// Package api defines the Handler interface for inbound dispatch.

package api

// Handler processes one decoded inbound payload.
type Handler interface {
	Handle(data any) error
}
