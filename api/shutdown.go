// File: api/shutdown.go
// Package api defines the unified graceful shutdown contract.

package api

// GracefulShutdown is implemented by components that release resources on a
// controlled teardown.
type GracefulShutdown interface {
	// Shutdown stops internal services and frees resources. Returns an
	// error on failure.
	Shutdown() error
}
