// Package control
//
// Runtime configuration, metrics, and debug introspection for a plugin
// group's bridge. Group configuration is loaded once from a TOML file next
// to the bridged plugin; runtime-tunable values live in a concurrent-safe
// store with reload listeners.
package control
