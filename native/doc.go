// Package native wraps the platform's low-level thread, timer, and module
// primitives behind scoped ownership types.
//
// Threads that call third-party plugin code, load or unload plugin modules,
// or enter a plugin's entry point must be created through this package
// rather than a higher-level threading abstraction: the native primitive
// initializes per-thread runtime state the plugin's runtime expects, which
// an alternate implementation does not. Non-windows builds substitute
// portable stand-ins with the same ownership semantics so the rest of the
// library stays testable everywhere.
package native
