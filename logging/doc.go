// Package logging provides a minimal logging interface and adapters for
// linebrain.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) the gateway, dispatcher and renderer use for observability.
// This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - BotLogger with contextual helpers (component, sender) and domain
//     helpers for push/dispatch outcomes
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
