// Package session caches reasoning-engine sessions keyed by conversation
// participant. Creation on first use is collapsed per key so two concurrent
// first messages from the same participant never construct two sessions.
package session
