package core

import "context"

// ReasoningEngine is the opaque conversational brain behind the boundary
// layer. The boundary only ever hands it plain text (wrapped in a
// MessageObject) and receives plain directive strings back.
//
// Implementations SHOULD:
//   - Return a ready-to-use session from NewSession without side effects;
//     the gateway drives the wake-up handshake itself.
//   - Publish lifecycle notifications to the Events channel at arbitrary
//     times relative to Parse calls. The channel is owned by the engine and
//     closed when the engine shuts down.
type ReasoningEngine interface {
	// NewSession creates a fresh conversational session.
	NewSession(ctx context.Context) (ReasoningSession, error)

	// Events returns the channel lifecycle notifications are published to.
	// The dispatcher is the single consumer.
	Events() <-chan NodeEvent
}

// ReasoningSession is a per-conversation-participant handle into the
// engine's state. Sessions are not safe for concurrent use by multiple
// goroutines; the gateway serializes access per participant.
type ReasoningSession interface {
	// Wake runs the engine's wake-up handshake once, immediately after
	// session creation.
	Wake(ctx context.Context) error

	// Parse feeds one normalized inbound message to the engine and returns
	// the directive string to render back to the platform.
	Parse(ctx context.Context, msg MessageObject) (string, error)
}
