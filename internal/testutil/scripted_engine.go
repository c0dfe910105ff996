package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/eoss-th/linebrain/core"
)

// ScriptedEngine is a core.ReasoningEngine whose sessions answer via a
// script function. It counts session creations and wake handshakes so tests
// can assert creation-on-miss happened exactly once.
type ScriptedEngine struct {
	script func(msg core.MessageObject) (string, error)
	events chan core.NodeEvent

	NewSessionErr error

	sessions atomic.Int64
	wakes    atomic.Int64
}

var _ core.ReasoningEngine = (*ScriptedEngine)(nil)

// NewScriptedEngine creates an engine whose sessions delegate Parse to
// script. A nil script echoes the message text.
func NewScriptedEngine(script func(msg core.MessageObject) (string, error)) *ScriptedEngine {
	if script == nil {
		script = func(msg core.MessageObject) (string, error) { return msg.String(), nil }
	}
	return &ScriptedEngine{script: script, events: make(chan core.NodeEvent, 16)}
}

// NewSession creates a scripted session or fails with NewSessionErr.
func (e *ScriptedEngine) NewSession(ctx context.Context) (core.ReasoningSession, error) {
	if e.NewSessionErr != nil {
		return nil, e.NewSessionErr
	}
	e.sessions.Add(1)
	return &scriptedSession{engine: e}, nil
}

// Events returns the lifecycle notification channel.
func (e *ScriptedEngine) Events() <-chan core.NodeEvent { return e.events }

// Emit publishes a lifecycle notification as the engine would.
func (e *ScriptedEngine) Emit(ev core.NodeEvent) { e.events <- ev }

// Close closes the notification channel.
func (e *ScriptedEngine) Close() { close(e.events) }

// SessionCount reports how many sessions were created.
func (e *ScriptedEngine) SessionCount() int { return int(e.sessions.Load()) }

// WakeCount reports how many wake handshakes ran.
func (e *ScriptedEngine) WakeCount() int { return int(e.wakes.Load()) }

type scriptedSession struct {
	engine *ScriptedEngine
	mu     sync.Mutex
}

func (s *scriptedSession) Wake(ctx context.Context) error {
	s.engine.wakes.Add(1)
	return nil
}

func (s *scriptedSession) Parse(ctx context.Context, msg core.MessageObject) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.script(msg)
}
