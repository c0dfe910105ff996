package session

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/eoss-th/linebrain/core"
)

// Store is a process-lifetime cache of reasoning-engine sessions keyed by
// sender identity. It is safe for concurrent access. Entries are never
// evicted: a Leave abandons the conversation, not the session entry.
//
// GetOrCreate is the atomic check-then-insert primitive: the factory runs at
// most once per key even when called concurrently, so session side effects
// (greeting push, wake-up handshake) happen exactly once per participant.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]core.ReasoningSession
	group    singleflight.Group
}

// NewStore constructs an empty in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]core.ReasoningSession)}
}

// Get returns the cached session for the sender, if any.
func (s *Store) Get(senderID string) (core.ReasoningSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[senderID]
	return sess, ok
}

// GetOrCreate returns the cached session for the sender or runs factory to
// create and cache one. Concurrent callers for the same sender share a
// single factory invocation; a factory error is returned to all of them and
// nothing is cached.
func (s *Store) GetOrCreate(senderID string, factory func() (core.ReasoningSession, error)) (core.ReasoningSession, error) {
	if sess, ok := s.Get(senderID); ok {
		return sess, nil
	}

	v, err, _ := s.group.Do(senderID, func() (any, error) {
		// Re-check under the flight: a previous flight may have populated
		// the map between the fast path and Do.
		if sess, ok := s.Get(senderID); ok {
			return sess, nil
		}
		sess, err := factory()
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.sessions[senderID] = sess
		s.mu.Unlock()
		return sess, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(core.ReasoningSession), nil
}

// Len reports the number of cached sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
