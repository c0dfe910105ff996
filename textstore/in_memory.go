// Package textstore provides named text blob implementations behind
// core.TextStore: an in-memory store for tests and a directory-backed file
// store for single-node deployments.
package textstore

import (
	"context"
	"sync"
)

// InMemoryStore keeps named text blobs in a process-local map. Reading a
// name that was never written returns "" and no error, matching the
// append-after-read usage of the callers.
type InMemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]string
}

// NewInMemoryStore constructs an empty in-memory text store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{blobs: make(map[string]string)}
}

// Read returns the blob content, "" when absent.
func (s *InMemoryStore) Read(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blobs[name], nil
}

// Write replaces the blob content.
func (s *InMemoryStore) Write(ctx context.Context, name, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[name] = content
	return nil
}
