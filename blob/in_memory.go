// Package blob provides media blob storage implementations behind
// core.BlobStore. Production deployments typically point this at object
// storage; the in-memory store serves tests and single-process prototypes.
package blob

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// ErrNotFound is returned when a blob with the given name does not exist in
// the underlying store.
var ErrNotFound = fmt.Errorf("blob not found")

// DefaultBaseURL is the storage root media URLs are served from when no
// deployment-specific root is configured.
const DefaultBaseURL = "https://storage.googleapis.com/eoss-th-bin/"

// InMemoryStore keeps blobs in a process-local map guarded by an RWMutex.
// Saved bytes are copied so callers cannot mutate stored data afterwards.
// It does not enforce retention limits, size quotas, or eviction.
type InMemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	blobs   map[string][]byte
}

// NewInMemoryStore returns an empty store whose Save URLs are rooted at
// baseURL.
func NewInMemoryStore(baseURL string) *InMemoryStore {
	return &InMemoryStore{baseURL: baseURL, blobs: make(map[string][]byte)}
}

// Save reads r to completion, stores the bytes under name and returns the
// public URL for the blob.
func (s *InMemoryStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read blob content: %w", err)
	}
	s.mu.Lock()
	s.blobs[name] = data
	s.mu.Unlock()
	return s.baseURL + name, nil
}

// Get returns a copy of the stored blob bytes or ErrNotFound.
func (s *InMemoryStore) Get(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[name]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}
