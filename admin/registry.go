// Package admin maintains the ordered set of administrator user identities:
// one implicit bootstrap entry plus entries persisted in a collaborator-owned
// text blob. The set is append-only; there is no removal path.
package admin

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/eoss-th/linebrain/core"
)

// BootstrapAdminID is always the first admin regardless of the persisted
// list.
const BootstrapAdminID = "Uee73cf96d1dbe69a260d46fc03393cfd"

// Registry loads and persists the admin list through a TextStore blob named
// "<bot>.admin.txt". Registrations are serialized in-process; the blob
// read-modify-write is still racy across concurrent processes, which is a
// known limitation carried over from the legacy deployment.
type Registry struct {
	store core.TextStore
	name  string

	mu     sync.Mutex
	ids    []string
	loaded bool
}

// NewRegistry creates a registry persisting under the given bot name.
func NewRegistry(store core.TextStore, botName string) *Registry {
	return &Registry{store: store, name: botName}
}

func (r *Registry) blobName() string { return r.name + ".admin.txt" }

// loadLocked populates ids from the bootstrap entry plus the persisted
// blob, deduplicating while preserving order. Caller holds mu.
func (r *Registry) loadLocked(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	r.ids = []string{BootstrapAdminID}

	content, err := r.store.Read(ctx, r.blobName())
	if err != nil {
		return fmt.Errorf("read admin list: %w", err)
	}
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		id := strings.TrimSpace(line)
		if id == "" {
			continue
		}
		if !contains(r.ids, id) {
			r.ids = append(r.ids, id)
		}
	}
	r.loaded = true
	return nil
}

// IDs returns a snapshot of the admin identities, loading the persisted
// list on first use.
func (r *Registry) IDs(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.loadLocked(ctx); err != nil {
		return nil, err
	}
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out, nil
}

// Contains reports whether the user identity is an admin.
func (r *Registry) Contains(ctx context.Context, userID string) (bool, error) {
	ids, err := r.IDs(ctx)
	if err != nil {
		return false, err
	}
	return contains(ids, userID), nil
}

// Register appends the user identity to the in-memory list and persists it.
// Persistence is idempotent: the blob is rewritten only when the identity is
// not already present in the stored text.
func (r *Registry) Register(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.loadLocked(ctx); err != nil {
		return err
	}
	if !contains(r.ids, userID) {
		r.ids = append(r.ids, userID)
	}

	content, err := r.store.Read(ctx, r.blobName())
	if err != nil {
		return fmt.Errorf("read admin list: %w", err)
	}
	if strings.Contains(content, userID) {
		return nil
	}
	if err := r.store.Write(ctx, r.blobName(), content+userID+"\n"); err != nil {
		return fmt.Errorf("persist admin list: %w", err)
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
