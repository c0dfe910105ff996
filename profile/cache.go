// Package profile caches display metadata for platform user identities.
package profile

import (
	"sync"

	"github.com/eoss-th/linebrain/core"
)

// Cache is a concurrency-safe user profile cache keyed by user identity.
// Entries are populated asynchronously after the first message from a user;
// a missing entry is a valid state and lookups degrade to empty values.
type Cache struct {
	mu       sync.RWMutex
	profiles map[string]core.Profile
}

// NewCache constructs an empty profile cache.
func NewCache() *Cache {
	return &Cache{profiles: make(map[string]core.Profile)}
}

// Get returns the cached profile for the user, if any.
func (c *Cache) Get(userID string) (core.Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.profiles[userID]
	return p, ok
}

// Put stores the profile under its user identity.
func (c *Cache) Put(p core.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles[p.UserID] = p
}

// DisplayName returns the cached display name with the given suffix
// appended, or "" when no profile is cached for the user.
func (c *Cache) DisplayName(userID, suffix string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.profiles[userID]
	if !ok {
		return ""
	}
	return p.DisplayName + suffix
}

// FindByDisplayName reverse-looks-up a user identity by exact display name.
// When several cached profiles share the name an arbitrary one wins.
func (c *Cache) FindByDisplayName(displayName string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for id, p := range c.profiles {
		if p.DisplayName == displayName {
			return id, true
		}
	}
	return "", false
}
