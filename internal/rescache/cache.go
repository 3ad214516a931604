// Package rescache deduplicates GPU-facing drawable resources (meshes,
// materials) by descriptor key, so visually identical objects share one
// allocation.
package rescache

import (
	"strings"
	"sync"
)

// Resource is a shared drawable handle. Release frees the underlying GPU
// allocation; it is called only from DisposeAll, never on per-entity
// removal, because cached resources are value-identical, not entity-owned.
type Resource interface {
	Release()
}

// Cache maps descriptor keys to shared resources. Keys must be built
// deterministically (see keys.go) so identical semantic parameters always
// hit the same entry. The sandbox mutates the cache only from the main
// frame loop; the mutex keeps Stats safe to call from anywhere.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Resource
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]Resource)}
}

// GetOrCreate returns the resource cached under key, invoking factory
// exactly once on first request and storing its result. A nil factory
// result is not cached.
func (c *Cache) GetOrCreate(key string, factory func() Resource) Resource {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.entries[key]; ok {
		return r
	}
	r := factory()
	if r != nil {
		c.entries[key] = r
	}
	return r
}

// DisposeAll releases every cached resource and empties the cache. Used on
// full scene reset.
func (c *Cache) DisposeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.entries {
		r.Release()
	}
	c.entries = make(map[string]Resource)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns entry counts per resource kind. The kind is the key prefix
// before the first '-' (e.g. "sphere-r0.500" counts under "sphere").
func (c *Cache) Stats() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.entries))
	for key := range c.entries {
		kind := key
		if i := strings.IndexByte(key, '-'); i > 0 {
			kind = key[:i]
		}
		out[kind]++
	}
	return out
}
