// Package cache is the client-side server-state cache: results keyed by
// (resource, canonical query), invalidated wholesale per resource on any
// mutation of that resource.
package cache

import "sync"

// Key identifies one cached result. Query is the canonical encoding of the
// request parameters, so equal parameter sets share an entry.
type Key struct {
	Resource string
	Query    string
}

// Cache is a read-many/write-on-mutation map. Invalidation is synchronous:
// once InvalidateResource returns, no stale entry for that resource can be
// observed.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]any
}

func New() *Cache {
	return &Cache{entries: make(map[Key]any)}
}

func (c *Cache) Get(k Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[k]
	return v, ok
}

func (c *Cache) Set(k Key, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[k] = v
}

// InvalidateResource drops every entry keyed under the resource, regardless
// of query.
func (c *Cache) InvalidateResource(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.Resource == resource {
			delete(c.entries, k)
		}
	}
}

// Len reports the number of live entries. Intended for tests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
