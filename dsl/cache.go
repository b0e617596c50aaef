package dsl

import (
	gocache "github.com/patrickmn/go-cache"

	"shapeshift/function"
)

// Cache stores compiled chains by resolver key and block fingerprint.
// Entries never expire; a registry write changes its key, so stale entries
// are simply never looked up again.
type Cache struct {
	items *gocache.Cache
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{items: gocache.New(gocache.NoExpiration, 0)}
}

// Get returns the chain stored under key.
func (c *Cache) Get(key string) (*function.Chain, bool) {
	v, found := c.items.Get(key)
	if !found {
		return nil, false
	}

	chain, ok := v.(*function.Chain)

	return chain, ok
}

// Set stores chain under key.
func (c *Cache) Set(key string, chain *function.Chain) {
	c.items.Set(key, chain, gocache.NoExpiration)
}

// Len returns the number of cached chains.
func (c *Cache) Len() int {
	return c.items.ItemCount()
}

// Flush removes every entry.
func (c *Cache) Flush() {
	c.items.Flush()
}

func cacheKey(resolverKey, fingerprint string) string {
	return resolverKey + "|" + fingerprint
}
