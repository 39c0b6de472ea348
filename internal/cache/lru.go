// Package cache keeps recently fetched documents so repeated checks against
// the same URL within a short window share one download.
package cache

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/usestring/xmlprobe/pkg/client"
)

// DocumentCache provides thread-safe LRU caching of fetched documents, keyed
// by URL. Entries expire after the configured TTL.
type DocumentCache struct {
	cache *expirable.LRU[string, *client.Document]
}

// NewDocumentCache creates a cache holding at most maxItems documents for ttl.
func NewDocumentCache(maxItems int, ttl time.Duration) (*DocumentCache, error) {
	if maxItems <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", maxItems)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", ttl)
	}
	return &DocumentCache{cache: expirable.NewLRU[string, *client.Document](maxItems, nil, ttl)}, nil
}

// Get retrieves a document by URL.
// Returns the document and true if found and not expired, nil and false otherwise.
func (c *DocumentCache) Get(url string) (*client.Document, bool) {
	return c.cache.Get(url)
}

// Put adds or updates a document in the cache.
func (c *DocumentCache) Put(url string, doc *client.Document) {
	c.cache.Add(url, doc)
}

// Len returns the current number of items in the cache.
func (c *DocumentCache) Len() int {
	return c.cache.Len()
}
