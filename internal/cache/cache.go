// Package cache memoizes parsed tables and derived results, keyed by a
// content fingerprint of the uploaded file plus the request parameters.
package cache

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"
)

// Cache is a bounded, concurrency-safe LRU map
type Cache[V any] struct {
	entries *lru.Cache[string, V]
}

// New creates a cache holding at most size entries
func New[V any](size int) (*Cache[V], error) {
	entries, err := lru.New[string, V](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Cache[V]{entries: entries}, nil
}

// Get returns the value stored under key
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.entries.Get(key)
}

// Add stores value under key, evicting the least recently used entry when full
func (c *Cache[V]) Add(key string, value V) {
	c.entries.Add(key, value)
}

// Remove drops a single entry
func (c *Cache[V]) Remove(key string) {
	c.entries.Remove(key)
}

// Purge drops every entry
func (c *Cache[V]) Purge() {
	c.entries.Purge()
}

// Len returns the number of entries
func (c *Cache[V]) Len() int {
	return c.entries.Len()
}

// Fingerprint hashes file content into a 128-bit hex digest
func Fingerprint(data []byte) string {
	h := xxh3.Hash128(data)
	return fmt.Sprintf("%016x%016x", h.Hi, h.Lo)
}

// Key joins a fingerprint with parameter values into a cache key
func Key(fingerprint string, params ...any) string {
	var b strings.Builder
	b.WriteString(fingerprint)
	for _, p := range params {
		b.WriteByte('|')
		fmt.Fprint(&b, p)
	}
	return b.String()
}
