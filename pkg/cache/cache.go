package cache

import (
	"sync"
	"time"
)

// Entry represents a cached value with expiration
type Entry struct {
	Value     string
	ExpiresAt time.Time
}

// Cache is a small in-memory TTL cache. The session gate uses it to track
// issued session tokens so logout can revoke them before the token expires.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*Entry
}

// New creates a new cache
func New() *Cache {
	return &Cache{items: map[string]*Entry{}}
}

// Set stores a value in the cache with a given TTL
func (c *Cache) Set(key, value string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = &Entry{
		Value:     value,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// Get retrieves a value from the cache if it hasn't expired
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, exists := c.items[key]
	if !exists {
		return "", false
	}
	if time.Now().After(entry.ExpiresAt) {
		return "", false
	}
	return entry.Value, true
}

// Delete removes a key from the cache
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes all items from the cache
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = map[string]*Entry{}
}

// Len counts the unexpired items
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	now := time.Now()
	n := 0
	for _, entry := range c.items {
		if now.Before(entry.ExpiresAt) {
			n++
		}
	}
	return n
}
