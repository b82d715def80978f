package driver

import (
	"sync"

	"pycst/internal/project"
)

// ParseCache is an in-process map in front of an optional DiskCache.
type ParseCache struct {
	mu   sync.RWMutex
	mem  map[project.Digest]*CacheEntry
	disk *DiskCache
}

// NewParseCache creates a ParseCache with the given capacity hint. disk may be nil.
func NewParseCache(disk *DiskCache, capHint int) *ParseCache {
	return &ParseCache{mem: make(map[project.Digest]*CacheEntry, capHint), disk: disk}
}

// Get looks the key up in memory, then on disk. A disk error is returned
// together with a miss.
func (c *ParseCache) Get(key project.Digest) (*CacheEntry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	entry, ok := c.mem[key]
	c.mu.RUnlock()
	if ok {
		return entry, true, nil
	}

	entry, ok, err := c.disk.Get(key)
	if err != nil || !ok {
		return nil, false, err
	}
	c.mu.Lock()
	c.mem[key] = entry
	c.mu.Unlock()
	return entry, true, nil
}

// Put stores the entry in memory and on disk.
func (c *ParseCache) Put(key project.Digest, entry *CacheEntry) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	c.mem[key] = entry
	c.mu.Unlock()
	return c.disk.Put(key, entry)
}

// Len returns the number of entries held in memory.
func (c *ParseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.mem)
}
