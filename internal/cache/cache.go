// Package cache memoizes parsed projects keyed by file identity. A key
// captures path, modification time and size, so entries invalidate purely
// by key mismatch when a file changes on disk. Eviction is bounded LRU to
// keep memory flat under file churn.
package cache

import (
	"container/list"
	"fmt"
	"os"
	"sync"

	"github.com/philipparndt/plate3mf/internal/threemf"
)

// DefaultCapacity is the eviction bound used when the integrator does not
// configure one
const DefaultCapacity = 16

// Key identifies one on-disk file state
type Key struct {
	Path    string
	ModTime int64
	Size    int64
}

// KeyFor builds the cache key for a file's current state
func KeyFor(path string) (Key, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Key{}, fmt.Errorf("error reading file state: %w", err)
	}
	return Key{
		Path:    path,
		ModTime: info.ModTime().UnixNano(),
		Size:    info.Size(),
	}, nil
}

type entry struct {
	key     Key
	project *threemf.Project
}

// Cache is a bounded, mutex-guarded LRU of parsed projects. Concurrent
// callers computing the same key are fine: parsing is idempotent and the
// last write wins.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[Key]*list.Element
}

// New creates a cache with the given eviction bound; a non-positive
// capacity falls back to DefaultCapacity
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[Key]*list.Element),
	}
}

// Get returns the cached project for the key, if present
func (c *Cache) Get(key Key) (*threemf.Project, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry).project, true
}

// Put stores a parsed project, evicting the least recently used entry when
// the bound is exceeded
func (c *Cache) Put(key Key, project *threemf.Project) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry).project = project
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&entry{key: key, project: project})

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Prune drops every entry whose source file no longer exists
func (c *Cache) Prune() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var next *list.Element
	for el := c.order.Front(); el != nil; el = next {
		next = el.Next()
		key := el.Value.(*entry).key
		if _, err := os.Stat(key.Path); err != nil {
			c.order.Remove(el)
			delete(c.items, key)
		}
	}
}

// Load returns the parsed project for a file, reusing the cached result
// while the file's path, modification time and size are unchanged
func (c *Cache) Load(path string) (*threemf.Project, error) {
	key, err := KeyFor(path)
	if err != nil {
		return nil, err
	}

	if project, ok := c.Get(key); ok {
		return project, nil
	}

	project, err := threemf.LoadProject(path)
	if err != nil {
		return nil, err
	}

	c.Put(key, project)
	return project, nil
}
