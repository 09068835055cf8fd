package content

import (
	"context"
	"log"
	"sync"
)

// Cache memoizes the first successful, non-empty load. Failed loads are
// logged and reported as empty without being cached, so the next Get tries
// again.
type Cache[T any] struct {
	name string
	load func(context.Context) ([]T, error)

	mu     sync.Mutex
	items  []T
	loaded bool
}

func NewCache[T any](name string, load func(context.Context) ([]T, error)) *Cache[T] {
	return &Cache[T]{name: name, load: load}
}

func (c *Cache[T]) Get(ctx context.Context) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.items
	}

	items, err := c.load(ctx)
	if err != nil {
		log.Printf("Error loading %s: %v", c.name, err)
		return []T{}
	}
	if len(items) == 0 {
		return []T{}
	}
	c.items = items
	c.loaded = true
	return items
}

func (c *Cache[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Invalidate drops the memoized list; the next Get reloads.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.loaded = false
}
