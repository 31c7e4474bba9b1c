// Package cache provides a small in-memory LRU with per-entry TTL used
// to keep rendered dashboards hot between requests.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry[T any] struct {
	key       string
	value     T
	expiresAt time.Time
}

// LRU is a fixed-capacity cache with time-based expiry. All methods are
// safe for concurrent use.
type LRU[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	order   *list.List
}

func NewLRU[T any](maxSize int, ttl time.Duration) *LRU[T] {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &LRU[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Get returns the cached value for key, if present and not expired.
func (c *LRU[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero T
		return zero, false
	}
	ent := el.Value.(*entry[T])
	if time.Now().After(ent.expiresAt) {
		c.remove(el)
		var zero T
		return zero, false
	}
	c.order.MoveToFront(el)
	return ent.value, true
}

// Set stores value under key, evicting the least recently used entry
// when the cache is full.
func (c *LRU[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		ent := el.Value.(*entry[T])
		ent.value = value
		ent.expiresAt = time.Now().Add(c.ttl)
		c.order.MoveToFront(el)
		return
	}
	if c.order.Len() >= c.maxSize {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
	el := c.order.PushFront(&entry[T]{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	})
	c.items[key] = el
}

// Delete drops key from the cache if present.
func (c *LRU[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.remove(el)
	}
}

// Purge removes every expired entry and reports how many were dropped.
func (c *LRU[T]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var dropped int
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*entry[T]).expiresAt) {
			c.remove(el)
			dropped++
		}
		el = prev
	}
	return dropped
}

func (c *LRU[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRU[T]) remove(el *list.Element) {
	delete(c.items, el.Value.(*entry[T]).key)
	c.order.Remove(el)
}
