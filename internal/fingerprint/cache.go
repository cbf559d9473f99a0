package fingerprint

import (
	"container/list"
	"sync"
)

// Cache stores fingerprints keyed by document ID. The engine treats the
// cache as its only shared-mutable state, so implementations must be safe
// for concurrent use.
type Cache interface {
	Get(documentID string) (*Fingerprint, bool)
	Put(documentID string, fp *Fingerprint)
	Evict(documentID string)
	Clear()
	Len() int
}

// lruCache is a mutex-guarded fixed-capacity LRU cache.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[string]*list.Element
}

type lruEntry struct {
	id string
	fp *Fingerprint
}

// NewLRUCache returns a Cache that evicts the least recently used entry
// once capacity is exceeded. Capacity must be positive.
func NewLRUCache(capacity int) Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &lruCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

func (c *lruCache) Get(documentID string) (*Fingerprint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[documentID]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry).fp, true
}

func (c *lruCache) Put(documentID string, fp *Fingerprint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[documentID]; ok {
		el.Value.(*lruEntry).fp = fp
		c.order.MoveToFront(el)
		return
	}
	c.items[documentID] = c.order.PushFront(&lruEntry{id: documentID, fp: fp})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*lruEntry).id)
	}
}

func (c *lruCache) Evict(documentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[documentID]; ok {
		c.order.Remove(el)
		delete(c.items, documentID)
	}
}

func (c *lruCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element)
}

func (c *lruCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
