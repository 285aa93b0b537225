package store

import (
	"container/list"
	"errors"
	"sync"
)

// LRU is a Store with a byte budget. Capacity is measured in bytes of raw
// payload, not entry count. When an insert would exceed the budget, the
// least-recently-used entries are evicted until the new entry fits.
//
// Get promotes the key to most-recently-used, so entries that are read
// repeatedly survive eviction pressure from one-off inserts.
type LRU struct {
	mu       sync.Mutex
	maxBytes int64
	size     int64
	items    map[string]*list.Element
	// order holds *lruItem, least-recently-used at the front.
	order *list.List
}

var _ Store = (*LRU)(nil)

type lruItem struct {
	key   string
	entry Entry
}

// NewLRU creates an LRU store with the given byte budget.
// maxBytes must be positive.
func NewLRU(maxBytes int64) (*LRU, error) {
	if maxBytes <= 0 {
		return nil, errors.New("store: lru byte budget must be positive")
	}
	return &LRU{
		maxBytes: maxBytes,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}, nil
}

// MaxBytes returns the configured byte budget.
func (s *LRU) MaxBytes() int64 {
	return s.maxBytes
}

// Get returns the entry for key, if present, and promotes the key to
// most-recently-used.
func (s *LRU) Get(key string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elem, ok := s.items[key]
	if !ok {
		return Entry{}, false
	}
	s.order.MoveToBack(elem)
	return elem.Value.(*lruItem).entry, true
}

// Put inserts or replaces the entry for key as most-recently-used,
// evicting the least-recently-used entries until the budget holds.
//
// Replacing an existing key first retires its old slot, so its previous
// size contribution is never double-counted and its recency resets.
//
// A single entry larger than the whole budget is still admitted after the
// store has been emptied: there is nothing left to evict, and rejecting it
// would turn the key into a permanent miss. The budget is exceeded until
// the next Put evicts it.
func (s *LRU) Put(key string, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[key]; ok {
		s.size -= elem.Value.(*lruItem).entry.size()
		s.order.Remove(elem)
		delete(s.items, key)
	}

	for s.size+e.size() > s.maxBytes && s.order.Len() > 0 {
		s.evictOldest()
	}

	s.items[key] = s.order.PushBack(&lruItem{key: key, entry: e})
	s.size += e.size()
}

// evictOldest removes the front element. Caller holds s.mu.
func (s *LRU) evictOldest() {
	elem := s.order.Front()
	item := elem.Value.(*lruItem)
	s.order.Remove(elem)
	delete(s.items, item.key)
	s.size -= item.entry.size()
}

// Remove deletes one key.
func (s *LRU) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elem, ok := s.items[key]
	if !ok {
		return
	}
	s.size -= elem.Value.(*lruItem).entry.size()
	s.order.Remove(elem)
	delete(s.items, key)
}

// Clear removes every entry.
func (s *LRU) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*list.Element)
	s.order.Init()
	s.size = 0
}

// SizeBytes returns the total size of the stored raw payloads.
func (s *LRU) SizeBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Len returns the number of stored entries.
func (s *LRU) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
