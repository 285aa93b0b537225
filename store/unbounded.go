package store

import "sync"

// Unbounded is a Store that never evicts. Memory grows with the number of
// distinct keys fetched, so it is only appropriate when the caller bounds
// the key space externally.
type Unbounded struct {
	mu      sync.RWMutex
	entries map[string]Entry
	size    int64
}

var _ Store = (*Unbounded)(nil)

// NewUnbounded creates an empty unbounded store.
func NewUnbounded() *Unbounded {
	return &Unbounded{
		entries: make(map[string]Entry),
	}
}

// Get returns the entry for key, if present.
func (s *Unbounded) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

// Put inserts or replaces the entry for key.
func (s *Unbounded) Put(key string, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.entries[key]; ok {
		s.size -= old.size()
	}
	s.entries[key] = e
	s.size += e.size()
}

// Remove deletes one key.
func (s *Unbounded) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.entries[key]; ok {
		s.size -= old.size()
		delete(s.entries, key)
	}
}

// Clear removes every entry.
func (s *Unbounded) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]Entry)
	s.size = 0
}

// SizeBytes returns the total size of the stored raw payloads.
func (s *Unbounded) SizeBytes() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// Len returns the number of stored entries.
func (s *Unbounded) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
