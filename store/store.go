// Package store provides the storage backends used by imgcache.
//
// A Store owns the key-to-entry mapping and decides what to keep under
// memory pressure. Two policies are provided: Unbounded, which never
// evicts, and LRU, which enforces a byte budget by evicting the
// least-recently-used entries.
package store

// Entry is the cached value for one key: the raw fetched payload plus the
// decoded artifact produced from it.
//
// Data is set once when the entry is created and never mutated. Artifact
// holds the decoded form (for example an image.Image) and may be nil when
// an entry was stored without decoding. An entry is replaced wholesale on
// re-fetch, never patched in place.
type Entry struct {
	Data     []byte
	Artifact any
}

// size returns the entry's contribution to a store's byte accounting.
func (e Entry) size() int64 {
	return int64(len(e.Data))
}

// Store is the eviction-policy contract.
//
// Get returns the entry for key, if present. Whether Get affects eviction
// order is policy-specific: LRU promotes the key to most-recently-used.
//
// Put inserts or replaces the entry for key, applying the policy's
// admission and eviction rules.
//
// Implementations must be safe for concurrent use.
type Store interface {
	Get(key string) (Entry, bool)
	Put(key string, e Entry)

	// Remove deletes one key. Removing an absent key is a no-op.
	Remove(key string)

	// Clear removes every entry and resets the size accounting to zero.
	Clear()

	// SizeBytes returns the sum of len(Data) over all stored entries.
	SizeBytes() int64

	// Len returns the number of stored entries.
	Len() int
}
