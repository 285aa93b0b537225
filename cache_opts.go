package imgcache

import (
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/meigma/imgcache/store"
)

// Option configures a Cache.
type Option func(*Cache)

// WithStore sets the storage backend deciding what to keep under memory
// pressure. Defaults to store.NewUnbounded().
func WithStore(s store.Store) Option {
	return func(c *Cache) {
		c.store = s
	}
}

// WithDecodeFunc sets the decoder applied to fetched bytes.
// Defaults to DecodeImage.
func WithDecodeFunc(decode DecodeFunc) Option {
	return func(c *Cache) {
		c.decode = decode
	}
}

// WithFetchTimeout bounds each fetch. A fetch exceeding d settles as a
// timeout failure. Defaults to DefaultFetchTimeout; non-positive values are
// rejected by New.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Cache) {
		c.timeout = d
	}
}

// WithFetchConcurrency caps how many fetches run at once across all keys.
// Values <= 0 leave fetch concurrency unlimited, the default. Flights over
// the cap queue; their timeout clock starts when the fetch starts, not
// while queued.
func WithFetchConcurrency(n int) Option {
	return func(c *Cache) {
		if n <= 0 {
			c.sem = nil
			return
		}
		c.sem = semaphore.NewWeighted(int64(n))
	}
}
