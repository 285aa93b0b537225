package imgcache

import (
	"context"
	"fmt"

	"github.com/meigma/imgcache/store"
)

// flight is one in-flight fetch-and-decode operation. done is closed after
// artifact and err are set, so any number of waiters can select on it.
type flight struct {
	done     chan struct{}
	artifact any
	err      error
}

// startFetch returns the flight for key, starting one if none is running.
//
// The pending map is the single source of truth for which keys have a
// running fetch: a key is registered before its goroutine starts and
// removed exactly once, before done is closed, so a request arriving after
// completion always starts a fresh flight instead of rejoining a finished
// one.
func (c *Cache) startFetch(key string) *flight {
	c.mu.Lock()
	if f, ok := c.pending[key]; ok {
		c.mu.Unlock()
		return f
	}
	f := &flight{done: make(chan struct{})}
	c.pending[key] = f
	c.mu.Unlock()

	go func() {
		artifact, err := c.fetchAndStore(key)

		c.mu.Lock()
		delete(c.pending, key)
		c.mu.Unlock()

		f.artifact, f.err = artifact, err
		close(f.done)
	}()
	return f
}

// fetchAndStore runs one fetch-and-decode pass for key and caches the
// result. On any failure nothing is stored, so the key stays eligible for a
// fresh attempt.
func (c *Cache) fetchAndStore(key string) (any, error) {
	if c.sem != nil {
		// Acquire cannot fail with a background context.
		_ = c.sem.Acquire(context.Background(), 1)
		defer c.sem.Release(1)
	}

	// Double-check the store: the key may have been cached between the
	// caller's miss and this flight starting.
	if e, ok := c.store.Get(key); ok && e.Artifact != nil {
		return e.Artifact, nil
	}

	data, err := c.fetchBytes(key)
	if err != nil {
		return nil, err
	}

	artifact, err := c.decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: key %q: %w", ErrDecodeFailed, key, err)
	}

	c.store.Put(key, store.Entry{Data: data, Artifact: artifact})
	return artifact, nil
}

// fetchBytes calls the fetch function under the configured timeout. The
// fetch runs in its own goroutine so the deadline holds even against a
// fetch function that ignores ctx; a late result from an abandoned fetch is
// discarded.
func (c *Cache) fetchBytes(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := c.fetch(ctx, key)
		ch <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: key %q after %v", ErrFetchTimeout, key, c.timeout)
	case r := <-ch:
		if r.err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: key %q after %v", ErrFetchTimeout, key, c.timeout)
			}
			return nil, fmt.Errorf("%w: key %q: %w", ErrFetchFailed, key, r.err)
		}
		return r.data, nil
	}
}
