// Package imgcache provides an in-memory, keyed cache over an asynchronous
// fetch-and-decode pipeline.
//
// Given a key (typically a URL), the cache returns the decoded artifact for
// that key, fetching and decoding the raw bytes at most once per key even
// under concurrent demand. Concurrent requests for the same uncached key
// share a single in-flight fetch, and a pluggable store decides what to keep
// under memory pressure (see the store package for the unbounded and
// byte-budget LRU policies).
//
// The cache is an embeddable component with no network surface of its own.
// The byte source and the decoder are injected functions; the http
// subpackage provides a ready-made HTTP byte source, and DecodeImage is the
// default decoder.
package imgcache

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/meigma/imgcache/store"
)

// FetchFunc retrieves the raw bytes for a key. The context carries the
// cache's fetch timeout; implementations should honor its cancellation,
// though the cache enforces the deadline either way.
type FetchFunc func(ctx context.Context, key string) ([]byte, error)

// DecodeFunc turns raw fetched bytes into the artifact callers consume.
type DecodeFunc func(data []byte) (any, error)

// DefaultFetchTimeout bounds a fetch when WithFetchTimeout is not used.
const DefaultFetchTimeout = 30 * time.Second

// Cache coordinates lookup, fetch, decode, and eviction for keyed artifacts.
//
// All methods are safe for concurrent use. RawIfCached and ArtifactIfCached
// never block on a fetch; Artifact and Wait do.
type Cache struct {
	fetch   FetchFunc
	decode  DecodeFunc
	store   store.Store
	timeout time.Duration
	sem     *semaphore.Weighted

	mu      sync.Mutex
	pending map[string]*flight
}

// New creates a Cache around the given fetch function.
//
// By default the cache stores entries in an unbounded store, decodes with
// DecodeImage, and bounds each fetch by DefaultFetchTimeout. Use options to
// change any of these.
func New(fetch FetchFunc, opts ...Option) (*Cache, error) {
	if fetch == nil {
		return nil, errors.New("imgcache: fetch function is required")
	}
	c := &Cache{
		fetch:   fetch,
		decode:  DecodeImage,
		store:   store.NewUnbounded(),
		timeout: DefaultFetchTimeout,
		pending: make(map[string]*flight),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.store == nil {
		return nil, errors.New("imgcache: store must not be nil")
	}
	if c.decode == nil {
		return nil, errors.New("imgcache: decode function must not be nil")
	}
	if c.timeout <= 0 {
		return nil, errors.New("imgcache: fetch timeout must be positive")
	}
	return c, nil
}

// RawIfCached returns the raw bytes cached for key, if any. It never
// triggers a fetch.
func (c *Cache) RawIfCached(key string) ([]byte, bool) {
	e, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	return e.Data, true
}

// ArtifactIfCached returns the decoded artifact cached for key, if any.
// It returns false when the entry is absent or holds no decoded artifact,
// and never triggers a fetch.
func (c *Cache) ArtifactIfCached(key string) (any, bool) {
	e, ok := c.store.Get(key)
	if !ok || e.Artifact == nil {
		return nil, false
	}
	return e.Artifact, true
}

// Artifact returns the decoded artifact for key.
//
// A cached artifact is returned immediately. Otherwise Artifact joins the
// in-flight fetch for key if one is running, or starts one, and waits for
// its outcome. Every caller waiting on the same flight observes the same
// artifact or the same error, and the fetch and decode functions run at
// most once per flight.
//
// Cancelling ctx abandons this caller's wait only: the flight keeps running
// under the cache's fetch timeout so joiners still get its result, and a
// successful result is still cached.
func (c *Cache) Artifact(ctx context.Context, key string) (any, error) {
	if a, ok := c.ArtifactIfCached(key); ok {
		return a, nil
	}
	f := c.startFetch(key)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-f.done:
		return f.artifact, f.err
	}
}

// Prefetch starts a background fetch for every key that is not already
// cached and discards the results. Duplicate keys, and keys already being
// fetched, collapse into the existing flight. Failures are dropped; a later
// Artifact call for a failed key starts a fresh fetch.
func (c *Cache) Prefetch(keys ...string) {
	for _, key := range keys {
		if _, ok := c.store.Get(key); ok {
			continue
		}
		c.startFetch(key)
	}
}

// Remove drops the cached entry for key, if any.
//
// Remove does not cancel an in-flight fetch for key: the fetch runs to
// completion and, on success, repopulates the cache.
func (c *Cache) Remove(key string) {
	c.store.Remove(key)
}

// Clear drops every cached entry. Like Remove, it does not cancel in-flight
// fetches.
func (c *Cache) Clear() {
	c.store.Clear()
}

// SizeBytes returns the total raw-payload size of all cached entries.
func (c *Cache) SizeBytes() int64 {
	return c.store.SizeBytes()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.store.Len()
}

// Wait blocks until every fetch that was in flight when Wait was called has
// settled. Fetches started afterward are not waited on, and flight failures
// do not make Wait fail; the only error is ctx's, when it expires first.
func (c *Cache) Wait(ctx context.Context) error {
	c.mu.Lock()
	flights := make([]*flight, 0, len(c.pending))
	for _, f := range c.pending {
		flights = append(flights, f)
	}
	c.mu.Unlock()

	for _, f := range flights {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.done:
		}
	}
	return nil
}
