package imgcache

import "errors"

// Sentinel errors. Every failure returned by Artifact wraps exactly one of
// these alongside the underlying cause, so callers can classify with
// errors.Is and still reach the cause through errors.Unwrap.
var (
	// ErrFetchFailed is returned when the fetch function could not produce bytes.
	ErrFetchFailed = errors.New("imgcache: fetch failed")

	// ErrFetchTimeout is returned when a fetch did not complete within the
	// configured timeout.
	ErrFetchTimeout = errors.New("imgcache: fetch timed out")

	// ErrDecodeFailed is returned when bytes were fetched but decoding them failed.
	ErrDecodeFailed = errors.New("imgcache: decode failed")
)
