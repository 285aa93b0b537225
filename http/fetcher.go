// Package http provides an HTTP-backed byte source for imgcache.
//
// Fetcher.Fetch satisfies imgcache.FetchFunc, treating the cache key as the
// request URL.
package http

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"
)

// DefaultMaxBody caps response bodies read by a Fetcher unless overridden.
const DefaultMaxBody int64 = 32 << 20

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("get %s: unexpected status %s", e.URL, e.Status)
}

// Fetcher retrieves bytes over HTTP GET.
type Fetcher struct {
	client  *nethttp.Client
	headers nethttp.Header
	maxBody int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient sets the HTTP client used for requests.
func WithClient(client *nethttp.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithHeaders sets additional headers on each request.
func WithHeaders(headers nethttp.Header) Option {
	return func(f *Fetcher) {
		if headers == nil {
			return
		}
		f.headers = headers.Clone()
	}
}

// WithHeader sets a single header on each request.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		if f.headers == nil {
			f.headers = make(nethttp.Header)
		}
		f.headers.Set(key, value)
	}
}

// WithMaxBody caps the number of response bytes read per fetch. A response
// longer than n bytes fails the fetch. Values <= 0 disable the cap.
func WithMaxBody(n int64) Option {
	return func(f *Fetcher) {
		f.maxBody = n
	}
}

// NewFetcher creates a Fetcher. With no options it uses
// http.DefaultClient and DefaultMaxBody.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  nethttp.DefaultClient,
		maxBody: DefaultMaxBody,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = nethttp.DefaultClient
	}
	return f
}

// Fetch retrieves url with a GET request and returns the response body.
// Non-2xx responses return a *StatusError.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range f.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	body := io.Reader(resp.Body)
	if f.maxBody > 0 {
		body = io.LimitReader(resp.Body, f.maxBody+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if f.maxBody > 0 && int64(len(data)) > f.maxBody {
		return nil, fmt.Errorf("get %s: response exceeds %d bytes", url, f.maxBody)
	}
	return data, nil
}
