package hls

import (
	"context"
	"io"
	"net/http"
)

// Fetcher retrieves the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HeaderMapTransport injects a fixed set of request headers into every
// outgoing request.
type HeaderMapTransport struct {
	Headers map[string]string
	Base    http.RoundTripper
}

func (t *HeaderMapTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range t.Headers {
		req.Header.Set(k, v)
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// HTTPFetcher fetches playlists, keys, and segments over HTTP(S) with a
// shared client.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates a fetcher whose client sets the given headers on
// every request. headers may be nil.
func NewHTTPFetcher(headers map[string]string) *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Transport: &HeaderMapTransport{
				Headers: headers,
				Base:    http.DefaultTransport,
			},
		},
	}
}

// Fetch downloads url and returns the full response body. Any status other
// than 200 is a transport error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newError(ErrCodeTransport, url, err, "failed to create request")
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, newError(ErrCodeTransport, url, err, "failed to download")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newError(ErrCodeTransport, url, nil, "unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(ErrCodeTransport, url, err, "failed to read response body")
	}
	return data, nil
}
