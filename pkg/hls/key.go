package hls

import (
	"context"
	"encoding/hex"
	"net/url"
	"strings"
)

// AbsolutizeURL resolves ref against base when ref carries no scheme
// separator; a ref with a scheme, or an empty or unparsable base, is returned
// unchanged.
func AbsolutizeURL(ref, base string) string {
	if strings.Contains(ref, "://") || base == "" {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// ResolveKey produces the hex decryption key for keyURI. Precedence, first
// match wins:
//
//  1. a non-empty cliKey, passed through unmodified
//  2. an exact cache hit on keyURI
//  3. a cache hit on keyURI absolutized against baseURL
//  4. for http(s) URIs, the fetched key bytes hex-encoded
//
// Anything else is unresolvable, which the caller must treat as fatal when
// the playlist declared encryption.
func ResolveKey(ctx context.Context, keyURI, baseURL, cliKey string, cache KeyCache, fetcher Fetcher) (string, error) {
	if cliKey != "" {
		return cliKey, nil
	}
	if key, ok := cache[keyURI]; ok {
		return key, nil
	}

	abs := AbsolutizeURL(keyURI, baseURL)
	if key, ok := cache[abs]; ok {
		return key, nil
	}

	if strings.HasPrefix(abs, "http://") || strings.HasPrefix(abs, "https://") {
		raw, err := fetcher.Fetch(ctx, abs)
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(raw), nil
	}

	return "", newError(ErrCodeResolution, keyURI, nil, "cannot resolve decryption key")
}
