package hls

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsolutizeURL(t *testing.T) {
	tests := []struct {
		ref  string
		base string
		want string
	}{
		{"seg1.ts", "http://example.com/vod/media.m3u8", "http://example.com/vod/seg1.ts"},
		{"/keys/k.bin", "http://example.com/vod/media.m3u8", "http://example.com/keys/k.bin"},
		{"http://other.com/k.bin", "http://example.com/vod/media.m3u8", "http://other.com/k.bin"},
		{"skd://vault/key", "http://example.com/vod/media.m3u8", "skd://vault/key"},
		{"seg1.ts", "", "seg1.ts"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AbsolutizeURL(tt.ref, tt.base), "ref %q base %q", tt.ref, tt.base)
	}
}

func TestResolveKeyCLIOverrideWins(t *testing.T) {
	// Neither the cache nor the network may be consulted.
	fetcher := &fakeFetcher{}
	cache := KeyCache{"http://example.com/k.bin": "deadbeef"}

	key, err := ResolveKey(context.Background(), "http://example.com/k.bin",
		"http://example.com/media.m3u8", "ABCD", cache, fetcher)
	require.NoError(t, err)
	assert.Equal(t, "ABCD", key)
	assert.Empty(t, fetcher.requests)
}

func TestResolveKeyExactCacheHit(t *testing.T) {
	cache := KeyCache{"k.bin": "00112233445566778899aabbccddeeff"}

	key, err := ResolveKey(context.Background(), "k.bin",
		"http://example.com/media.m3u8", "", cache, &fakeFetcher{})
	require.NoError(t, err)
	assert.Equal(t, "00112233445566778899aabbccddeeff", key)
}

func TestResolveKeyAbsolutizedCacheHit(t *testing.T) {
	// The playlist declares a relative URI; the cache holds the absolute form.
	cache := KeyCache{"http://example.com/vod/k.bin": "deadbeef"}

	key, err := ResolveKey(context.Background(), "k.bin",
		"http://example.com/vod/media.m3u8", "", cache, &fakeFetcher{})
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", key)
}

func TestResolveKeyFetchesAndHexEncodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0x01, 0x02, 0xab})
	}))
	defer server.Close()

	key, err := ResolveKey(context.Background(), server.URL+"/k.bin",
		"", "", nil, NewHTTPFetcher(nil))
	require.NoError(t, err)
	assert.Equal(t, "0102ab", key)
}

func TestResolveKeyFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := ResolveKey(context.Background(), server.URL+"/k.bin",
		"", "", nil, NewHTTPFetcher(nil))
	require.Error(t, err)
	assert.Equal(t, ErrCodeTransport, ErrCodeOf(err))
}

func TestResolveKeyUnresolvable(t *testing.T) {
	_, err := ResolveKey(context.Background(), "skd://vault/key",
		"http://example.com/media.m3u8", "", nil, &fakeFetcher{})
	require.Error(t, err)
	assert.Equal(t, ErrCodeResolution, ErrCodeOf(err))
}

func TestLoadKeyCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.txt")
	content := "http://example.com/k1.bin aaaa\n" +
		"\n" +
		"http://example.com/k2.bin\tbbbb\n" +
		"http://example.com/k1.bin cccc\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cache, err := LoadKeyCache(path)
	require.NoError(t, err)
	assert.Equal(t, KeyCache{
		"http://example.com/k1.bin": "cccc", // later entry wins
		"http://example.com/k2.bin": "bbbb",
	}, cache)
}

func TestLoadKeyCacheMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.txt")
	require.NoError(t, os.WriteFile(path, []byte("justonefield\n"), 0644))

	_, err := LoadKeyCache(path)
	require.Error(t, err)
	assert.Equal(t, ErrCodeFormat, ErrCodeOf(err))
}

func TestLoadKeyCacheMissingFile(t *testing.T) {
	_, err := LoadKeyCache(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Equal(t, ErrCodeIO, ErrCodeOf(err))
}
