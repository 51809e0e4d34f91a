package hls

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"User-Agent":"hlsget","Referer":"http://example.com/"}`), 0644))

	headers, err := LoadHeaders(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"User-Agent": "hlsget",
		"Referer":    "http://example.com/",
	}, headers)
}

func TestLoadHeadersEmptyPath(t *testing.T) {
	headers, err := LoadHeaders("")
	require.NoError(t, err)
	assert.Nil(t, headers)
}

func TestLoadHeadersInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headers.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	_, err := LoadHeaders(path)
	require.Error(t, err)
	assert.Equal(t, ErrCodeFormat, ErrCodeOf(err))
}
