package hls

import (
	"os"
	"strings"
)

// KeyCache maps key URIs to hex-encoded decryption keys. It is loaded once
// before any key resolution and never mutated afterwards.
type KeyCache map[string]string

// LoadKeyCache reads a key cache file holding one "<uri> <hexkey>" entry per
// line, whitespace separated. Blank lines are skipped and later entries for
// the same URI win.
func LoadKeyCache(path string) (KeyCache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(ErrCodeIO, path, err, "failed to read key cache")
	}

	cache := make(KeyCache)
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, newError(ErrCodeFormat, path, nil, "malformed key cache entry on line %d", i+1)
		}
		cache[fields[0]] = fields[1]
	}
	return cache, nil
}
