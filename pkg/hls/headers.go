package hls

import (
	"encoding/json"
	"os"
)

// LoadHeaders loads custom HTTP headers from a JSON file. An empty path means
// no extra headers.
func LoadHeaders(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(ErrCodeIO, path, err, "failed to read headers file")
	}

	var headers map[string]string
	if err := json.Unmarshal(data, &headers); err != nil {
		return nil, newError(ErrCodeFormat, path, err, "failed to parse headers file")
	}
	return headers, nil
}
