package hls

import (
	"sort"
	"strings"
)

// AttributeSet holds the key/value pairs of a tag attribute list.
type AttributeSet map[string]string

// ParseAttributes parses an attribute list such as
// BANDWIDTH=1280000,CODECS="avc1.42e00a,mp4a.40.2" into an AttributeSet.
// Values may be double-quoted; commas inside quotes are literal. A key without
// a value, an unterminated quote, or trailing unparsable text is a format
// error.
func ParseAttributes(s string) (AttributeSet, error) {
	attrs := make(AttributeSet)
	rest := s
	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			return nil, newError(ErrCodeFormat, "", nil, "attribute %q has no value", rest)
		}
		if comma := strings.IndexByte(rest, ','); comma >= 0 && comma < eq {
			return nil, newError(ErrCodeFormat, "", nil, "attribute %q has no value", rest[:comma])
		}
		key := rest[:eq]
		rest = rest[eq+1:]

		var value string
		if strings.HasPrefix(rest, `"`) {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				return nil, newError(ErrCodeFormat, "", nil, "unterminated quote in attribute %s", key)
			}
			value = rest[1 : 1+end]
			rest = rest[end+2:]
			switch {
			case rest == "":
			case rest[0] == ',':
				rest = rest[1:]
			default:
				return nil, newError(ErrCodeFormat, "", nil, "unexpected text %q after attribute %s", rest, key)
			}
		} else if comma := strings.IndexByte(rest, ','); comma >= 0 {
			value = rest[:comma]
			rest = rest[comma+1:]
		} else {
			value = rest
			rest = ""
		}

		attrs[key] = value
	}
	return attrs, nil
}

// EncodeAttributes renders attrs as an attribute list with every value
// double-quoted. Keys are emitted in sorted order so the output is stable.
func EncodeAttributes(attrs AttributeSet) string {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(key)
		b.WriteString(`="`)
		b.WriteString(attrs[key])
		b.WriteByte('"')
	}
	return b.String()
}
