package hls

import (
	"strconv"
	"strings"
)

const headerMarker = "#EXTM3U"

const (
	tagStreamInf     = "#EXT-X-STREAM-INF"
	tagKey           = "#EXT-X-KEY"
	tagMediaSequence = "#EXT-X-MEDIA-SEQUENCE"
)

const (
	attrBandwidth = "BANDWIDTH"
	attrMethod    = "METHOD"
	attrURI       = "URI"
	attrIV        = "IV"
)

// eventKind discriminates the events the lexer yields.
type eventKind int

const (
	eventStreamInf eventKind = iota
	eventKeyDeclared
	eventMediaSequence
	eventURLLine
)

// event is one recognized playlist line. Lines that carry no meaning for this
// parser (unrecognized #EXT tags) are consumed by the lexer and never surface
// as events.
type event struct {
	kind  eventKind
	attrs AttributeSet // eventStreamInf, eventKeyDeclared
	seq   uint64       // eventMediaSequence
	line  string       // eventURLLine
}

// lexer yields playlist events one line at a time. A trailing CR is stripped
// from every line before interpretation.
type lexer struct {
	lines []string
	pos   int
}

func newLexer(text string) *lexer {
	return &lexer{lines: strings.Split(text, "\n")}
}

// header consumes the first line and reports whether it is the #EXTM3U marker.
func (lx *lexer) header() bool {
	if len(lx.lines) == 0 {
		return false
	}
	lx.pos = 1
	return strings.TrimSuffix(lx.lines[0], "\r") == headerMarker
}

// next returns the next event. ok is false at end of input.
func (lx *lexer) next() (ev event, ok bool, err error) {
	for lx.pos < len(lx.lines) {
		line := strings.TrimSuffix(lx.lines[lx.pos], "\r")
		lx.pos++
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "#EXT") {
			return event{kind: eventURLLine, line: line}, true, nil
		}

		tag, value, _ := strings.Cut(line, ":")
		switch tag {
		case tagStreamInf:
			attrs, err := ParseAttributes(value)
			if err != nil {
				return event{}, false, err
			}
			return event{kind: eventStreamInf, attrs: attrs}, true, nil
		case tagKey:
			attrs, err := ParseAttributes(value)
			if err != nil {
				return event{}, false, err
			}
			return event{kind: eventKeyDeclared, attrs: attrs}, true, nil
		case tagMediaSequence:
			seq, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
			if err != nil {
				return event{}, false, newError(ErrCodeFormat, "", err, "invalid media sequence %q", value)
			}
			return event{kind: eventMediaSequence, seq: seq}, true, nil
		}
		// Any other #EXT tag is ignored.
	}
	return event{}, false, nil
}

// parserState is the explicit state the event consumer carries between lines.
type parserState struct {
	pending    *Variant           // stream-info entry awaiting its URL line
	encryption *EncryptionContext // last #EXT-X-KEY declaration, replaces prior ones
	nextSeq    uint64             // sequence number for the next segment line
}

// Parse parses an M3U8 document. The first line must be exactly the #EXTM3U
// header marker.
func Parse(text string) (*Playlist, error) {
	lx := newLexer(text)
	if !lx.header() {
		return nil, newError(ErrCodeFormat, "", nil, "not an M3U8 document: first line must be %q", headerMarker)
	}

	pl := &Playlist{Segments: make(map[uint64]string)}
	var st parserState
	for {
		ev, ok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		switch ev.kind {
		case eventStreamInf:
			raw, ok := ev.attrs[attrBandwidth]
			if !ok {
				return nil, newError(ErrCodeFormat, "", nil, "stream-info tag without %s", attrBandwidth)
			}
			v := Variant{}
			if bw, err := strconv.ParseUint(raw, 10, 64); err == nil {
				v.Bandwidth = &bw
			}
			st.pending = &v

		case eventKeyDeclared:
			enc, err := newEncryptionContext(ev.attrs)
			if err != nil {
				return nil, err
			}
			st.encryption = enc

		case eventMediaSequence:
			// Only lines after this one see the new counter.
			st.nextSeq = ev.seq

		case eventURLLine:
			switch {
			case st.pending != nil:
				st.pending.URL = ev.line
				pl.Variants = append(pl.Variants, *st.pending)
				st.pending = nil
			case pl.IsMaster():
				return nil, newError(ErrCodeFormat, ev.line, nil, "URL line without a preceding stream-info tag")
			default:
				pl.Segments[st.nextSeq] = ev.line
				st.nextSeq++
			}
		}
	}

	pl.Encryption = st.encryption
	return pl, nil
}

func newEncryptionContext(attrs AttributeSet) (*EncryptionContext, error) {
	method := attrs[attrMethod]
	if method != EncryptionMethodAES128 {
		return nil, newError(ErrCodeFormat, "", nil, "unsupported encryption method %q", method)
	}
	uri := attrs[attrURI]
	if uri == "" {
		return nil, newError(ErrCodeFormat, "", nil, "encryption declared without a key URI")
	}

	enc := &EncryptionContext{Method: method, KeyURI: uri}
	if iv, ok := attrs[attrIV]; ok {
		norm, err := NormalizeIV(iv)
		if err != nil {
			return nil, err
		}
		enc.IV = norm
	}
	return enc, nil
}
