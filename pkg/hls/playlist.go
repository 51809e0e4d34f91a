package hls

import "slices"

// EncryptionMethodAES128 is the only encryption method the pipeline supports.
const EncryptionMethodAES128 = "AES-128"

// Variant is one stream entry of a master playlist. Bandwidth is nil when the
// declared BANDWIDTH value was not numeric; such variants are never selectable
// under any policy.
type Variant struct {
	Bandwidth *uint64
	URL       string
}

// EncryptionContext is the active segment-encryption declaration of a media
// playlist. IV is empty or the 32-hex-digit normalized form of the declared
// initialization vector.
type EncryptionContext struct {
	Method string
	KeyURI string
	IV     string
}

// SegmentIV returns the IV for the segment with sequence number seq: the
// declared IV when present, otherwise the sequence number rendered as 32 hex
// digits.
func (e *EncryptionContext) SegmentIV(seq uint64) string {
	if e.IV != "" {
		return e.IV
	}
	return SequenceIV(seq)
}

// Playlist is the parsed form of an M3U8 document. A playlist that declared
// variant streams is a master playlist; otherwise Segments maps sequence
// numbers to segment URIs (possibly relative) and Encryption, when non-nil,
// is the last encryption context the document declared.
type Playlist struct {
	Variants   []Variant
	Segments   map[uint64]string
	Encryption *EncryptionContext
}

// IsMaster reports whether the playlist declared variant streams.
func (p *Playlist) IsMaster() bool {
	return len(p.Variants) > 0
}

// Sequences returns the segment sequence numbers in ascending order.
func (p *Playlist) Sequences() []uint64 {
	seqs := make([]uint64, 0, len(p.Segments))
	for seq := range p.Segments {
		seqs = append(seqs, seq)
	}
	slices.Sort(seqs)
	return seqs
}
