package hls

import (
	"context"
	"io"

	"github.com/rs/zerolog"
)

// Pipeline downloads the segments of a media playlist strictly in ascending
// sequence order, decrypts them when an encryption context is active, and
// appends the results to a single sink.
type Pipeline struct {
	Fetcher   Fetcher
	Decrypter Decrypter
	Logger    zerolog.Logger
}

// Run processes every segment of playlist and returns the total number of
// bytes written to sink. Relative segment URIs are resolved against baseURL.
// key is the resolved hex decryption key; it is ignored when the playlist
// declares no encryption. The first fetch, decrypt, or write failure aborts
// the whole run; bytes already written stay written.
func (p *Pipeline) Run(ctx context.Context, playlist *Playlist, baseURL, key string, sink io.Writer) (int64, error) {
	seqs := playlist.Sequences()
	enc := playlist.Encryption

	var written int64
	for i, seq := range seqs {
		uri := AbsolutizeURL(playlist.Segments[seq], baseURL)
		p.Logger.Info().
			Int("segment", i+1).
			Int("total", len(seqs)).
			Uint64("sequence", seq).
			Msg("downloading segment")

		// Segment buffers live only for this iteration.
		data, err := p.Fetcher.Fetch(ctx, uri)
		if err != nil {
			return written, err
		}

		if enc != nil {
			plain, err := p.Decrypter.Decrypt(data, key, enc.SegmentIV(seq))
			if err != nil {
				return written, newError(ErrCodeCrypto, uri, err, "failed to decrypt segment")
			}
			data = plain
		}

		n, err := sink.Write(data)
		written += int64(n)
		if err != nil {
			return written, newError(ErrCodeIO, uri, err, "failed to write segment")
		}
	}
	return written, nil
}
