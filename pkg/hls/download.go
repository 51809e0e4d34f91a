package hls

import (
	"context"
	"io"

	"github.com/rs/zerolog"
)

// Options configures a download run. Everything a run needs is carried here;
// nothing reads process-wide state.
type Options struct {
	Policy    Policy   // variant selection for master playlists
	Key       string   // hex key override, wins over cache and key fetching
	Cache     KeyCache // optional preloaded key cache
	Limit     int      // when > 0, only the Limit lowest-sequence segments
	Fetcher   Fetcher  // defaults to an HTTPFetcher without extra headers
	Decrypter Decrypter
	Logger    zerolog.Logger
}

// Download fetches playlistURL, resolves it to a media playlist (selecting a
// variant when it is a master playlist), resolves the decryption key when
// encryption is declared, and streams every segment into sink in sequence
// order. It returns the total number of bytes written.
func Download(ctx context.Context, playlistURL string, opts Options, sink io.Writer) (int64, error) {
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = NewHTTPFetcher(nil)
	}

	text, err := fetcher.Fetch(ctx, playlistURL)
	if err != nil {
		return 0, err
	}
	playlist, err := Parse(string(text))
	if err != nil {
		return 0, err
	}

	mediaURL := playlistURL
	if playlist.IsMaster() {
		variant, err := SelectVariant(playlist.Variants, opts.Policy, opts.Logger)
		if err != nil {
			return 0, err
		}
		mediaURL = AbsolutizeURL(variant.URL, playlistURL)
		opts.Logger.Debug().Str("url", mediaURL).Msg("selected variant")

		text, err = fetcher.Fetch(ctx, mediaURL)
		if err != nil {
			return 0, err
		}
		playlist, err = Parse(string(text))
		if err != nil {
			return 0, err
		}
		if playlist.IsMaster() {
			return 0, newError(ErrCodeFormat, mediaURL, nil, "variant playlist is itself a master playlist")
		}
	}

	if opts.Limit > 0 {
		truncateSegments(playlist, opts.Limit)
	}

	var key string
	if playlist.Encryption != nil {
		key, err = ResolveKey(ctx, playlist.Encryption.KeyURI, mediaURL, opts.Key, opts.Cache, fetcher)
		if err != nil {
			return 0, err
		}
	}

	decrypter := opts.Decrypter
	if decrypter == nil {
		decrypter = CBCDecrypter{}
	}
	pipeline := &Pipeline{Fetcher: fetcher, Decrypter: decrypter, Logger: opts.Logger}
	return pipeline.Run(ctx, playlist, mediaURL, key, sink)
}

// truncateSegments keeps only the limit lowest sequence numbers.
func truncateSegments(playlist *Playlist, limit int) {
	seqs := playlist.Sequences()
	for _, seq := range seqs[min(limit, len(seqs)):] {
		delete(playlist.Segments, seq)
	}
}
