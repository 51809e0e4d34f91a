package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hollowness-inside/hlsget/pkg/hls"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	output    string
	bandwidth string
	keyHex    string
	keyCache  string
	headers   string
	limit     int
)

func runE(cmd *cobra.Command, args []string) error {
	url := args[0]

	level := zerolog.InfoLevel
	if cmd.Flags().Changed("verbose") {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	policy, err := hls.ParsePolicy(bandwidth)
	if err != nil {
		return err
	}

	headerMap, err := hls.LoadHeaders(headers)
	if err != nil {
		return err
	}

	var cache hls.KeyCache
	if keyCache != "" {
		cache, err = hls.LoadKeyCache(keyCache)
		if err != nil {
			return err
		}
	}

	var sink io.Writer = os.Stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		sink = f
	}

	opts := hls.Options{
		Policy:  policy,
		Key:     keyHex,
		Cache:   cache,
		Limit:   limit,
		Fetcher: hls.NewHTTPFetcher(headerMap),
		Logger:  logger,
	}

	written, err := hls.Download(cmd.Context(), url, opts, sink)
	if err != nil {
		return err
	}

	logger.Info().Int64("bytes", written).Msg("download complete")
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "hlsget [url]",
		Short:         "Download an HLS stream into a single file",
		Args:          cobra.ExactArgs(1),
		RunE:          runE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&output, "output", "o", "-", "Destination file (- writes to stdout)")
	flags.StringVar(&bandwidth, "bandwidth", "max", "Variant selection: min, max, or an exact bandwidth")
	flags.StringVar(&keyHex, "key", "", "Hex decryption key, overrides the key cache and key fetching")
	flags.StringVar(&keyCache, "key-cache", "", "Path to a key cache file (one '<uri> <hexkey>' per line)")
	flags.StringVar(&headers, "headers", "", "Path to JSON file containing request headers")
	flags.IntVar(&limit, "limit", 0, "Limit the number of segments to download")
	flags.BoolP("verbose", "v", false, "Enable verbose output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
