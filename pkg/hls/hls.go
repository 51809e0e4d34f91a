// Package hls resolves an HLS playlist to its ordered media segments,
// downloads them one by one, decrypts AES-128 encrypted segments, and
// concatenates the results into a single output stream.
package hls
