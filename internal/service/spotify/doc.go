// Package spotify orchestrates the download pipeline: resolving inputs,
// fetching catalog metadata, streaming audio, transcoding, tagging, and
// recording finished tracks in the download archive.
package spotify
