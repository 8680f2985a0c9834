// Package spotify provides a Go client for the Spotify Web API,
// offering access to catalog metadata and audio content.
// It exchanges the stored session cookie for a short-lived access token,
// transparently re-authenticates once on expiry, and retries transient failures.
// Key features include track/album/playlist/episode/show metadata retrieval
// with pagination, catalog search, audio stream fetching, and cover art
// downloading with an in-memory cache.
package spotify
