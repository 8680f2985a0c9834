package spotify

import "io"

// accessTokenResponse represents the response of the web player token exchange.
type accessTokenResponse struct {
	// AccessToken is the short-lived bearer token for API requests.
	AccessToken string `json:"accessToken"`
	// ExpirationTimestampMS is the token expiry as a Unix timestamp in milliseconds.
	ExpirationTimestampMS int64 `json:"accessTokenExpirationTimestampMs"`
}

// User represents the profile of the authenticated user.
type User struct {
	// ID is the unique user identifier.
	ID string `json:"id"`
	// DisplayName is the user's display name.
	DisplayName string `json:"display_name"`
	// Product is the subscription plan name ("premium", "free", ...).
	Product string `json:"product"`
}

// Artist represents metadata for an artist.
type Artist struct {
	// ID is the unique artist identifier.
	ID string `json:"id"`
	// Name is the artist name.
	Name string `json:"name"`
}

// Image represents cover art in one resolution.
type Image struct {
	// URL is the image location.
	URL string `json:"url"`
	// Height is the image height in pixels.
	Height int64 `json:"height"`
	// Width is the image width in pixels.
	Width int64 `json:"width"`
}

// Album represents metadata for an album.
type Album struct {
	// ID is the unique album identifier.
	ID string `json:"id"`
	// Name is the album name.
	Name string `json:"name"`
	// ReleaseDate is the release date, precision varies ("2006", "2006-01", "2006-01-02").
	ReleaseDate string `json:"release_date"`
	// TotalTracks is the number of tracks on the album.
	TotalTracks int64 `json:"total_tracks"`
	// Artists is the list of album artists.
	Artists []*Artist `json:"artists"`
	// Images is the cover art in descending resolution order.
	Images []*Image `json:"images"`
}

// Track represents metadata for a track.
type Track struct {
	// ID is the unique track identifier.
	ID string `json:"id"`
	// Name is the track name.
	Name string `json:"name"`
	// DurationMS is the track length in milliseconds.
	DurationMS int64 `json:"duration_ms"`
	// DiscNumber is the disc the track is on, starting at 1.
	DiscNumber int64 `json:"disc_number"`
	// TrackNumber is the track's position on its disc.
	TrackNumber int64 `json:"track_number"`
	// Explicit indicates whether the track has explicit lyrics.
	Explicit bool `json:"explicit"`
	// IsPlayable indicates whether the track can be played in the account's market.
	// Nil when the API omits the field, which counts as playable.
	IsPlayable *bool `json:"is_playable"`
	// Artists is the list of track artists.
	Artists []*Artist `json:"artists"`
	// Album is the album the track belongs to. Absent in album track listings.
	Album *Album `json:"album"`
}

// PlaylistOwner represents the owner of a playlist.
type PlaylistOwner struct {
	// ID is the unique user identifier.
	ID string `json:"id"`
	// DisplayName is the owner's display name.
	DisplayName string `json:"display_name"`
}

// Playlist represents metadata for a playlist.
type Playlist struct {
	// ID is the unique playlist identifier.
	ID string `json:"id"`
	// Name is the playlist name.
	Name string `json:"name"`
	// Owner is the playlist owner.
	Owner *PlaylistOwner `json:"owner"`
	// Tracks carries the total number of tracks.
	Tracks *PlaylistTracksInfo `json:"tracks"`
}

// PlaylistTracksInfo represents the track count summary embedded in playlist metadata.
type PlaylistTracksInfo struct {
	// Total is the number of tracks in the playlist.
	Total int64 `json:"total"`
}

// PlaylistItem represents one entry of a playlist.
// Exactly one of Track or Episode is set depending on the entry type.
type PlaylistItem struct {
	// Track is the track metadata for music entries.
	Track *Track `json:"track"`
}

// Show represents metadata for a podcast show.
type Show struct {
	// ID is the unique show identifier.
	ID string `json:"id"`
	// Name is the show name.
	Name string `json:"name"`
	// Publisher is the show publisher.
	Publisher string `json:"publisher"`
	// Images is the cover art in descending resolution order.
	Images []*Image `json:"images"`
}

// Episode represents metadata for a podcast episode.
type Episode struct {
	// ID is the unique episode identifier.
	ID string `json:"id"`
	// Name is the episode name.
	Name string `json:"name"`
	// ReleaseDate is the publication date.
	ReleaseDate string `json:"release_date"`
	// DurationMS is the episode length in milliseconds.
	DurationMS int64 `json:"duration_ms"`
	// Show is the show the episode belongs to. Absent in show episode listings.
	Show *Show `json:"show"`
	// Images is the cover art in descending resolution order.
	Images []*Image `json:"images"`
}

// SavedTrackItem represents one entry of the user's saved tracks.
type SavedTrackItem struct {
	// Track is the saved track metadata.
	Track *Track `json:"track"`
}

// Paging is one page of a paginated list response.
type Paging[T any] struct {
	// Items are the entries of this page.
	Items []T `json:"items"`
	// Total is the total number of entries across all pages.
	Total int64 `json:"total"`
	// Next is the absolute URL of the next page, empty on the last page.
	Next string `json:"next"`
}

// SearchResponse represents the grouped response of the search endpoint.
type SearchResponse struct {
	// Tracks is the page of matching tracks.
	Tracks *Paging[*Track] `json:"tracks"`
	// Albums is the page of matching albums.
	Albums *Paging[*Album] `json:"albums"`
	// Playlists is the page of matching playlists.
	Playlists *Paging[*Playlist] `json:"playlists"`
	// Artists is the page of matching artists.
	Artists *Paging[*Artist] `json:"artists"`
}

// streamMetadataResponse represents the response of the stream resolution endpoint.
type streamMetadataResponse struct {
	// URL is the location of the encrypted audio stream.
	URL string `json:"url"`
}

// StreamReader is an open audio stream with a known total length.
type StreamReader struct {
	// Body is the audio byte stream. The caller owns closing it.
	Body io.ReadCloser
	// TotalBytes is the total stream length as reported by the server.
	TotalBytes int64
}

// FetchJSONResult wraps a decoded JSON response together with the HTTP status code.
type FetchJSONResult[T any] struct {
	// Data is the decoded response, nil when the request failed.
	Data *T
	// StatusCode is the HTTP status code of the response.
	StatusCode int
}
