package spotify

import (
	"fmt"
	"time"
)

const (
	// audioTypeMusic marks archive entries produced from music tracks.
	audioTypeMusic = "music"
	// audioTypeEpisode marks archive entries produced from podcast episodes.
	audioTypeEpisode = "episode"

	// likedSongsFolderName is the folder for the user's saved tracks.
	likedSongsFolderName = "Liked Songs"
)

// EntityKind represents the type of catalog entity behind an input.
type EntityKind uint8

const (
	// EntityKindUnknown - unrecognized input, treated as a search query.
	EntityKindUnknown EntityKind = iota
	// EntityKindTrack - single track.
	EntityKindTrack
	// EntityKindAlbum - full album.
	EntityKindAlbum
	// EntityKindPlaylist - playlist.
	EntityKindPlaylist
	// EntityKindEpisode - podcast episode.
	EntityKindEpisode
	// EntityKindShow - podcast show.
	EntityKindShow
	// EntityKindArtist - complete artist's discography.
	EntityKindArtist
)

// String returns a human-readable representation of the EntityKind.
func (ek EntityKind) String() string {
	switch ek {
	case EntityKindUnknown:
		return "unknown"
	case EntityKindTrack:
		return "track"
	case EntityKindAlbum:
		return "album"
	case EntityKindPlaylist:
		return "playlist"
	case EntityKindEpisode:
		return "episode"
	case EntityKindShow:
		return "show"
	case EntityKindArtist:
		return "artist"
	default:
		return fmt.Sprintf("unknown: %d", ek)
	}
}

// SkipReason represents why a track was skipped.
type SkipReason uint8

const (
	// SkipReasonArchive - track is already recorded in the download archive.
	SkipReasonArchive SkipReason = iota
	// SkipReasonExists - track file already exists on disk.
	SkipReasonExists
	// SkipReasonUnplayable - track is not playable in the account's market.
	SkipReasonUnplayable
)

// String returns a human-readable representation of the SkipReason.
func (sr SkipReason) String() string {
	switch sr {
	case SkipReasonArchive:
		return "already downloaded"
	case SkipReasonExists:
		return "file exists"
	case SkipReasonUnplayable:
		return "unplayable"
	default:
		return fmt.Sprintf("unknown reason: %d", sr)
	}
}

// DownloadItem represents a resolved downloadable item with its kind and identifier.
type DownloadItem struct {
	// Kind is the type of entity (track, album, playlist, etc.).
	Kind EntityKind
	// Input is the original input the item was resolved from.
	Input string
	// ItemID is the unique 22-character identifier of the item.
	ItemID string
}

// String returns a human-readable representation of the DownloadItem.
func (di DownloadItem) String() string {
	return fmt.Sprintf("kind: %v, ID: %s", di.Kind, di.ItemID)
}

// GetShortVersion converts a full DownloadItem into a ShortDownloadItem by stripping the input.
func (di DownloadItem) GetShortVersion() ShortDownloadItem {
	return ShortDownloadItem{
		Kind:   di.Kind,
		ItemID: di.ItemID,
	}
}

// ShortDownloadItem is a lightweight version of DownloadItem without the original input.
// It is used as a deduplication key.
type ShortDownloadItem struct {
	// Kind is the type of entity.
	Kind EntityKind
	// ItemID is the unique identifier of the item.
	ItemID string
}

// TrackMetadata carries everything the filename builder and tagger need
// to place and label one downloaded track or episode.
type TrackMetadata struct {
	// Artist is the primary artist name (the publisher for episodes).
	Artist string
	// Title is the track or episode title.
	Title string
	// Album is the album name (the show name for episodes).
	Album string
	// AlbumArtist is the album-level artist, falls back to Artist when empty.
	AlbumArtist string
	// ReleaseYear is the four-digit release year, empty when unknown.
	ReleaseYear string
	// DiscNumber is the disc the track is on, zero when not applicable.
	DiscNumber int64
	// TrackNumber is the user-facing position used in filename templates.
	TrackNumber int64
	// SourceID is the catalog identifier embedded as a source comment.
	SourceID string
	// CoverURL is the cover art location, fetched at tag time.
	CoverURL string
	// AudioType is the archive classification: music or episode.
	AudioType string
}

// DownloadStatistics tracks metrics for a download session.
type DownloadStatistics struct {
	// StartTime is when the download session began.
	StartTime time.Time
	// EndTime is when the download session completed.
	EndTime time.Time
	// TotalTracksProcessed is the total number of tracks attempted.
	TotalTracksProcessed int64
	// TracksDownloaded is the number of tracks successfully downloaded.
	TracksDownloaded int64
	// TracksSkipped is the total number of tracks skipped for any reason.
	TracksSkipped int64
	// TracksSkippedArchive is the number of tracks skipped via the download archive.
	TracksSkippedArchive int64
	// TracksSkippedExists is the number of tracks skipped because the file exists.
	TracksSkippedExists int64
	// TracksSkippedUnplayable is the number of tracks skipped as unplayable.
	TracksSkippedUnplayable int64
	// TracksFailed is the number of tracks that failed to download.
	TracksFailed int64
	// TotalBytesDownloaded is the total size of downloaded content in bytes.
	TotalBytesDownloaded int64
	// Errors is a list of all errors encountered during the download process.
	Errors []DownloadError
}

// DownloadError represents a single error that occurred during download.
type DownloadError struct {
	// Kind is the type of item that failed (track, album, playlist, artist).
	Kind EntityKind
	// ItemID is the unique identifier of the item that failed.
	ItemID string
	// ItemTitle is the human-readable title of the item.
	ItemTitle string
	// ErrorMessage is the error message.
	ErrorMessage string
	// Phase indicates when the error occurred (e.g., "fetching metadata", "downloading track").
	Phase string
	// ParentKind is the type of parent collection (album/playlist/show) for tracks.
	ParentKind EntityKind
	// ParentID is the ID of the parent collection.
	ParentID string
	// ParentTitle is the title of the parent collection.
	ParentTitle string
}
