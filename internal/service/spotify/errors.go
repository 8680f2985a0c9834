package spotify

import (
	"context"
	"errors"
)

// Common errors for the service layer.
var (
	// ErrTrackNotFound indicates that the requested track was not found.
	ErrTrackNotFound = errors.New("track not found")
	// ErrTrackUnplayable indicates that the track cannot be played in the account's market.
	ErrTrackUnplayable = errors.New("track is unplayable")
	// ErrAlbumNotFound indicates that the requested album was not found.
	ErrAlbumNotFound = errors.New("album not found")
	// ErrPlaylistNotFound indicates that the requested playlist was not found.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrEpisodeNotFound indicates that the requested episode was not found.
	ErrEpisodeNotFound = errors.New("episode not found")
	// ErrShowNotFound indicates that the requested show was not found.
	ErrShowNotFound = errors.New("show not found")
	// ErrEmptyStream indicates that the opened stream carried no data.
	ErrEmptyStream = errors.New("stream carried no data")
)

// ErrorContext provides context information for download errors.
type ErrorContext struct {
	// Kind is the type of item that failed (track, album, playlist, artist).
	Kind EntityKind
	// ItemID is the unique identifier of the item that failed.
	ItemID string
	// ItemTitle is the human-readable title of the item.
	ItemTitle string
	// Phase indicates when the error occurred (e.g., "fetching metadata", "downloading track").
	Phase string
	// ParentKind is the type of parent collection (album/playlist/show) for tracks.
	ParentKind EntityKind
	// ParentID is the ID of the parent collection.
	ParentID string
	// ParentTitle is the title of the parent collection.
	ParentTitle string
}

// recordError records an error in the statistics with proper context.
// Context cancellation errors are ignored as they are expected during graceful shutdown.
func (s *ServiceImpl) recordError(errCtx *ErrorContext, err error) {
	if errCtx == nil || err == nil {
		return
	}

	// Don't record context cancellation as an error - it's expected when user presses CTRL+C.
	if errors.Is(err, context.Canceled) {
		return
	}

	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	downloadErr := DownloadError{
		Kind:         errCtx.Kind,
		ItemID:       errCtx.ItemID,
		ItemTitle:    errCtx.ItemTitle,
		ErrorMessage: err.Error(),
		Phase:        errCtx.Phase,
		ParentKind:   errCtx.ParentKind,
		ParentID:     errCtx.ParentID,
		ParentTitle:  errCtx.ParentTitle,
	}

	s.stats.Errors = append(s.stats.Errors, downloadErr)
}
