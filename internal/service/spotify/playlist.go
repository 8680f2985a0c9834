package spotify

import (
	"context"
	"path/filepath"

	"github.com/dsmirnov/spotify-grabber/internal/logger"
	"github.com/dsmirnov/spotify-grabber/internal/utils"
)

// downloadPlaylist downloads every track of a playlist into a folder
// named after the playlist. Tracks are numbered by playlist position.
func (s *ServiceImpl) downloadPlaylist(ctx context.Context, playlistID string) {
	playlist, err := s.spotifyClient.GetPlaylist(ctx, playlistID)
	if err != nil || playlist == nil {
		if err == nil {
			err = ErrPlaylistNotFound
		}

		logger.Errorf(ctx, "Failed to fetch playlist '%s': %v", playlistID, err)
		s.recordError(&ErrorContext{
			Kind:      EntityKindPlaylist,
			ItemID:    playlistID,
			ItemTitle: "Unknown Playlist",
			Phase:     "fetching metadata",
		}, err)

		return
	}

	items, err := s.spotifyClient.GetPlaylistItems(ctx, playlistID)
	if err != nil {
		logger.Errorf(ctx, "Failed to fetch items of playlist '%s': %v", playlist.Name, err)
		s.recordError(&ErrorContext{
			Kind:      EntityKindPlaylist,
			ItemID:    playlistID,
			ItemTitle: playlist.Name,
			Phase:     "fetching playlist items",
		}, err)

		return
	}

	logger.Infof(ctx, "Downloading playlist '%s' (%d items)", playlist.Name, len(items))

	playlistPath := filepath.Join(s.cfg.MusicDir, utils.SanitizeName(playlist.Name))

	var (
		position    int64
		tracksCount = int64(len(items))
	)

	for _, item := range items {
		// Check if context was canceled (CTRL+C pressed) - stop immediately.
		select {
		case <-ctx.Done():
			return
		default:
		}

		// Local files and episodes inside playlists carry no track block.
		if item == nil || item.Track == nil || item.Track.ID == "" {
			continue
		}

		position++

		s.downloadTrack(ctx, &downloadTrackRequest{
			callerContext: CallerContextPlaylist,
			track:         item.Track,
			trackIndex:    position,
			tracksCount:   tracksCount,
			pathOverride:  playlistPath,
			parentKind:    EntityKindPlaylist,
			parentID:      playlistID,
			parentTitle:   playlist.Name,
		})
	}
}
