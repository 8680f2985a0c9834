package spotify

import (
	"context"
	"path/filepath"

	"github.com/dsmirnov/spotify-grabber/internal/logger"
)

// downloadLikedSongs downloads the user's saved tracks into the liked songs folder.
func (s *ServiceImpl) downloadLikedSongs(ctx context.Context) {
	tracks, err := s.spotifyClient.GetSavedTracks(ctx)
	if err != nil {
		logger.Errorf(ctx, "Failed to fetch liked songs: %v", err)
		s.recordError(&ErrorContext{
			Kind:      EntityKindPlaylist,
			ItemTitle: likedSongsFolderName,
			Phase:     "fetching liked songs",
		}, err)

		return
	}

	logger.Infof(ctx, "Downloading %d liked songs", len(tracks))

	likedSongsPath := filepath.Join(s.cfg.MusicDir, likedSongsFolderName)
	tracksCount := int64(len(tracks))

	for index, track := range tracks {
		// Check if context was canceled (CTRL+C pressed) - stop immediately.
		select {
		case <-ctx.Done():
			return
		default:
		}

		if track == nil {
			continue
		}

		s.downloadTrack(ctx, &downloadTrackRequest{
			callerContext: CallerContextLikedSongs,
			track:         track,
			trackIndex:    int64(index) + 1,
			tracksCount:   tracksCount,
			pathOverride:  likedSongsPath,
			parentKind:    EntityKindPlaylist,
			parentTitle:   likedSongsFolderName,
		})
	}
}

// downloadUserPlaylists downloads the user's playlists, all of them or an
// interactively selected subset.
func (s *ServiceImpl) downloadUserPlaylists(ctx context.Context, interactive bool) {
	playlists, err := s.spotifyClient.GetUserPlaylists(ctx)
	if err != nil {
		logger.Errorf(ctx, "Failed to fetch user playlists: %v", err)
		s.recordError(&ErrorContext{
			Kind:  EntityKindPlaylist,
			Phase: "fetching user playlists",
		}, err)

		return
	}

	if len(playlists) == 0 {
		logger.Info(ctx, "You have no playlists")

		return
	}

	if interactive {
		playlists = s.selectPlaylists(ctx, playlists)
		if len(playlists) == 0 {
			return
		}
	}

	logger.Infof(ctx, "Downloading %d playlists", len(playlists))

	for index, playlist := range playlists {
		// Check if context was canceled (CTRL+C pressed) - stop immediately.
		select {
		case <-ctx.Done():
			return
		default:
		}

		if playlist == nil {
			continue
		}

		if index > 0 {
			s.pauseBetweenCollections(ctx)
		}

		s.downloadPlaylist(ctx, playlist.ID)
	}
}
