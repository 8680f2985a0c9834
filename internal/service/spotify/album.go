package spotify

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dsmirnov/spotify-grabber/internal/client/spotify"
	"github.com/dsmirnov/spotify-grabber/internal/logger"
	"github.com/dsmirnov/spotify-grabber/internal/utils"
)

// downloadAlbum downloads every track of an album into
// "<music dir>/<artist>/<year> - <album>", one subfolder per disc
// when disc splitting is enabled.
func (s *ServiceImpl) downloadAlbum(ctx context.Context, albumID string) {
	album, err := s.spotifyClient.GetAlbum(ctx, albumID)
	if err != nil || album == nil {
		if err == nil {
			err = ErrAlbumNotFound
		}

		logger.Errorf(ctx, "Failed to fetch album '%s': %v", albumID, err)
		s.recordError(&ErrorContext{
			Kind:      EntityKindAlbum,
			ItemID:    albumID,
			ItemTitle: "Unknown Album",
			Phase:     "fetching metadata",
		}, err)

		return
	}

	tracks, err := s.spotifyClient.GetAlbumTracks(ctx, albumID)
	if err != nil {
		logger.Errorf(ctx, "Failed to fetch tracks of album '%s': %v", album.Name, err)
		s.recordError(&ErrorContext{
			Kind:      EntityKindAlbum,
			ItemID:    albumID,
			ItemTitle: album.Name,
			Phase:     "fetching album tracks",
		}, err)

		return
	}

	albumArtist := joinArtistNames(album.Artists)
	albumPath := s.albumFolderPath(album)

	logger.Infof(ctx, "Downloading '%s - %s (%s)'", albumArtist, album.Name, releaseYear(album.ReleaseDate))

	tracksCount := int64(len(tracks))

	for _, track := range tracks {
		// Check if context was canceled (CTRL+C pressed) - stop immediately.
		select {
		case <-ctx.Done():
			return
		default:
		}

		if track == nil {
			continue
		}

		// Album track listings omit the album block, the tagger needs it.
		track.Album = album

		pathOverride := albumPath
		if s.cfg.SplitAlbumDiscs && track.DiscNumber > 0 {
			pathOverride = filepath.Join(albumPath, fmt.Sprintf("Disc %02d", track.DiscNumber))
		}

		s.downloadTrack(ctx, &downloadTrackRequest{
			callerContext: CallerContextAlbum,
			track:         track,
			trackIndex:    track.TrackNumber,
			tracksCount:   tracksCount,
			pathOverride:  pathOverride,
			parentKind:    EntityKindAlbum,
			parentID:      albumID,
			parentTitle:   album.Name,
		})
	}
}

// albumFolderPath builds the album destination folder:
// "<music dir>/<artist>/<year> - <album>", each component sanitized on its own.
func (s *ServiceImpl) albumFolderPath(album *spotify.Album) string {
	artistFolder := utils.SanitizeName(joinArtistNames(album.Artists))
	albumFolder := utils.SanitizeName(fmt.Sprintf("%s - %s", releaseYear(album.ReleaseDate), album.Name))

	return filepath.Join(s.cfg.MusicDir, artistFolder, albumFolder)
}
