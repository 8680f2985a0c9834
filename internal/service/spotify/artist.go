package spotify

import (
	"context"

	"github.com/dsmirnov/spotify-grabber/internal/logger"
)

// fetchArtistAlbums expands artist items into album download items.
// Failures are logged and recorded without unwinding the batch.
func (s *ServiceImpl) fetchArtistAlbums(ctx context.Context, artists []*DownloadItem) []*DownloadItem {
	var albumItems []*DownloadItem

	for _, item := range artists {
		if ctx.Err() != nil {
			return albumItems
		}

		artist, err := s.spotifyClient.GetArtist(ctx, item.ItemID)
		if err != nil || artist == nil {
			logger.Errorf(ctx, "Failed to fetch artist '%s': %v", item.ItemID, err)
			s.recordError(&ErrorContext{
				Kind:      EntityKindArtist,
				ItemID:    item.ItemID,
				ItemTitle: "Unknown Artist",
				Phase:     "fetching metadata",
			}, err)

			continue
		}

		albums, err := s.spotifyClient.GetArtistAlbums(ctx, item.ItemID)
		if err != nil {
			logger.Errorf(ctx, "Failed to fetch albums of artist '%s': %v", artist.Name, err)
			s.recordError(&ErrorContext{
				Kind:      EntityKindArtist,
				ItemID:    item.ItemID,
				ItemTitle: artist.Name,
				Phase:     "fetching artist albums",
			}, err)

			continue
		}

		logger.Infof(ctx, "Artist '%s' has %d albums", artist.Name, len(albums))

		for _, album := range albums {
			if album == nil {
				continue
			}

			albumItems = append(albumItems, &DownloadItem{
				Kind:   EntityKindAlbum,
				Input:  item.Input,
				ItemID: album.ID,
			})
		}
	}

	return albumItems
}
