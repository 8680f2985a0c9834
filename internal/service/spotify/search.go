package spotify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dsmirnov/spotify-grabber/internal/client/spotify"
	"github.com/dsmirnov/spotify-grabber/internal/logger"
	"github.com/dsmirnov/spotify-grabber/internal/utils"
)

const (
	// selectionAll selects every displayed entry.
	selectionAll = "all"
	// selectionExit aborts the selection.
	selectionExit = "exit"
	// selectionRangeParts is the number of parts in a "from-to" range token.
	selectionRangeParts = 2
)

// errInvalidSelection is returned when a selection string cannot be parsed.
var errInvalidSelection = errors.New("invalid selection")

// runSearchQuery searches the catalog for the query and interactively
// downloads the entries the user picks.
func (s *ServiceImpl) runSearchQuery(ctx context.Context, query string) {
	response, err := s.spotifyClient.Search(ctx, query, s.cfg.SearchResultsLimit)
	if err != nil {
		logger.Errorf(ctx, "Search for '%s' failed: %v", query, err)
		s.recordError(&ErrorContext{
			Kind:      EntityKindUnknown,
			ItemTitle: query,
			Phase:     "searching",
		}, err)

		return
	}

	entries := s.collectSearchEntries(ctx, query, response)
	if len(entries) == 0 {
		logger.Infof(ctx, "No results for '%s'", query)

		return
	}

	selected := s.promptSelection(ctx, len(entries))
	if len(selected) == 0 {
		return
	}

	s.downloadSearchSelection(ctx, entries, selected)
}

// collectSearchEntries prints the grouped search results and returns them
// as a flat list matching the displayed numbering.
func (s *ServiceImpl) collectSearchEntries(
	ctx context.Context,
	query string,
	response *spotify.SearchResponse,
) []*DownloadItem {
	var entries []*DownloadItem

	logger.Infof(ctx, "Results for '%s':", query)

	if response.Tracks != nil && len(response.Tracks.Items) > 0 {
		logger.Info(ctx, "Tracks:")

		for _, track := range response.Tracks.Items {
			if track == nil {
				continue
			}

			entries = append(entries, &DownloadItem{Kind: EntityKindTrack, Input: query, ItemID: track.ID})
			logger.Infof(ctx, "  %d. %s - %s", len(entries), joinArtistNames(track.Artists), track.Name)
		}
	}

	if response.Albums != nil && len(response.Albums.Items) > 0 {
		logger.Info(ctx, "Albums:")

		for _, album := range response.Albums.Items {
			if album == nil {
				continue
			}

			entries = append(entries, &DownloadItem{Kind: EntityKindAlbum, Input: query, ItemID: album.ID})
			logger.Infof(ctx, "  %d. %s - %s (%s)",
				len(entries), joinArtistNames(album.Artists), album.Name, releaseYear(album.ReleaseDate))
		}
	}

	if response.Playlists != nil && len(response.Playlists.Items) > 0 {
		logger.Info(ctx, "Playlists:")

		for _, playlist := range response.Playlists.Items {
			if playlist == nil {
				continue
			}

			entries = append(entries, &DownloadItem{Kind: EntityKindPlaylist, Input: query, ItemID: playlist.ID})

			owner := ""
			if playlist.Owner != nil {
				owner = playlist.Owner.DisplayName
			}

			logger.Infof(ctx, "  %d. %s (by %s)", len(entries), playlist.Name, owner)
		}
	}

	if response.Artists != nil && len(response.Artists.Items) > 0 {
		logger.Info(ctx, "Artists:")

		for _, artist := range response.Artists.Items {
			if artist == nil {
				continue
			}

			entries = append(entries, &DownloadItem{Kind: EntityKindArtist, Input: query, ItemID: artist.ID})
			logger.Infof(ctx, "  %d. %s", len(entries), artist.Name)
		}
	}

	return entries
}

// promptSelection asks for a selection and parses it into 1-based indexes.
// An empty result means the user opted out.
func (s *ServiceImpl) promptSelection(ctx context.Context, entriesCount int) []int {
	logger.Infof(ctx,
		"Enter the numbers to download (e.g. '1,3-5'), '%s' for everything or '%s' to cancel:",
		selectionAll, selectionExit)

	line, err := s.input.ReadString('\n')
	if err != nil && line == "" {
		return nil
	}

	selected, err := parseSelection(line, entriesCount)
	if err != nil {
		logger.Errorf(ctx, "Could not parse selection: %v", err)

		return nil
	}

	return selected
}

// downloadSearchSelection downloads the picked entries: tracks directly,
// collections through the paced standalone path.
func (s *ServiceImpl) downloadSearchSelection(ctx context.Context, entries []*DownloadItem, selected []int) {
	var (
		standaloneItems []*DownloadItem
		artists         []*DownloadItem
		tracks          []*DownloadItem
	)

	for _, index := range selected {
		item := entries[index-1]

		//nolint:exhaustive // Search results only contain these kinds.
		switch item.Kind {
		case EntityKindTrack:
			tracks = append(tracks, item)
		case EntityKindArtist:
			artists = append(artists, item)
		default:
			standaloneItems = append(standaloneItems, item)
		}
	}

	if len(artists) > 0 {
		standaloneItems = append(standaloneItems, s.fetchArtistAlbums(ctx, artists)...)
		standaloneItems = s.urlResolver.DeduplicateDownloadItems(standaloneItems)
	}

	if len(standaloneItems) > 0 {
		s.downloadStandaloneItems(ctx, standaloneItems)
	}

	for _, item := range tracks {
		if ctx.Err() != nil {
			return
		}

		s.downloadTrackByID(ctx, item.ItemID, CallerContextDefault, "")
	}
}

// selectPlaylists prints the user's playlists and returns the picked subset.
func (s *ServiceImpl) selectPlaylists(ctx context.Context, playlists []*spotify.Playlist) []*spotify.Playlist {
	logger.Info(ctx, "Your playlists:")

	for index, playlist := range playlists {
		if playlist == nil {
			continue
		}

		var total int64
		if playlist.Tracks != nil {
			total = playlist.Tracks.Total
		}

		logger.Infof(ctx, "  %d. %s (%d tracks)", index+1, playlist.Name, total)
	}

	selected := s.promptSelection(ctx, len(playlists))
	if len(selected) == 0 {
		return nil
	}

	return utils.Map(selected, func(index int) *spotify.Playlist {
		return playlists[index-1]
	})
}

// parseSelection parses a selection string like "1,3-5" into sorted unique
// 1-based indexes bounded by max. "all" selects everything, "exit" and an
// empty string select nothing.
func parseSelection(input string, max int) ([]int, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "", selectionExit:
		return nil, nil
	case selectionAll:
		result := make([]int, 0, max)
		for i := range max {
			result = append(result, i+1)
		}

		return result, nil
	}

	seen := make(map[int]bool)

	var result []int

	appendIndex := func(index int) error {
		if index < 1 || index > max {
			return fmt.Errorf("%w: %d is out of range 1-%d", errInvalidSelection, index, max)
		}

		if !seen[index] {
			seen[index] = true

			result = append(result, index)
		}

		return nil
	}

	for token := range strings.SplitSeq(input, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		from, to, err := parseSelectionToken(token)
		if err != nil {
			return nil, err
		}

		for index := from; index <= to; index++ {
			if err = appendIndex(index); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// parseSelectionToken parses a single "7" or "3-5" token into its bounds.
func parseSelectionToken(token string) (from, to int, err error) {
	if !strings.Contains(token, "-") {
		index, convErr := strconv.Atoi(token)
		if convErr != nil {
			return 0, 0, fmt.Errorf("%w: '%s' is not a number", errInvalidSelection, token)
		}

		return index, index, nil
	}

	parts := strings.SplitN(token, "-", selectionRangeParts)

	from, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: '%s' is not a valid range", errInvalidSelection, token)
	}

	to, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: '%s' is not a valid range", errInvalidSelection, token)
	}

	if from > to {
		return 0, 0, fmt.Errorf("%w: range '%s' is reversed", errInvalidSelection, token)
	}

	return from, to, nil
}
