package spotify

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dsmirnov/spotify-grabber/internal/client/spotify"
	"github.com/dsmirnov/spotify-grabber/internal/config"
	"github.com/dsmirnov/spotify-grabber/internal/logger"
)

// Service provides methods for downloading audio content from catalog links and queries.
type Service interface {
	// DownloadURLs orchestrates the full download pipeline for the given inputs:
	// catalog links, URIs, bulk .txt files of links, and free-text search queries.
	DownloadURLs(ctx context.Context, inputs []string)
	// DownloadLikedSongs downloads the user's saved tracks.
	DownloadLikedSongs(ctx context.Context)
	// DownloadUserPlaylists downloads the user's playlists,
	// either all of them or an interactively selected subset.
	DownloadUserPlaylists(ctx context.Context, interactive bool)
	// PrintDownloadSummary prints a formatted summary of download statistics.
	PrintDownloadSummary(ctx context.Context)
}

// ServiceImpl implements the download service with archive deduplication,
// transcoding, and metadata handling.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// spotifyClient is the client for interacting with the catalog API.
	spotifyClient spotify.Client
	// urlResolver parses inputs into downloadable items.
	urlResolver URLResolver
	// filenameBuilder generates destination paths and filenames.
	filenameBuilder FilenameBuilder
	// tagProcessor writes metadata tags to audio files.
	tagProcessor TagProcessor
	// transcoder converts raw streams into the configured container.
	transcoder Transcoder
	// archive is the persistent ledger of finished downloads.
	archive Archive
	// input is the source of interactive selections, stdin in production.
	input *bufio.Reader
	// sessionOnce guards the one-time login and legacy archive migration.
	sessionOnce sync.Once
	// sessionErr holds the outcome of the one-time session setup.
	sessionErr error
	// premium reports whether the account unlocks the premium bitrate tier.
	premium bool
	// stats tracks download statistics for the current session.
	stats *DownloadStatistics
	// statsMutex protects concurrent access to statistics.
	statsMutex *sync.Mutex
}

// NewService creates a download service instance with dependency-injected components.
func NewService(
	cfg *config.Config,
	spotifyClient spotify.Client,
	urlResolver URLResolver,
	filenameBuilder FilenameBuilder,
	tagProcessor TagProcessor,
	transcoder Transcoder,
	archive Archive,
) Service {
	return NewServiceWithInput(cfg, spotifyClient, urlResolver, filenameBuilder, tagProcessor, transcoder,
		archive, os.Stdin)
}

// NewServiceWithInput creates a download service reading interactive selections
// from the given reader instead of stdin.
func NewServiceWithInput(
	cfg *config.Config,
	spotifyClient spotify.Client,
	urlResolver URLResolver,
	filenameBuilder FilenameBuilder,
	tagProcessor TagProcessor,
	transcoder Transcoder,
	archive Archive,
	input io.Reader,
) Service {
	return &ServiceImpl{
		cfg:             cfg,
		spotifyClient:   spotifyClient,
		urlResolver:     urlResolver,
		filenameBuilder: filenameBuilder,
		tagProcessor:    tagProcessor,
		transcoder:      transcoder,
		archive:         archive,
		input:           bufio.NewReader(input),
		stats:           new(DownloadStatistics),
		statsMutex:      new(sync.Mutex),
	}
}

// DownloadURLs orchestrates the full download pipeline for the given inputs.
func (s *ServiceImpl) DownloadURLs(ctx context.Context, inputs []string) {
	if !s.beginSession(ctx) {
		return
	}

	defer s.endSession()

	items, err := s.urlResolver.ExtractDownloadItems(ctx, inputs)
	if err != nil {
		logger.Errorf(ctx, "Failed to extract items to download: %v", err)

		return
	}

	logger.Info(ctx, "Starting download process")

	// Collections go first so individual tracks can be deduplicated against them.
	standaloneItems := s.fetchAndDeduplicateStandaloneItems(ctx, items)
	if len(standaloneItems) > 0 {
		s.downloadStandaloneItems(ctx, standaloneItems)
	}

	for _, item := range items.Tracks {
		if ctx.Err() != nil {
			return
		}

		s.downloadTrackByID(ctx, item.ItemID, CallerContextDefault, "")
	}

	for _, query := range items.SearchQueries {
		if ctx.Err() != nil {
			return
		}

		s.runSearchQuery(ctx, query)
	}

	logger.Info(ctx, "Download process completed")
}

// DownloadLikedSongs downloads the user's saved tracks.
func (s *ServiceImpl) DownloadLikedSongs(ctx context.Context) {
	if !s.beginSession(ctx) {
		return
	}

	defer s.endSession()

	s.downloadLikedSongs(ctx)
}

// DownloadUserPlaylists downloads the user's playlists.
func (s *ServiceImpl) DownloadUserPlaylists(ctx context.Context, interactive bool) {
	if !s.beginSession(ctx) {
		return
	}

	defer s.endSession()

	s.downloadUserPlaylists(ctx, interactive)
}

// beginSession stamps the session start and runs the one-time setup:
// login, subscription check, and legacy archive migration.
func (s *ServiceImpl) beginSession(ctx context.Context) bool {
	s.statsMutex.Lock()

	if s.stats.StartTime.IsZero() {
		s.stats.StartTime = time.Now()
	}

	s.statsMutex.Unlock()

	s.sessionOnce.Do(func() {
		s.sessionErr = s.setupSession(ctx)
	})

	if s.sessionErr != nil {
		logger.Errorf(ctx, "Failed to start session: %v", s.sessionErr)

		return false
	}

	return true
}

// endSession stamps the session end for the summary.
func (s *ServiceImpl) endSession() {
	s.statsMutex.Lock()
	s.stats.EndTime = time.Now()
	s.statsMutex.Unlock()
}

// setupSession logs in, resolves the bitrate tier, and migrates legacy archives.
func (s *ServiceImpl) setupSession(ctx context.Context) error {
	if err := s.spotifyClient.Login(ctx); err != nil {
		return err
	}

	user, err := s.spotifyClient.GetUserProfile(ctx)
	if err != nil {
		return err
	}

	s.premium = strings.EqualFold(user.Product, spotify.UserProductPremium) || s.cfg.ForcePremium
	s.transcoder.SetPremiumTier(s.premium)

	tier := "free"
	if s.premium {
		tier = spotify.UserProductPremium
	}

	logger.Infof(ctx, "Logged in as '%s' (%s tier)", user.DisplayName, tier)

	// Older releases kept tab-separated archives next to the downloads.
	roots := []string{s.cfg.ConfigDir, s.cfg.DownloadDir, s.cfg.MusicDir, s.cfg.EpisodesDir}
	if err = s.archive.MigrateLegacyArchives(ctx, roots); err != nil {
		logger.Warnf(ctx, "Legacy archive migration failed: %v", err)
	}

	return nil
}

// fetchAndDeduplicateStandaloneItems expands artist items into their albums
// and removes duplicate entries.
func (s *ServiceImpl) fetchAndDeduplicateStandaloneItems(
	ctx context.Context,
	items *ExtractDownloadItemsResponse,
) []*DownloadItem {
	standaloneItems := items.StandaloneItems

	if len(items.Artists) > 0 {
		artistAlbums := s.fetchArtistAlbums(ctx, items.Artists)
		standaloneItems = append(standaloneItems, artistAlbums...)
		standaloneItems = s.urlResolver.DeduplicateDownloadItems(standaloneItems)
	}

	return standaloneItems
}

// downloadStandaloneItems handles the download of albums, playlists, shows, and episodes,
// pausing between collections to stay under the rate limit radar.
func (s *ServiceImpl) downloadStandaloneItems(ctx context.Context, items []*DownloadItem) {
	itemsCount := len(items)

	for index, item := range items {
		// Check if context was canceled (CTRL+C pressed) - stop immediately.
		select {
		case <-ctx.Done():
			return
		default:
		}

		if index > 0 {
			s.pauseBetweenCollections(ctx)
		}

		logger.Infof(ctx, "Downloading item: %v (%d / %d)", item, index+1, itemsCount)

		//nolint:exhaustive // All meaningful cases are explicitly handled; default covers unknown values.
		switch item.Kind {
		case EntityKindAlbum:
			s.downloadAlbum(ctx, item.ItemID)
		case EntityKindPlaylist:
			s.downloadPlaylist(ctx, item.ItemID)
		case EntityKindShow:
			s.downloadShow(ctx, item.ItemID)
		case EntityKindEpisode:
			s.downloadEpisodeByID(ctx, item.ItemID)
		default:
			logger.Errorf(ctx, "Unknown entity kind: %d", item.Kind)
		}
	}
}

// pauseBetweenCollections sleeps for the configured between-albums pause.
func (s *ServiceImpl) pauseBetweenCollections(ctx context.Context) {
	logger.Debugf(ctx, "Pausing %s before the next collection", s.cfg.ParsedAlbumPause)

	select {
	case <-ctx.Done():
	case <-time.After(s.cfg.ParsedAlbumPause):
	}
}
