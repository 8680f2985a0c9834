package spotify

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dsmirnov/spotify-grabber/internal/client/spotify"
	"github.com/dsmirnov/spotify-grabber/internal/constants"
	"github.com/dsmirnov/spotify-grabber/internal/logger"
	"github.com/dsmirnov/spotify-grabber/internal/utils"
)

// downloadEpisodeRequest contains parameters for downloading a single podcast episode.
type downloadEpisodeRequest struct {
	// callerContext selects the filename template.
	callerContext CallerContext
	// episode is the episode metadata. Its Show field must be populated.
	episode *spotify.Episode
	// episodeIndex is the user-facing position within the show, starting at 1.
	episodeIndex int64
	// episodesCount is the total number of episodes in the show, for logging.
	episodesCount int64
	// pathOverride replaces the configured episodes directory when non-empty.
	pathOverride string
	// parentKind is the type of the enclosing collection, for error reporting.
	parentKind EntityKind
	// parentID is the ID of the enclosing collection.
	parentID string
	// parentTitle is the title of the enclosing collection.
	parentTitle string
}

// downloadEpisodeByID fetches episode metadata and runs the download pipeline for it.
func (s *ServiceImpl) downloadEpisodeByID(ctx context.Context, episodeID string) bool {
	episode, err := s.spotifyClient.GetEpisode(ctx, episodeID)
	if err != nil || episode == nil {
		if err == nil {
			err = ErrEpisodeNotFound
		}

		s.handleTrackFailure(ctx, &ErrorContext{
			Kind:      EntityKindEpisode,
			ItemID:    episodeID,
			ItemTitle: "Unknown Episode",
			Phase:     "fetching metadata",
		}, err)

		return false
	}

	return s.downloadEpisode(ctx, &downloadEpisodeRequest{
		callerContext: CallerContextEpisode,
		episode:       episode,
		// A standalone episode has no listing position, number it first.
		episodeIndex:  1,
		episodesCount: 1,
		pathOverride:  s.showFolderPath(episode.Show),
	})
}

// downloadShow downloads every episode of a podcast show into a folder
// named after the show. Episodes are numbered by listing position.
func (s *ServiceImpl) downloadShow(ctx context.Context, showID string) {
	show, err := s.spotifyClient.GetShow(ctx, showID)
	if err != nil || show == nil {
		if err == nil {
			err = ErrShowNotFound
		}

		logger.Errorf(ctx, "Failed to fetch show '%s': %v", showID, err)
		s.recordError(&ErrorContext{
			Kind:      EntityKindShow,
			ItemID:    showID,
			ItemTitle: "Unknown Show",
			Phase:     "fetching metadata",
		}, err)

		return
	}

	episodes, err := s.spotifyClient.GetShowEpisodes(ctx, showID)
	if err != nil {
		logger.Errorf(ctx, "Failed to fetch episodes of show '%s': %v", show.Name, err)
		s.recordError(&ErrorContext{
			Kind:      EntityKindShow,
			ItemID:    showID,
			ItemTitle: show.Name,
			Phase:     "fetching show episodes",
		}, err)

		return
	}

	logger.Infof(ctx, "Downloading show '%s' (%d episodes)", show.Name, len(episodes))

	showPath := s.showFolderPath(show)
	episodesCount := int64(len(episodes))

	for index, episode := range episodes {
		// Check if context was canceled (CTRL+C pressed) - stop immediately.
		select {
		case <-ctx.Done():
			return
		default:
		}

		if episode == nil {
			continue
		}

		// Show episode listings omit the show block, the tagger needs it.
		episode.Show = show

		s.downloadEpisode(ctx, &downloadEpisodeRequest{
			callerContext: CallerContextShow,
			episode:       episode,
			episodeIndex:  int64(index) + 1,
			episodesCount: episodesCount,
			pathOverride:  showPath,
			parentKind:    EntityKindShow,
			parentID:      showID,
			parentTitle:   show.Name,
		})
	}
}

// downloadEpisode runs the full pipeline for one episode: skip checks, stream fetch,
// transcode, tagging, and archive recording.
//
//nolint:funlen,cyclop // Function orchestrates the download workflow with multiple sequential steps.
func (s *ServiceImpl) downloadEpisode(ctx context.Context, req *downloadEpisodeRequest) bool {
	episode := req.episode
	meta := s.fillEpisodeMetadata(episode, req.episodeIndex)

	errorCtx := &ErrorContext{
		Kind:        EntityKindEpisode,
		ItemID:      episode.ID,
		ItemTitle:   episode.Name,
		ParentKind:  req.parentKind,
		ParentID:    req.parentID,
		ParentTitle: req.parentTitle,
	}

	if s.cfg.SkipPreviouslyDownloaded && s.archive.Exists(episode.ID) {
		logger.Infof(ctx, "Episode '%s' is recorded in the download archive, skipping", episode.Name)
		s.incrementTrackSkipped(SkipReasonArchive)

		return false
	}

	fullPath, _ := s.filenameBuilder.Build(req.callerContext, meta, req.pathOverride)

	if s.cfg.SkipExistingFiles {
		if exists, _ := utils.IsFileExist(fullPath); exists {
			logger.Infof(ctx, "Episode '%s' already exists, skipping download", fullPath)
			s.incrementTrackSkipped(SkipReasonExists)

			return false
		}
	}

	logger.Infof(ctx, "Downloading episode %d of %d: %s - %s",
		req.episodeIndex, req.episodesCount, meta.Artist, episode.Name)

	stream, err := s.spotifyClient.OpenStream(ctx, episode.ID, s.streamQuality())
	if err != nil {
		errorCtx.Phase = "opening stream"
		s.handleTrackFailure(ctx, errorCtx, err)

		return false
	}

	raw, err := s.fetchStream(ctx, stream)

	stream.Body.Close() //nolint:gosec // Error on close is not critical here.

	if err != nil {
		errorCtx.Phase = "downloading stream"
		s.handleTrackFailure(ctx, errorCtx, err)

		return false
	}

	if !s.cfg.NoCreateFolders {
		if err = os.MkdirAll(filepath.Dir(fullPath), constants.DefaultFolderPermissions); err != nil {
			errorCtx.Phase = "creating destination directory"
			s.handleTrackFailure(ctx, errorCtx, err)

			return false
		}
	}

	if err = s.transcoder.Transcode(ctx, raw, fullPath); err != nil {
		errorCtx.Phase = "transcoding"
		s.handleTrackFailure(ctx, errorCtx, err)

		return false
	}

	if err = s.tagProcessor.WriteTags(ctx, s.buildWriteTagsRequest(fullPath, meta)); err != nil {
		errorCtx.Phase = "writing metadata tags"
		s.handleTrackFailure(ctx, errorCtx, err)

		return false
	}

	if err = s.archive.Add(ctx, episode.ID, meta.Artist, meta.Title, fullPath, meta.AudioType); err != nil {
		logger.Warnf(ctx, "Failed to record episode '%s' in the download archive: %v", episode.ID, err)
	}

	s.incrementTrackDownloaded(int64(len(raw)))
	logger.Infof(ctx, "Saved: %s", fullPath)

	s.antiBanPause(ctx)

	return true
}

// fillEpisodeMetadata converts episode metadata into the builder/tagger form.
// The publisher takes the artist slot, the show name the album slot.
func (s *ServiceImpl) fillEpisodeMetadata(episode *spotify.Episode, episodeIndex int64) *TrackMetadata {
	meta := &TrackMetadata{
		Title:       episode.Name,
		ReleaseYear: releaseYear(episode.ReleaseDate),
		TrackNumber: episodeIndex,
		SourceID:    episode.ID,
		CoverURL:    largestImageURL(episode.Images),
		AudioType:   audioTypeEpisode,
	}

	if episode.Show != nil {
		meta.Artist = episode.Show.Publisher
		meta.Album = episode.Show.Name
		meta.AlbumArtist = episode.Show.Publisher

		if meta.CoverURL == "" {
			meta.CoverURL = largestImageURL(episode.Show.Images)
		}
	}

	return meta
}

// showFolderPath builds the show destination folder under the episodes directory.
func (s *ServiceImpl) showFolderPath(show *spotify.Show) string {
	if show == nil {
		return s.cfg.EpisodesDir
	}

	return filepath.Join(s.cfg.EpisodesDir, utils.SanitizeName(show.Name))
}
