package spotify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dsmirnov/spotify-grabber/internal/client/spotify"
	"github.com/dsmirnov/spotify-grabber/internal/constants"
	"github.com/dsmirnov/spotify-grabber/internal/logger"
	"github.com/dsmirnov/spotify-grabber/internal/utils"
)

// downloadTrackRequest contains parameters for downloading a single track.
type downloadTrackRequest struct {
	// callerContext selects the filename template and base directory.
	callerContext CallerContext
	// track is the track metadata. Its Album field must be populated.
	track *spotify.Track
	// trackIndex is the user-facing position within the collection, starting at 1.
	// Zero means the album's own track number is used.
	trackIndex int64
	// tracksCount is the total number of tracks in the collection, for logging.
	tracksCount int64
	// pathOverride replaces the configured base directory when non-empty.
	pathOverride string
	// parentKind is the type of the enclosing collection, for error reporting.
	parentKind EntityKind
	// parentID is the ID of the enclosing collection.
	parentID string
	// parentTitle is the title of the enclosing collection.
	parentTitle string
}

// downloadTrackByID fetches track metadata and runs the download pipeline for it.
func (s *ServiceImpl) downloadTrackByID(
	ctx context.Context,
	trackID string,
	callerContext CallerContext,
	pathOverride string,
) bool {
	track, err := s.spotifyClient.GetTrack(ctx, trackID)
	if err != nil {
		s.handleTrackFailure(ctx, &ErrorContext{
			Kind:      EntityKindTrack,
			ItemID:    trackID,
			ItemTitle: "Unknown Track",
			Phase:     "fetching metadata",
		}, err)

		return false
	}

	return s.downloadTrack(ctx, &downloadTrackRequest{
		callerContext: callerContext,
		track:         track,
		trackIndex:    track.TrackNumber,
		tracksCount:   1,
		pathOverride:  pathOverride,
	})
}

// downloadTrack runs the full pipeline for one track: skip checks, stream fetch,
// transcode, tagging, and archive recording. All failures are caught, logged
// with the track ID and destination, and reported as false.
//
//nolint:funlen,cyclop // Function orchestrates the download workflow with multiple sequential steps.
func (s *ServiceImpl) downloadTrack(ctx context.Context, req *downloadTrackRequest) bool {
	track := req.track
	meta := s.fillTrackMetadata(req)

	errorCtx := &ErrorContext{
		Kind:        EntityKindTrack,
		ItemID:      track.ID,
		ItemTitle:   track.Name,
		ParentKind:  req.parentKind,
		ParentID:    req.parentID,
		ParentTitle: req.parentTitle,
	}

	if s.cfg.SkipPreviouslyDownloaded && s.archive.Exists(track.ID) {
		logger.Infof(ctx, "Track '%s' is recorded in the download archive, skipping", track.Name)
		s.incrementTrackSkipped(SkipReasonArchive)

		return false
	}

	// A missing playable flag counts as playable.
	if track.IsPlayable != nil && !*track.IsPlayable {
		logger.Warnf(ctx, "Track '%s' is not playable in your market, skipping", track.Name)
		s.incrementTrackSkipped(SkipReasonUnplayable)
		s.recordError(errorCtx, fmt.Errorf("%w: %s", ErrTrackUnplayable, track.ID))

		return false
	}

	fullPath, _ := s.filenameBuilder.Build(req.callerContext, meta, req.pathOverride)

	if s.cfg.SkipExistingFiles {
		if exists, _ := utils.IsFileExist(fullPath); exists {
			logger.Infof(ctx, "Track '%s' already exists, skipping download", fullPath)
			s.incrementTrackSkipped(SkipReasonExists)

			return false
		}
	}

	logger.Infof(ctx, "Downloading track %d of %d: %s - %s",
		req.trackIndex, req.tracksCount, meta.Artist, track.Name)

	stream, err := s.spotifyClient.OpenStream(ctx, track.ID, s.streamQuality())
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

	// The archive records a track only after its tags are in place,
	// a crash in between must not mark the track as done.
	if err = s.archive.Add(ctx, track.ID, meta.Artist, meta.Title, fullPath, meta.AudioType); err != nil {
		logger.Warnf(ctx, "Failed to record track '%s' in the download archive: %v", track.ID, err)
	}

	s.incrementTrackDownloaded(int64(len(raw)))
	logger.Infof(ctx, "Saved: %s", fullPath)

	s.antiBanPause(ctx)

	return true
}

// handleTrackFailure logs and records a failed track download.
func (s *ServiceImpl) handleTrackFailure(ctx context.Context, errorCtx *ErrorContext, err error) {
	// Don't log context cancellation - it's expected when user presses CTRL+C.
	if !errors.Is(err, context.Canceled) {
		logger.Errorf(ctx, "Track '%s' (%s) failed: %v", errorCtx.ItemTitle, errorCtx.ItemID, err)
	}

	s.incrementTrackFailed()
	s.recordError(errorCtx, err)
}

// streamQuality returns the quality tier matching the account's subscription.
func (s *ServiceImpl) streamQuality() string {
	if s.premium {
		return spotify.StreamQualityVeryHigh
	}

	return spotify.StreamQualityHigh
}

// antiBanPause sleeps after a finished download to stay under the rate limit radar.
// A zero pause disables the sleep.
func (s *ServiceImpl) antiBanPause(ctx context.Context) {
	if s.cfg.ParsedAntiBanPause <= 0 {
		return
	}

	select {
	case <-ctx.Done():
	case <-time.After(s.cfg.ParsedAntiBanPause):
	}
}

// fillTrackMetadata converts catalog track metadata into the builder/tagger form.
func (s *ServiceImpl) fillTrackMetadata(req *downloadTrackRequest) *TrackMetadata {
	track := req.track

	meta := &TrackMetadata{
		Artist:      joinArtistNames(track.Artists),
		Title:       track.Name,
		DiscNumber:  track.DiscNumber,
		TrackNumber: track.TrackNumber,
		SourceID:    track.ID,
		AudioType:   audioTypeMusic,
	}

	if req.trackIndex > 0 {
		meta.TrackNumber = req.trackIndex
	}

	if track.Album != nil {
		meta.Album = track.Album.Name
		meta.AlbumArtist = joinArtistNames(track.Album.Artists)
		meta.ReleaseYear = releaseYear(track.Album.ReleaseDate)
		meta.CoverURL = largestImageURL(track.Album.Images)
	}

	return meta
}

// buildWriteTagsRequest maps track metadata onto the tagger request.
func (s *ServiceImpl) buildWriteTagsRequest(fullPath string, meta *TrackMetadata) *WriteTagsRequest {
	return &WriteTagsRequest{
		TrackPath:   fullPath,
		Artist:      meta.Artist,
		Title:       meta.Title,
		Album:       meta.Album,
		AlbumArtist: meta.AlbumArtist,
		ReleaseYear: meta.ReleaseYear,
		DiscNumber:  meta.DiscNumber,
		TrackNumber: meta.TrackNumber,
		SourceID:    meta.SourceID,
		CoverURL:    meta.CoverURL,
	}
}

// joinArtistNames flattens an artist list into a display string.
func joinArtistNames(artists []*spotify.Artist) string {
	names := make([]string, 0, len(artists))

	for _, artist := range artists {
		if artist != nil && artist.Name != "" {
			names = append(names, artist.Name)
		}
	}

	return strings.Join(names, ", ")
}

// releaseYear extracts the year from a release date of varying precision
// ("2006", "2006-01", "2006-01-02").
func releaseYear(releaseDate string) string {
	const yearLength = 4

	if len(releaseDate) < yearLength {
		return releaseDate
	}

	return releaseDate[:yearLength]
}

// largestImageURL returns the first image URL, the API orders them by descending size.
func largestImageURL(images []*spotify.Image) string {
	for _, image := range images {
		if image != nil && image.URL != "" {
			return image.URL
		}
	}

	return ""
}
