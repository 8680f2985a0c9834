package spotify

//go:generate $MOCKGEN -source=filename.go -destination=mocks/filename_mock.go

import (
	"fmt"
	"path/filepath"

	"github.com/dsmirnov/spotify-grabber/internal/config"
	"github.com/dsmirnov/spotify-grabber/internal/utils"
)

const (
	// maxFilenameLength is the filesystem limit a generated filename must fit.
	maxFilenameLength = 255

	// shortenedArtistPlaceholder replaces oversized artist lists in filenames.
	shortenedArtistPlaceholder = "Various Artists"
)

// CallerContext identifies which download flow a filename is built for.
// The template and base directory depend on it.
type CallerContext uint8

const (
	// CallerContextDefault - single track outside any collection.
	CallerContextDefault CallerContext = iota
	// CallerContextAlbum - track downloaded as part of an album.
	CallerContextAlbum
	// CallerContextPlaylist - track downloaded as part of a playlist.
	CallerContextPlaylist
	// CallerContextShow - episode downloaded as part of a whole show.
	CallerContextShow
	// CallerContextEpisode - single podcast episode.
	CallerContextEpisode
	// CallerContextLikedSongs - track downloaded from the user's saved tracks.
	CallerContextLikedSongs
)

// String returns a human-readable representation of the CallerContext.
func (cc CallerContext) String() string {
	switch cc {
	case CallerContextDefault:
		return "default"
	case CallerContextAlbum:
		return "album"
	case CallerContextPlaylist:
		return "playlist"
	case CallerContextShow:
		return "show"
	case CallerContextEpisode:
		return "episode"
	case CallerContextLikedSongs:
		return "liked songs"
	default:
		return fmt.Sprintf("unknown: %d", cc)
	}
}

// FilenameBuilder generates destination paths and filenames for downloads.
type FilenameBuilder interface {
	// Build returns the full destination path and the bare filename for a track.
	// pathOverride replaces the configured base directory when non-empty.
	Build(callerContext CallerContext, meta *TrackMetadata, pathOverride string) (fullPath, filename string)
}

// FilenameBuilderImpl implements FilenameBuilder from the application configuration.
type FilenameBuilderImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
}

// NewFilenameBuilder creates a new FilenameBuilder instance.
func NewFilenameBuilder(cfg *config.Config) FilenameBuilder {
	return &FilenameBuilderImpl{cfg: cfg}
}

// Build returns the full destination path and the bare filename for a track.
func (fb *FilenameBuilderImpl) Build(
	callerContext CallerContext,
	meta *TrackMetadata,
	pathOverride string,
) (string, string) {
	// Oversized names are shortened BEFORE sanitization, preserving the
	// historical order so identical inputs keep producing identical names.
	artist, title := fb.shorten(callerContext, meta)

	filename := utils.SanitizeName(fb.renderFilename(callerContext, meta, artist, title))

	baseDir := pathOverride
	if baseDir == "" {
		baseDir = fb.baseDir(callerContext)
	}

	return filepath.Join(baseDir, filename), filename
}

// renderFilename applies the per-context filename template.
func (fb *FilenameBuilderImpl) renderFilename(
	callerContext CallerContext,
	meta *TrackMetadata,
	artist, title string,
) string {
	var name string

	switch callerContext {
	case CallerContextAlbum:
		if fb.cfg.AlbumInFilename {
			name = fmt.Sprintf("%s %d. %s", meta.Album, meta.TrackNumber, title)
		} else {
			name = fmt.Sprintf("%d. %s", meta.TrackNumber, title)
		}
	case CallerContextPlaylist:
		if fb.cfg.AlbumInFilename {
			name = fmt.Sprintf("%s - %s - %s", artist, meta.Album, title)
		} else {
			name = fmt.Sprintf("%s - %s", artist, title)
		}
	case CallerContextShow:
		name = fmt.Sprintf("%d. %s", meta.TrackNumber, title)
	case CallerContextEpisode:
		name = fmt.Sprintf("%s - %d. %s", artist, meta.TrackNumber, title)
	case CallerContextDefault, CallerContextLikedSongs:
		name = fmt.Sprintf("%s - %s", artist, title)
	default:
		name = fmt.Sprintf("%s - %s", artist, title)
	}

	return utils.SetFileExtension(name, fb.cfg.AudioFormat, false)
}

// baseDir returns the configured base directory for the context.
func (fb *FilenameBuilderImpl) baseDir(callerContext CallerContext) string {
	switch callerContext {
	case CallerContextShow, CallerContextEpisode:
		return fb.cfg.EpisodesDir
	case CallerContextDefault, CallerContextAlbum, CallerContextPlaylist, CallerContextLikedSongs:
		return fb.cfg.MusicDir
	default:
		return fb.cfg.MusicDir
	}
}

// shorten fits the rendered filename under maxFilenameLength.
// An artist list longer than half the limit is replaced wholesale,
// otherwise the title gives up exactly the excess characters.
func (fb *FilenameBuilderImpl) shorten(callerContext CallerContext, meta *TrackMetadata) (string, string) {
	artist := meta.Artist
	title := meta.Title

	excess := len([]rune(fb.renderFilename(callerContext, meta, artist, title))) - maxFilenameLength
	if excess <= 0 {
		return artist, title
	}

	if len([]rune(artist)) > maxFilenameLength/2 {
		artist = shortenedArtistPlaceholder

		excess = len([]rune(fb.renderFilename(callerContext, meta, artist, title))) - maxFilenameLength
		if excess <= 0 {
			return artist, title
		}
	}

	titleRunes := []rune(title)
	if excess < len(titleRunes) {
		title = string(titleRunes[:len(titleRunes)-excess])
	}

	return artist, title
}
