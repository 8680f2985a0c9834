package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	spotify_client "github.com/dsmirnov/spotify-grabber/internal/client/spotify"
	"github.com/dsmirnov/spotify-grabber/internal/config"
	"github.com/dsmirnov/spotify-grabber/internal/logger"
	spotify_service "github.com/dsmirnov/spotify-grabber/internal/service/spotify"
)

// dumpConfigEnvVar makes the binary print its effective configuration as JSON
// and exit, which the end-to-end tests use to verify flag binding.
const dumpConfigEnvVar = "SPOTIFY_GRABBER_DUMP_CONFIG"

// RootCommandRequest carries the resolved command-line intent into the application.
type RootCommandRequest struct {
	// Inputs are the positional arguments: links, URIs, queries, and .txt bulk files.
	Inputs []string
	// LikedSongs requests a download of the user's saved tracks.
	LikedSongs bool
	// UserPlaylists requests a download of the user's playlists.
	UserPlaylists bool
	// ChoosePlaylists switches the playlists download to interactive selection.
	ChoosePlaylists bool
}

// ExecuteRootCommand is the entry point for the application.
// It initializes the catalog client, sets up the service components,
// and starts the download process for the requested inputs.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, request *RootCommandRequest) {
	if os.Getenv(dumpConfigEnvVar) == "1" {
		dumpConfig(ctx, cfg)

		return
	}

	spotifyClient, err := spotify_client.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize catalog client: %v", err)
	}

	urlResolver := spotify_service.NewURLResolver()
	filenameBuilder := spotify_service.NewFilenameBuilder(cfg)
	tagProcessor := spotify_service.NewTagProcessor(spotifyClient)
	transcoder := spotify_service.NewTranscoder(cfg)
	archive := spotify_service.NewArchive(ctx, filepath.Join(cfg.ConfigDir, cfg.ArchiveFilename))

	s := spotify_service.NewService(cfg, spotifyClient, urlResolver, filenameBuilder, tagProcessor, transcoder, archive)

	// Ensure statistics are ALWAYS printed, even on panic or os.Exit bypass.
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "Panic recovered: %v", r)
		}

		s.PrintDownloadSummary(ctx)
	}()

	if len(request.Inputs) > 0 {
		s.DownloadURLs(ctx, request.Inputs)
	}

	if request.LikedSongs {
		s.DownloadLikedSongs(ctx)
	}

	if request.UserPlaylists {
		s.DownloadUserPlaylists(ctx, request.ChoosePlaylists)
	}
}

// dumpConfig prints the effective configuration as a single JSON object on stdout.
func dumpConfig(ctx context.Context, cfg *config.Config) {
	dump := struct {
		AudioFormat              string `json:"audio_format"`
		MusicDir                 string `json:"music_dir"`
		EpisodesDir              string `json:"episodes_dir"`
		SkipPreviouslyDownloaded bool   `json:"skip_previously_downloaded"`
		SkipExistingFiles        bool   `json:"skip_existing_files"`
		ForcePremium             bool   `json:"force_premium"`
		SearchResultsLimit       int64  `json:"search_results_limit"`
	}{
		AudioFormat:              cfg.AudioFormat,
		MusicDir:                 cfg.MusicDir,
		EpisodesDir:              cfg.EpisodesDir,
		SkipPreviouslyDownloaded: cfg.SkipPreviouslyDownloaded,
		SkipExistingFiles:        cfg.SkipExistingFiles,
		ForcePremium:             cfg.ForcePremium,
		SearchResultsLimit:       cfg.SearchResultsLimit,
	}

	if err := json.NewEncoder(os.Stdout).Encode(dump); err != nil {
		logger.Errorf(ctx, "Failed to dump configuration: %v", err)
	}
}
