package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dsmirnov/spotify-grabber/internal/app"
	"github.com/dsmirnov/spotify-grabber/internal/config"
	"github.com/dsmirnov/spotify-grabber/internal/logger"
	"github.com/dsmirnov/spotify-grabber/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:     "spotify-grabber [flags] {urls, IDs, queries, or .txt files}",
		Version: version.Full(),
		Short:   "Download tracks, albums, playlists, podcasts, or an entire artist's catalog.",
		Long: `Spotify Grabber is a CLI tool for downloading audio content from catalog
links, URIs, and free-text search queries. It supports downloading:
- Individual tracks and podcast episodes
- Full albums and shows
- Playlists
- Complete discographies of an artist
- Your saved ("liked") tracks and your playlists

Arguments that are not links are treated as search queries with interactive
selection. A .txt file argument is read as a list of links, one per line.`,
		Args:             cobra.ArbitraryArgs,
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, inputs []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			flags := cmd.Flags()
			likedSongs, _ := flags.GetBool("liked")
			userPlaylists, _ := flags.GetBool("playlists")
			choosePlaylists, _ := flags.GetBool("choose")

			if len(inputs) == 0 && !likedSongs && !userPlaylists {
				logger.Fatal(cmd.Context(),
					"Nothing to download: pass links, queries, or use --liked / --playlists")
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig, &app.RootCommandRequest{
				Inputs:          inputs,
				LikedSongs:      likedSongs,
				UserPlaylists:   userPlaylists,
				ChoosePlaylists: choosePlaylists,
			})
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits,funlen // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"format",
		"f",
		"",
		"output audio format: 'mp3' or 'flac'.")

	rootCmdFlags.StringP(
		"output",
		"o",
		"",
		"directory to save downloaded music (the path will be created if it doesn't exist).")

	rootCmdFlags.String(
		"episodes-output",
		"",
		"directory to save downloaded podcast episodes.")

	rootCmdFlags.String(
		"anti-ban-pause",
		"",
		"pause after each downloaded track, for example: 5s, 500ms.")

	rootCmdFlags.String(
		"album-pause",
		"",
		"pause between albums and playlists in batch flows, for example: 30s.")

	rootCmdFlags.Bool(
		"skip-downloaded",
		false,
		"skip tracks already recorded in the download archive.")

	rootCmdFlags.Bool(
		"skip-existing",
		false,
		"skip tracks whose target file already exists on disk.")

	rootCmdFlags.Int64P(
		"limit",
		"n",
		0,
		"number of search results shown per category.")

	rootCmdFlags.Bool(
		"force-premium",
		false,
		"force the premium quality tier regardless of the account subscription.")

	rootCmdFlags.Bool(
		"album-in-filename",
		false,
		"include the album name in generated filenames.")

	rootCmdFlags.BoolP(
		"liked",
		"l",
		false,
		"download your saved (liked) tracks.")

	rootCmdFlags.BoolP(
		"playlists",
		"p",
		false,
		"download all of your playlists.")

	rootCmdFlags.Bool(
		"choose",
		false,
		"with --playlists, pick the playlists to download interactively.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

//nolint:cyclop // Each supported flag needs its own Changed check.
func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("format"); flag != nil && flag.Changed {
		cfg.AudioFormat, _ = flags.GetString("format")
	}

	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.MusicDir, _ = flags.GetString("output")
	}

	if flag := flags.Lookup("episodes-output"); flag != nil && flag.Changed {
		cfg.EpisodesDir, _ = flags.GetString("episodes-output")
	}

	if flag := flags.Lookup("anti-ban-pause"); flag != nil && flag.Changed {
		cfg.AntiBanPause, _ = flags.GetString("anti-ban-pause")
	}

	if flag := flags.Lookup("album-pause"); flag != nil && flag.Changed {
		cfg.AlbumPause, _ = flags.GetString("album-pause")
	}

	if flag := flags.Lookup("skip-downloaded"); flag != nil && flag.Changed {
		cfg.SkipPreviouslyDownloaded, _ = flags.GetBool("skip-downloaded")
	}

	if flag := flags.Lookup("skip-existing"); flag != nil && flag.Changed {
		cfg.SkipExistingFiles, _ = flags.GetBool("skip-existing")
	}

	if flag := flags.Lookup("limit"); flag != nil && flag.Changed {
		cfg.SearchResultsLimit, _ = flags.GetInt64("limit")
	}

	if flag := flags.Lookup("force-premium"); flag != nil && flag.Changed {
		cfg.ForcePremium, _ = flags.GetBool("force-premium")
	}

	if flag := flags.Lookup("album-in-filename"); flag != nil && flag.Changed {
		cfg.AlbumInFilename, _ = flags.GetBool("album-in-filename")
	}

	return config.ValidateConfig(cfg)
}
