package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/dsmirnov/spotify-grabber/internal/constants"
	"github.com/dsmirnov/spotify-grabber/internal/logger"
	"github.com/dsmirnov/spotify-grabber/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// SessionToken is the session credential used to talk to the catalog API.
	// It is minted by the "auth login" command and stored in the config file.
	SessionToken string `mapstructure:"session_token"`
	// AudioFormat is the output container for downloaded tracks: "mp3" or "flac".
	AudioFormat string `mapstructure:"audio_format"`
	// ConfigDir is the directory where the download archive is kept.
	ConfigDir string `mapstructure:"config_dir"`
	// DownloadDir is an optional extra root scanned for legacy archives.
	DownloadDir string `mapstructure:"download_dir"`
	// MusicDir is the root directory for downloaded music.
	MusicDir string `mapstructure:"music_dir"`
	// EpisodesDir is the root directory for downloaded podcast episodes.
	EpisodesDir string `mapstructure:"episodes_dir"`
	// ArchiveFilename is the name of the download archive file inside ConfigDir.
	ArchiveFilename string `mapstructure:"archive_filename"`
	// AntiBanPause is the pause after each downloaded track (e.g., "5s").
	AntiBanPause string `mapstructure:"anti_ban_pause"`
	// AlbumPause is the pause between albums and playlists in batch flows (e.g., "30s").
	AlbumPause string `mapstructure:"album_pause"`
	// ChunkSize is the stream read chunk size (e.g., "50 kB").
	ChunkSize string `mapstructure:"chunk_size"`
	// RetryAttemptsCount is the number of retry attempts for failed requests.
	RetryAttemptsCount int64 `mapstructure:"retry_attempts_count"`
	// MinRetryPause is the minimum pause duration before retrying.
	MinRetryPause string `mapstructure:"min_retry_pause"`
	// MaxRetryPause is the maximum pause duration before retrying.
	MaxRetryPause string `mapstructure:"max_retry_pause"`
	// SearchResultsLimit is the number of results per category shown for search queries.
	SearchResultsLimit int64 `mapstructure:"search_results_limit"`
	// ForcePremium forces the premium quality tier regardless of the account subscription.
	ForcePremium bool `mapstructure:"force_premium"`
	// SkipPreviouslyDownloaded skips tracks already present in the download archive.
	SkipPreviouslyDownloaded bool `mapstructure:"skip_previously_downloaded"`
	// SkipExistingFiles skips tracks whose target file already exists on disk.
	SkipExistingFiles bool `mapstructure:"skip_existing_files"`
	// AlbumInFilename includes the album name in generated filenames.
	AlbumInFilename bool `mapstructure:"album_in_filename"`
	// SplitAlbumDiscs saves each disc of a multi-disc album into its own subfolder.
	SplitAlbumDiscs bool `mapstructure:"split_album_discs"`
	// NoCreateFolders disables creation of missing destination directories.
	NoCreateFolders bool `mapstructure:"no_create_folders"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// APIBaseURL is the base URL for the catalog API (set automatically).
	APIBaseURL string
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedAntiBanPause is the parsed per-track pause duration.
	ParsedAntiBanPause time.Duration
	// ParsedAlbumPause is the parsed between-albums pause duration.
	ParsedAlbumPause time.Duration
	// ParsedChunkSize is the parsed stream chunk size in bytes.
	ParsedChunkSize int64
	// ParsedMinRetryPause is the parsed minimum retry pause duration.
	ParsedMinRetryPause time.Duration
	// ParsedMaxRetryPause is the parsed maximum retry pause duration.
	ParsedMaxRetryPause time.Duration
}

const (
	// APIBaseURL is the base URL for the catalog API.
	APIBaseURL = "https://api.spotify.com/v1"

	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".spotify-grabber.yaml"

	// DefaultMusicDir is the default root directory for downloaded music.
	DefaultMusicDir = "Spotify Music"

	// DefaultEpisodesDir is the default root directory for downloaded podcast episodes.
	DefaultEpisodesDir = "Spotify Podcasts"

	// DefaultArchiveFilename is the default download archive filename.
	DefaultArchiveFilename = ".song_archive.json"

	// DefaultMaxLogLength is the default maximum size (in bytes) of a single logged HTTP dump.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// AudioFormatMP3 is the MP3 output container.
	AudioFormatMP3 = "mp3"
	// AudioFormatFLAC is the FLAC output container.
	AudioFormatFLAC = "flac"
)

// Static error definitions for better error handling.
var (
	// ErrEmptySessionToken indicates that the session credential is missing.
	ErrEmptySessionToken = errors.New("session token cannot be empty, run 'spotify-grabber auth login' first")
	// ErrInvalidAudioFormat indicates that the audio format setting is invalid.
	ErrInvalidAudioFormat = errors.New("invalid audio_format")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidChunkSize indicates that the chunk size is invalid.
	ErrInvalidChunkSize = errors.New("chunk_size must be a positive byte size")
	// ErrInvalidRetryAttempts indicates that the retry attempts count is invalid.
	ErrInvalidRetryAttempts = errors.New("retry attempts count must a positive integer")
	// ErrInvalidAntiBanPause indicates that the anti-ban pause duration is invalid.
	ErrInvalidAntiBanPause = errors.New("anti_ban_pause must not be negative")
	// ErrInvalidAlbumPause indicates that the album pause duration is invalid.
	ErrInvalidAlbumPause = errors.New("album_pause must be positive")
	// ErrInvalidMinRetryPause indicates that the min retry pause duration is invalid.
	ErrInvalidMinRetryPause = errors.New("min_retry_pause must be positive")
	// ErrInvalidMaxRetryPause indicates that the max retry pause duration is invalid.
	ErrInvalidMaxRetryPause = errors.New("max_retry_pause must be positive")
	// ErrInvalidSearchResultsLimit indicates that the search results limit is invalid.
	ErrInvalidSearchResultsLimit = errors.New("search results limit must be a positive integer")
)

// LoadConfig loads configuration settings from a YAML file.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	viper.SetConfigFile(configFilename)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:funlen,gocognit,cyclop // Validation functions naturally have high complexity and length due to sequential checks.
func ValidateConfig(cfg *Config) error {
	sessionToken := strings.TrimSpace(cfg.SessionToken)
	if sessionToken == "" {
		return ErrEmptySessionToken
	}

	cfg.APIBaseURL = APIBaseURL

	audioFormat := strings.ToLower(strings.TrimSpace(cfg.AudioFormat))
	if audioFormat != AudioFormatMP3 && audioFormat != AudioFormatFLAC {
		return fmt.Errorf("%w: must be '%s' or '%s'", ErrInvalidAudioFormat, AudioFormatMP3, AudioFormatFLAC)
	}

	cfg.AudioFormat = audioFormat

	if cfg.MusicDir == "" {
		cfg.MusicDir = DefaultMusicDir
	}

	if cfg.EpisodesDir == "" {
		cfg.EpisodesDir = DefaultEpisodesDir
	}

	if cfg.ConfigDir == "" {
		cfg.ConfigDir = "."
	}

	if cfg.ArchiveFilename == "" {
		cfg.ArchiveFilename = DefaultArchiveFilename
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !(isLogLevelCorrect) {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	parsedChunkSize, err := humanize.ParseBytes(cfg.ChunkSize)
	if err != nil {
		return fmt.Errorf("failed to parse chunk size: %w", err)
	}

	if parsedChunkSize == 0 {
		return ErrInvalidChunkSize
	}

	// The stream reader slices buffers with int64 offsets, so we convert it safely here.
	cfg.ParsedChunkSize = utils.SafeUint64ToInt64(parsedChunkSize)

	if cfg.RetryAttemptsCount <= 0 {
		return ErrInvalidRetryAttempts
	}

	cfg.ParsedAntiBanPause, err = time.ParseDuration(cfg.AntiBanPause)
	if err != nil {
		return fmt.Errorf("failed to parse anti-ban pause: %w", err)
	}

	// A zero pause disables the per-track sleep.
	if cfg.ParsedAntiBanPause < 0 {
		return ErrInvalidAntiBanPause
	}

	cfg.ParsedAlbumPause, err = time.ParseDuration(cfg.AlbumPause)
	if err != nil {
		return fmt.Errorf("failed to parse album pause: %w", err)
	}

	if cfg.ParsedAlbumPause <= 0 {
		return ErrInvalidAlbumPause
	}

	cfg.ParsedMinRetryPause, err = time.ParseDuration(cfg.MinRetryPause)
	if err != nil {
		return fmt.Errorf("failed to parse min retry pause: %w", err)
	}

	if cfg.ParsedMinRetryPause <= 0 {
		return ErrInvalidMinRetryPause
	}

	cfg.ParsedMaxRetryPause, err = time.ParseDuration(cfg.MaxRetryPause)
	if err != nil {
		return fmt.Errorf("failed to parse max retry pause: %w", err)
	}

	if cfg.ParsedMaxRetryPause <= 0 {
		return ErrInvalidMaxRetryPause
	}

	if cfg.SearchResultsLimit <= 0 {
		return ErrInvalidSearchResultsLimit
	}

	return nil
}

// SaveConfig saves the configuration to the file while preserving the original format and order.
func SaveConfig(cfg *Config) error {
	configFile := getConfigFilePath()

	// Read the original file content.
	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return handleMissingConfigFile(configFile, cfg.SessionToken, err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Update the session_token value in the node tree.
	updateSessionTokenInNode(&node, cfg.SessionToken)

	// Marshal back to YAML (preserves order).
	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	// Write the file back with preserved order.
	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getConfigFilePath returns the config file path from viper or the default.
func getConfigFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return DefaultConfigFilename
	}

	return configFile
}

// handleMissingConfigFile creates a new config file if it doesn't exist.
func handleMissingConfigFile(configFile, sessionToken string, err error) error {
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// File doesn't exist, create it with viper.
	viper.Set("session_token", sessionToken)

	if err = viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// updateSessionTokenInNode updates the session_token value in the YAML node tree.
func updateSessionTokenInNode(node *yaml.Node, sessionToken string) {
	// The root node is a document node, content[0] is the actual map.
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return
	}

	mapNode := node.Content[0]

	// Iterate through key-value pairs (stored as alternating nodes).
	for i := 0; i < len(mapNode.Content); i += 2 {
		keyNode := mapNode.Content[i]
		valueNode := mapNode.Content[i+1]

		if keyNode.Value == "session_token" {
			// Update the value while preserving style.
			valueNode.Value = sessionToken

			// Ensure it's quoted if it contains special characters.
			if valueNode.Style == 0 {
				valueNode.Style = yaml.DoubleQuotedStyle
			}

			break
		}
	}
}
