package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/dsmirnov/spotify-grabber/internal/constants"
)

// validTestConfig returns a config that passes validation,
// so tests only need to break the field under test.
func validTestConfig() *Config {
	return &Config{
		SessionToken:       "valid_token",
		AudioFormat:        "mp3",
		AntiBanPause:       "5s",
		AlbumPause:         "30s",
		ChunkSize:          "50 kB",
		RetryAttemptsCount: 3,
		MinRetryPause:      "1s",
		MaxRetryPause:      "3s",
		SearchResultsLimit: 10,
		LogLevel:           "info",
	}
}

// TestConfigStruct tests the Config struct fields.
func TestConfigStruct(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		SessionToken:             "test_token",
		AudioFormat:              "flac",
		ConfigDir:                "/tmp/config",
		MusicDir:                 "/tmp/music",
		EpisodesDir:              "/tmp/episodes",
		ArchiveFilename:          ".song_archive.json",
		AntiBanPause:             "5s",
		AlbumPause:               "30s",
		ChunkSize:                "50 kB",
		RetryAttemptsCount:       3,
		MinRetryPause:            "1s",
		MaxRetryPause:            "3s",
		SearchResultsLimit:       10,
		ForcePremium:             true,
		SkipPreviouslyDownloaded: true,
		SkipExistingFiles:        true,
		AlbumInFilename:          false,
		SplitAlbumDiscs:          true,
		LogLevel:                 "info",
	}

	assert.Equal(t, "test_token", cfg.SessionToken)
	assert.Equal(t, "flac", cfg.AudioFormat)
	assert.Equal(t, "/tmp/config", cfg.ConfigDir)
	assert.Equal(t, "/tmp/music", cfg.MusicDir)
	assert.Equal(t, "/tmp/episodes", cfg.EpisodesDir)
	assert.Equal(t, ".song_archive.json", cfg.ArchiveFilename)
	assert.Equal(t, "5s", cfg.AntiBanPause)
	assert.Equal(t, "30s", cfg.AlbumPause)
	assert.Equal(t, "50 kB", cfg.ChunkSize)
	assert.Equal(t, int64(3), cfg.RetryAttemptsCount)
	assert.Equal(t, "1s", cfg.MinRetryPause)
	assert.Equal(t, "3s", cfg.MaxRetryPause)
	assert.Equal(t, int64(10), cfg.SearchResultsLimit)
	assert.True(t, cfg.ForcePremium)
	assert.True(t, cfg.SkipPreviouslyDownloaded)
	assert.True(t, cfg.SkipExistingFiles)
	assert.False(t, cfg.AlbumInFilename)
	assert.True(t, cfg.SplitAlbumDiscs)
	assert.Equal(t, "info", cfg.LogLevel)
}

// TestConstants tests the constants.
func TestConstants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1024*1024, DefaultMaxLogLength)
	assert.Equal(t, "https://api.spotify.com/v1", APIBaseURL)
	assert.Equal(t, "mp3", AudioFormatMP3)
	assert.Equal(t, "flac", AudioFormatFLAC)
}

// TestLoadConfig tests the LoadConfig function.
//
//nolint:tparallel // It's a test function and it's not parallel to avoid race conditions.
func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		configFilename string
		configContent  string
		expectError    bool
		expectedError  string
	}{
		{
			name:           "valid config file",
			configFilename: "valid_config.yaml",
			configContent: `
session_token: "test_token"
audio_format: "mp3"
music_dir: "Spotify Music"
episodes_dir: "Spotify Podcasts"
anti_ban_pause: "5s"
album_pause: "30s"
chunk_size: "50 kB"
retry_attempts_count: 3
min_retry_pause: "1s"
max_retry_pause: "3s"
search_results_limit: 10
log_level: "info"
`,
			expectError: false,
		},
		{
			name:           "non-existent file",
			configFilename: "non_existent.yaml",
			expectError:    true,
			expectedError:  "failed to read config from file",
		},
		{
			name:           "invalid yaml",
			configFilename: "invalid.yaml",
			configContent: `
invalid: yaml: content: [unclosed
`,
			expectError:   true,
			expectedError: "failed to read config from file",
		},
		{
			name:           "empty filename uses default",
			configFilename: "",
			expectError:    true,
			expectedError:  "failed to read config from file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temporary directory for this test.
			var (
				tempDir    = t.TempDir()
				configPath string
			)

			switch {
			case tt.configContent != "":
				configPath = filepath.Join(tempDir, tt.configFilename)
				err := os.WriteFile(configPath, []byte(tt.configContent), constants.DefaultFilePermissions)

				require.NoError(t, err)
			case tt.configFilename != "":
				configPath = filepath.Join(tempDir, tt.configFilename)
			default:
				// For empty filename test, use a non-existent file path.
				configPath = filepath.Join(tempDir, "non_existent.yaml")
			}

			cfg, err := LoadConfig(configPath)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, cfg)
				assert.Equal(t, "test_token", cfg.SessionToken)
				assert.Equal(t, "mp3", cfg.AudioFormat)
			}
		})
	}
}

// TestValidateConfig tests the ValidateConfig function.
func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mutate      func(cfg *Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			mutate:      func(_ *Config) {},
			expectError: false,
		},
		{
			name: "empty session token",
			mutate: func(cfg *Config) {
				cfg.SessionToken = ""
			},
			expectError: true,
			errorMsg:    "session token cannot be empty",
		},
		{
			name: "whitespace session token",
			mutate: func(cfg *Config) {
				cfg.SessionToken = "   "
			},
			expectError: true,
			errorMsg:    "session token cannot be empty",
		},
		{
			name: "invalid audio format",
			mutate: func(cfg *Config) {
				cfg.AudioFormat = "ogg"
			},
			expectError: true,
			errorMsg:    "invalid audio_format",
		},
		{
			name: "uppercase audio format is accepted",
			mutate: func(cfg *Config) {
				cfg.AudioFormat = "FLAC"
			},
			expectError: false,
		},
		{
			name: "invalid log level",
			mutate: func(cfg *Config) {
				cfg.LogLevel = "invalid"
			},
			expectError: true,
			errorMsg:    "unknown log level:",
		},
		{
			name: "invalid chunk size",
			mutate: func(cfg *Config) {
				cfg.ChunkSize = "notasize"
			},
			expectError: true,
			errorMsg:    "failed to parse chunk size:",
		},
		{
			name: "zero chunk size",
			mutate: func(cfg *Config) {
				cfg.ChunkSize = "0"
			},
			expectError: true,
			errorMsg:    "chunk_size must be a positive byte size",
		},
		{
			name: "invalid retry attempts count",
			mutate: func(cfg *Config) {
				cfg.RetryAttemptsCount = 0
			},
			expectError: true,
			errorMsg:    "retry attempts count must a positive integer",
		},
		{
			name: "invalid anti-ban pause",
			mutate: func(cfg *Config) {
				cfg.AntiBanPause = "invalid"
			},
			expectError: true,
			errorMsg:    "failed to parse anti-ban pause:",
		},
		{
			name: "negative anti-ban pause",
			mutate: func(cfg *Config) {
				cfg.AntiBanPause = "-5s"
			},
			expectError: true,
			errorMsg:    "anti_ban_pause must not be negative",
		},
		{
			name: "invalid album pause",
			mutate: func(cfg *Config) {
				cfg.AlbumPause = "invalid"
			},
			expectError: true,
			errorMsg:    "failed to parse album pause:",
		},
		{
			name: "zero album pause",
			mutate: func(cfg *Config) {
				cfg.AlbumPause = "0s"
			},
			expectError: true,
			errorMsg:    "album_pause must be positive",
		},
		{
			name: "invalid min retry pause",
			mutate: func(cfg *Config) {
				cfg.MinRetryPause = "invalid"
			},
			expectError: true,
			errorMsg:    "failed to parse min retry pause:",
		},
		{
			name: "invalid max retry pause",
			mutate: func(cfg *Config) {
				cfg.MaxRetryPause = "invalid"
			},
			expectError: true,
			errorMsg:    "failed to parse max retry pause:",
		},
		{
			name: "invalid search results limit",
			mutate: func(cfg *Config) {
				cfg.SearchResultsLimit = 0
			},
			expectError: true,
			errorMsg:    "search results limit must be a positive integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validTestConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
				// Check that parsed values are set correctly.
				assert.Equal(t, zapcore.InfoLevel, cfg.ParsedLogLevel)
				assert.Equal(t, APIBaseURL, cfg.APIBaseURL)
				assert.Equal(t, int64(50000), cfg.ParsedChunkSize)
				assert.Equal(t, 5*time.Second, cfg.ParsedAntiBanPause)
				assert.Equal(t, 30*time.Second, cfg.ParsedAlbumPause)
			}
		})
	}
}

// TestValidateConfig_ZeroAntiBanPause tests that a zero pause passes validation,
// it disables the per-track sleep.
func TestValidateConfig_ZeroAntiBanPause(t *testing.T) {
	t.Parallel()

	cfg := validTestConfig()
	cfg.AntiBanPause = "0s"

	require.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, time.Duration(0), cfg.ParsedAntiBanPause)
}

// TestValidateConfig_Defaults tests that directory and archive defaults are applied.
func TestValidateConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := validTestConfig()
	require.NoError(t, ValidateConfig(cfg))

	assert.Equal(t, DefaultMusicDir, cfg.MusicDir)
	assert.Equal(t, DefaultEpisodesDir, cfg.EpisodesDir)
	assert.Equal(t, ".", cfg.ConfigDir)
	assert.Equal(t, DefaultArchiveFilename, cfg.ArchiveFilename)

	// Explicit settings are preserved.
	cfg = validTestConfig()
	cfg.MusicDir = "/music"
	cfg.EpisodesDir = "/podcasts"
	cfg.ConfigDir = "/cfg"
	cfg.ArchiveFilename = "archive.json"
	require.NoError(t, ValidateConfig(cfg))

	assert.Equal(t, "/music", cfg.MusicDir)
	assert.Equal(t, "/podcasts", cfg.EpisodesDir)
	assert.Equal(t, "/cfg", cfg.ConfigDir)
	assert.Equal(t, "archive.json", cfg.ArchiveFilename)
}

// TestValidateConfig_ChunkSize tests chunk size parsing.
func TestValidateConfig_ChunkSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		chunkSize     string
		expectedBytes int64
		expectError   bool
	}{
		{
			name:          "50 kB",
			chunkSize:     "50 kB",
			expectedBytes: 50000,
			expectError:   false,
		},
		{
			name:          "plain number",
			chunkSize:     "50000",
			expectedBytes: 50000,
			expectError:   false,
		},
		{
			name:          "1 MB",
			chunkSize:     "1MB",
			expectedBytes: 1000000,
			expectError:   false,
		},
		{
			name:        "garbage",
			chunkSize:   "lots",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validTestConfig()
			cfg.ChunkSize = tt.chunkSize

			err := ValidateConfig(cfg)

			if tt.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedBytes, cfg.ParsedChunkSize)
			}
		})
	}
}
