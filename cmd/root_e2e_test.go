package cmd_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// testBinaryName is the name of the test binary for E2E tests.
	testBinaryName = "spotify-grabber-test"

	testBaseConfig = `
session_token: "test_token_123"
audio_format: "mp3"
music_dir: "/config/music"
episodes_dir: "/config/podcasts"
anti_ban_pause: "5s"
album_pause: "30s"
chunk_size: "50 kB"
retry_attempts_count: 3
min_retry_pause: "1s"
max_retry_pause: "3s"
search_results_limit: 20
log_level: "info"
`
)

// TestMain builds the binary before running E2E tests.
func TestMain(m *testing.M) {
	// Build the binary for testing.
	//nolint:noctx // TestMain doesn't have access to context, and build is needed before tests run.
	buildCmd := exec.Command("go", "build", "-o", testBinaryName, "../.")
	if err := buildCmd.Run(); err != nil {
		os.Exit(1)
	}

	// Run tests.
	code := m.Run()

	// Cleanup.
	_ = os.Remove(testBinaryName)

	os.Exit(code)
}

// TestE2E_FlagOverrides_Format tests that --format flag overrides config.
func TestE2E_FlagOverrides_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		flags          []string
		expectedFormat string
	}{
		{
			name:           "format flag overrides to flac",
			flags:          []string{"--format", "flac"},
			expectedFormat: "flac",
		},
		{
			name:           "no format flag uses config",
			flags:          []string{},
			expectedFormat: "mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Create temp directory and config file.
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, "test-config.yaml")
			err := os.WriteFile(configPath, []byte(testBaseConfig), 0o644) //nolint:gosec // It's a test file.
			require.NoError(t, err)

			// Run and get config dump.
			config := runWithConfigDump(t, configPath, tt.flags)
			require.NotNil(t, config, "Failed to get config dump")

			// Verify format was set correctly.
			assert.Equal(t, tt.expectedFormat, config.AudioFormat,
				"Format should be %s", tt.expectedFormat)
		})
	}
}

// TestE2E_FlagOverrides_AllFlags tests all flags together.
//
//nolint:funlen // It's a comprehensive E2E test.
func TestE2E_FlagOverrides_AllFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		flags           []string
		expectedFormat  string
		expectedMusic   string
		expectedSkip    bool
		expectedPremium bool
		expectedLimit   int64
	}{
		{
			name:            "no flags - use config",
			flags:           []string{},
			expectedFormat:  "mp3",
			expectedMusic:   "/config/music",
			expectedSkip:    false,
			expectedPremium: false,
			expectedLimit:   20,
		},
		{
			name:            "format only",
			flags:           []string{"--format", "flac"},
			expectedFormat:  "flac",
			expectedMusic:   "/config/music",
			expectedSkip:    false,
			expectedPremium: false,
			expectedLimit:   20,
		},
		{
			name:            "output only",
			flags:           []string{"--output", "/flag/music"},
			expectedFormat:  "mp3",
			expectedMusic:   "/flag/music",
			expectedSkip:    false,
			expectedPremium: false,
			expectedLimit:   20,
		},
		{
			name:            "skip-downloaded only",
			flags:           []string{"--skip-downloaded"},
			expectedFormat:  "mp3",
			expectedMusic:   "/config/music",
			expectedSkip:    true,
			expectedPremium: false,
			expectedLimit:   20,
		},
		{
			name: "all flags",
			flags: []string{
				"--format", "flac",
				"--output", "/all/music",
				"--skip-downloaded",
				"--force-premium",
				"--limit", "5",
			},
			expectedFormat:  "flac",
			expectedMusic:   "/all/music",
			expectedSkip:    true,
			expectedPremium: true,
			expectedLimit:   5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Create temp directory and config file.
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, "test-config.yaml")
			err := os.WriteFile(configPath, []byte(testBaseConfig), 0o644) //nolint:gosec // It's a test file.
			require.NoError(t, err)

			// Run and get config dump.
			config := runWithConfigDump(t, configPath, tt.flags)
			require.NotNil(t, config, "Failed to get config dump")

			// Verify all expected values.
			assert.Equal(t, tt.expectedFormat, config.AudioFormat)
			assert.Equal(t, tt.expectedMusic, config.MusicDir)
			assert.Equal(t, tt.expectedSkip, config.SkipPreviouslyDownloaded)
			assert.Equal(t, tt.expectedPremium, config.ForcePremium)
			assert.Equal(t, tt.expectedLimit, config.SearchResultsLimit)
		})
	}
}

// TestE2E_FlagOverrides_InvalidValues tests that invalid flag values are rejected.
func TestE2E_FlagOverrides_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		flags            []string
		expectedErrorMsg string
	}{
		{
			name:             "invalid format",
			flags:            []string{"--format", "wav"},
			expectedErrorMsg: "invalid audio_format",
		},
		{
			name:             "invalid anti-ban pause",
			flags:            []string{"--anti-ban-pause", "fast"},
			expectedErrorMsg: "failed to parse anti-ban pause",
		},
		{
			name:             "invalid search limit",
			flags:            []string{"--limit", "0"},
			expectedErrorMsg: "search results limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Create temp directory and config file.
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, "test-config.yaml")
			err := os.WriteFile(configPath, []byte(testBaseConfig), 0o644) //nolint:gosec // It's a test file.
			require.NoError(t, err)

			// Prepare arguments.
			args := []string{
				"--config", configPath,
				"https://open.spotify.com/track/4cOdK2wGLETKBW3PvgPWqT",
			}
			args = append(args, tt.flags...)

			// Run the binary.
			//nolint:gosec,noctx // Test binary name is a constant, not user input. No context available in test.
			cmd := exec.Command("./"+testBinaryName, args...)
			output, err := cmd.CombinedOutput()

			// Should fail with error.
			require.Error(t, err)

			outputStr := string(output)

			// Verify error message.
			assert.Contains(t, strings.ToLower(outputStr), strings.ToLower(tt.expectedErrorMsg),
				"Expected error message about '%s' but got: %s", tt.expectedErrorMsg, outputStr)
		})
	}
}

// ConfigDump represents the config dump structure.
type ConfigDump struct {
	// AudioFormat is the output audio container.
	AudioFormat string `json:"audio_format"`
	// MusicDir is the root directory for downloaded music.
	MusicDir string `json:"music_dir"`
	// EpisodesDir is the root directory for downloaded podcast episodes.
	EpisodesDir string `json:"episodes_dir"`
	// SkipPreviouslyDownloaded reports the archive skip setting.
	SkipPreviouslyDownloaded bool `json:"skip_previously_downloaded"`
	// SkipExistingFiles reports the on-disk skip setting.
	SkipExistingFiles bool `json:"skip_existing_files"`
	// ForcePremium reports the quality tier override.
	ForcePremium bool `json:"force_premium"`
	// SearchResultsLimit is the number of search results per category.
	SearchResultsLimit int64 `json:"search_results_limit"`
}

// runWithConfigDump runs the app with config dump enabled and parses the output.
func runWithConfigDump(t *testing.T, configPath string, flags []string) *ConfigDump {
	t.Helper()

	args := []string{
		"--config", configPath,
		"https://open.spotify.com/track/4cOdK2wGLETKBW3PvgPWqT",
	}
	args = append(args, flags...)

	//nolint:gosec,noctx // Test binary name is a constant, not user input. No context available in test.
	cmd := exec.Command("./"+testBinaryName, args...)

	cmd.Env = append(os.Environ(), "SPOTIFY_GRABBER_DUMP_CONFIG=1")

	output, err := cmd.Output()
	if err != nil {
		t.Logf("Command failed: %v, output: %s", err, string(output))
		return nil
	}

	// Parse JSON config dump from output.
	var config ConfigDump
	if err := json.Unmarshal(output, &config); err != nil {
		t.Logf("Failed to parse config: %v, output: %s", err, string(output))
		return nil
	}

	return &config
}
