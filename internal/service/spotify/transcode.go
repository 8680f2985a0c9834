package spotify

//go:generate $MOCKGEN -source=transcode.go -destination=mocks/transcode_mock.go

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dsmirnov/spotify-grabber/internal/config"
	"github.com/dsmirnov/spotify-grabber/internal/logger"
)

const (
	// ffmpegBinary is the transcoder executable looked up on PATH.
	ffmpegBinary = "ffmpeg"

	// premiumBitrate is the lossy output bitrate for premium accounts.
	premiumBitrate = "320k"
	// standardBitrate is the lossy output bitrate for free accounts.
	standardBitrate = "160k"
)

// Transcoder converts the catalog-native compressed audio into the configured container.
type Transcoder interface {
	// Transcode decodes the raw audio buffer and writes it to outputPath
	// in the configured container. Decode failures propagate to the caller.
	Transcode(ctx context.Context, raw []byte, outputPath string) error
	// SetPremiumTier selects the premium bitrate tier for lossy output.
	SetPremiumTier(enabled bool)
}

// TranscoderImpl runs an ffmpeg subprocess fed over stdin,
// writing to a temporary file that is renamed into place on success.
type TranscoderImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// premium selects the 320k bitrate tier for lossy output.
	premium atomic.Bool
}

// NewTranscoder creates a new Transcoder instance.
func NewTranscoder(cfg *config.Config) Transcoder {
	return &TranscoderImpl{cfg: cfg}
}

// SetPremiumTier selects the premium bitrate tier for lossy output.
func (t *TranscoderImpl) SetPremiumTier(enabled bool) {
	t.premium.Store(enabled)
}

// Transcode decodes the raw audio buffer and writes it to outputPath.
func (t *TranscoderImpl) Transcode(ctx context.Context, raw []byte, outputPath string) error {
	// Write to a UUID-named sibling first so a killed ffmpeg never
	// leaves a half-written file under the final name.
	tempPath := filepath.Join(
		filepath.Dir(outputPath),
		uuid.New().String()+filepath.Ext(outputPath),
	)

	command := exec.CommandContext(ctx, ffmpegBinary, t.buildArguments(tempPath)...)
	command.Stdin = bytes.NewReader(raw)

	var stderr bytes.Buffer
	command.Stderr = &stderr

	logger.Debugf(ctx, "Running: %s %s", ffmpegBinary, strings.Join(command.Args[1:], " "))

	if err := command.Run(); err != nil {
		// Best-effort cleanup of whatever ffmpeg managed to write.
		_ = os.Remove(tempPath)

		message := strings.TrimSpace(stderr.String())
		if message != "" {
			return fmt.Errorf("%s failed: %w: %s", ffmpegBinary, err, message)
		}

		return fmt.Errorf("%s failed: %w", ffmpegBinary, err)
	}

	if err := os.Rename(tempPath, outputPath); err != nil {
		_ = os.Remove(tempPath)

		return fmt.Errorf("failed to finalize transcoded file: %w", err)
	}

	return nil
}

// buildArguments assembles the ffmpeg command line for the configured container.
func (t *TranscoderImpl) buildArguments(outputPath string) []string {
	arguments := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", "pipe:0",
	}

	if t.cfg.AudioFormat == config.AudioFormatMP3 {
		bitrate := standardBitrate
		if t.premium.Load() {
			bitrate = premiumBitrate
		}

		arguments = append(arguments, "-codec:a", "libmp3lame", "-b:a", bitrate)
	} else {
		arguments = append(arguments, "-codec:a", config.AudioFormatFLAC)
	}

	return append(arguments, outputPath)
}
