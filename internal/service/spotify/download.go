package spotify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/dsmirnov/spotify-grabber/internal/client/spotify"
	"github.com/dsmirnov/spotify-grabber/internal/logger"
)

// maxConsecutiveEmptyReads is how many zero-byte reads in a row the stream
// fetch tolerates before giving up on the connection with what it has.
const maxConsecutiveEmptyReads = 30

// downloadProgress is one progress snapshot of an in-flight stream fetch.
type downloadProgress struct {
	// total is the full stream length in bytes as reported by the server.
	total int64
	// downloaded is the number of bytes fetched so far.
	downloaded int64
}

// fetchStream reads the whole audio stream into memory in fixed-size chunks.
// A background goroutine does the reading and publishes a progress snapshot
// after every chunk, the foreground drives the progress bar and treats the
// channel closing as completion.
func (s *ServiceImpl) fetchStream(ctx context.Context, stream *spotify.StreamReader) ([]byte, error) {
	var (
		data       []byte
		readErr    error
		progressCh = make(chan downloadProgress)
	)

	go func() {
		defer close(progressCh)

		data, readErr = s.readStreamChunks(ctx, stream, progressCh)
	}()

	// Progress bars are suppressed above info level to keep logs machine-readable.
	var bar *progressbar.ProgressBar
	if logger.Level() <= zap.InfoLevel {
		bar = progressbar.DefaultBytes(stream.TotalBytes, "Downloading")
	}

	for progress := range progressCh {
		if bar != nil {
			_ = bar.Set64(progress.downloaded)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	if readErr != nil {
		return nil, readErr
	}

	if len(data) == 0 {
		return nil, ErrEmptyStream
	}

	if stream.TotalBytes > 0 && int64(len(data)) != stream.TotalBytes {
		logger.Warnf(ctx, "Stream ended early: got %d of %d bytes", len(data), stream.TotalBytes)
	}

	return data, nil
}

// readStreamChunks reads chunk-sized slices off the stream until EOF,
// publishing a progress snapshot after every chunk.
func (s *ServiceImpl) readStreamChunks(
	ctx context.Context,
	stream *spotify.StreamReader,
	progressCh chan<- downloadProgress,
) ([]byte, error) {
	var buffer bytes.Buffer
	if stream.TotalBytes > 0 {
		buffer.Grow(int(stream.TotalBytes))
	}

	var (
		chunk                = make([]byte, s.cfg.ParsedChunkSize)
		consecutiveEmptyRead = 0
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := stream.Body.Read(chunk)
		if n > 0 {
			consecutiveEmptyRead = 0

			buffer.Write(chunk[:n])

			progressCh <- downloadProgress{
				total:      stream.TotalBytes,
				downloaded: int64(buffer.Len()),
			}
		}

		if errors.Is(err, io.EOF) {
			return buffer.Bytes(), nil
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read stream: %w", err)
		}

		if n == 0 {
			consecutiveEmptyRead++

			// Some mirrors stall without closing the connection.
			// Break out with what we have instead of hanging forever.
			if consecutiveEmptyRead >= maxConsecutiveEmptyReads {
				logger.Warnf(ctx, "Stream stalled after %d empty reads, finishing with partial data",
					consecutiveEmptyRead)

				return buffer.Bytes(), nil
			}
		}
	}
}
