package spotify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/dsmirnov/spotify-grabber/internal/client/spotify"
	mock_spotify "github.com/dsmirnov/spotify-grabber/internal/client/spotify/mocks"
	"github.com/dsmirnov/spotify-grabber/internal/config"
	"github.com/dsmirnov/spotify-grabber/internal/constants"
	"github.com/dsmirnov/spotify-grabber/internal/logger"
)

// testServiceSetup encapsulates common test dependencies and configuration.
type testServiceSetup struct {
	ctrl         *gomock.Controller
	mockClient   *mock_spotify.MockClient
	service      *ServiceImpl
	config       *config.Config
	transcoder   *fakeTranscoder
	tagProcessor *fakeTagProcessor
	archive      Archive
	tempDir      string
}

// newTestServiceSetup creates a standard test setup with optional config overrides.
// The input string feeds interactive selections.
func newTestServiceSetup(t *testing.T, input string, configOverrides ...func(*config.Config)) *testServiceSetup {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockClient := mock_spotify.NewMockClient(ctrl)
	tempDir := t.TempDir()

	cfg := &config.Config{
		AudioFormat:              config.AudioFormatMP3,
		ConfigDir:                tempDir,
		MusicDir:                 filepath.Join(tempDir, "music"),
		EpisodesDir:              filepath.Join(tempDir, "podcasts"),
		ArchiveFilename:          config.DefaultArchiveFilename,
		SkipPreviouslyDownloaded: true,
		SkipExistingFiles:        true,
		SearchResultsLimit:       5,
		ParsedAntiBanPause:       time.Millisecond,
		ParsedAlbumPause:         time.Millisecond,
		ParsedChunkSize:          1024,
		ParsedLogLevel:           logger.Level(),
	}

	// Apply overrides.
	for _, override := range configOverrides {
		override(cfg)
	}

	transcoder := &fakeTranscoder{}
	tagProcessor := &fakeTagProcessor{}
	archive := NewArchive(context.Background(), filepath.Join(cfg.ConfigDir, cfg.ArchiveFilename))

	//nolint:forcetypeassert // The constructor always returns *ServiceImpl.
	service := NewServiceWithInput(
		cfg,
		mockClient,
		NewURLResolver(),
		NewFilenameBuilder(cfg),
		tagProcessor,
		transcoder,
		archive,
		strings.NewReader(input),
	).(*ServiceImpl)

	return &testServiceSetup{
		ctrl:         ctrl,
		mockClient:   mockClient,
		service:      service,
		config:       cfg,
		transcoder:   transcoder,
		tagProcessor: tagProcessor,
		archive:      archive,
		tempDir:      tempDir,
	}
}

// expectLogin configures the login and profile expectations of the one-time session setup.
func (s *testServiceSetup) expectLogin(product string) {
	s.mockClient.EXPECT().Login(gomock.Any()).Return(nil)
	s.mockClient.EXPECT().
		GetUserProfile(gomock.Any()).
		Return(&spotify.User{ID: "user1", DisplayName: "Test User", Product: product}, nil)
}

// expectOpenStream configures a stream expectation serving the given audio bytes.
func (s *testServiceSetup) expectOpenStream(trackID, quality string, audioData []byte) {
	s.mockClient.EXPECT().
		OpenStream(gomock.Any(), trackID, quality).
		Return(&spotify.StreamReader{
			Body:       io.NopCloser(bytes.NewReader(audioData)),
			TotalBytes: int64(len(audioData)),
		}, nil)
}

// stats returns a copy of the current download statistics.
func (s *testServiceSetup) stats() DownloadStatistics {
	s.service.statsMutex.Lock()
	defer s.service.statsMutex.Unlock()

	return *s.service.stats
}

// fakeTranscoder implements Transcoder by writing the raw bytes to the
// destination unchanged, recording every call.
type fakeTranscoder struct {
	mutex   sync.Mutex
	premium bool
	calls   int
	err     error
}

func (f *fakeTranscoder) Transcode(_ context.Context, raw []byte, outputPath string) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.calls++

	if f.err != nil {
		return f.err
	}

	return os.WriteFile(outputPath, raw, constants.DefaultFilePermissions)
}

func (f *fakeTranscoder) SetPremiumTier(enabled bool) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.premium = enabled
}

func (f *fakeTranscoder) isPremium() bool {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.premium
}

// fakeTagProcessor implements TagProcessor by recording every request.
type fakeTagProcessor struct {
	mutex    sync.Mutex
	requests []*WriteTagsRequest
	err      error
}

func (f *fakeTagProcessor) WriteTags(_ context.Context, req *WriteTagsRequest) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.err != nil {
		return f.err
	}

	f.requests = append(f.requests, req)

	return nil
}

func (f *fakeTagProcessor) writtenRequests() []*WriteTagsRequest {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return append([]*WriteTagsRequest(nil), f.requests...)
}

// testEntityID builds a valid 22-character identifier from a small number.
func testEntityID(n int) string {
	return fmt.Sprintf("%022d", n)
}

// makeTestTrack creates track metadata with a populated album block.
func makeTestTrack(id, name string, trackNumber int64) *spotify.Track {
	return &spotify.Track{
		ID:          id,
		Name:        name,
		DurationMS:  180_000,
		DiscNumber:  1,
		TrackNumber: trackNumber,
		Artists:     []*spotify.Artist{{ID: testEntityID(90), Name: "Test Artist"}},
		Album: &spotify.Album{
			ID:          testEntityID(91),
			Name:        "Test Album",
			ReleaseDate: "2024-03-15",
			TotalTracks: 10,
			Artists:     []*spotify.Artist{{ID: testEntityID(90), Name: "Test Artist"}},
			Images:      []*spotify.Image{{URL: "https://images.example/cover.jpg", Width: 640, Height: 640}},
		},
	}
}

// makeFakeAudioData creates deterministic fake audio data for testing.
func makeFakeAudioData(sizeKB int) []byte {
	fakeData := make([]byte, sizeKB*1024)
	for i := range fakeData {
		fakeData[i] = byte(i % 256)
	}

	return fakeData
}

// boolPtr returns a pointer to the given bool.
func boolPtr(b bool) *bool {
	return &b
}

// findFilesWithExtension finds all files with the given extension under dir.
func findFilesWithExtension(t *testing.T, dir, ext string) []string {
	t.Helper()

	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}

			return err
		}

		if !info.IsDir() && filepath.Ext(path) == ext {
			files = append(files, path)
		}

		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("Failed to walk directory: %v", err)
	}

	return files
}
