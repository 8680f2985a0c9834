package spotify

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhowden/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_spotify "github.com/dsmirnov/spotify-grabber/internal/client/spotify/mocks"
	"github.com/dsmirnov/spotify-grabber/internal/constants"
)

// minimalJPEG is the shortest byte prefix http.DetectContentType sniffs as image/jpeg.
var minimalJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

// newTestTagProcessor creates a processor backed by a mock catalog client.
func newTestTagProcessor(t *testing.T) (*TagProcessorImpl, *mock_spotify.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockClient := mock_spotify.NewMockClient(ctrl)

	//nolint:forcetypeassert // The constructor always returns *TagProcessorImpl.
	return NewTagProcessor(mockClient).(*TagProcessorImpl), mockClient
}

// makeEmptyMP3File creates an empty .mp3 file the ID3v2 writer can prepend a tag to.
func makeEmptyMP3File(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "track.mp3")
	require.NoError(t, os.WriteFile(path, nil, constants.DefaultFilePermissions))

	return path
}

// TestTagProcessor_WritesMP3Tags verifies the written ID3v2 frames by reading
// them back with an independent parser.
func TestTagProcessor_WritesMP3Tags(t *testing.T) {
	t.Parallel()

	processor, mockClient := newTestTagProcessor(t)
	trackPath := makeEmptyMP3File(t)

	mockClient.EXPECT().
		DownloadCover(gomock.Any(), "https://images.example/cover.jpg").
		Return(minimalJPEG, nil)

	err := processor.WriteTags(context.Background(), &WriteTagsRequest{
		TrackPath:   trackPath,
		Artist:      "Test Artist",
		Title:       "Test Track",
		Album:       "Test Album",
		AlbumArtist: "Test Album Artist",
		ReleaseYear: "2024",
		DiscNumber:  1,
		TrackNumber: 7,
		SourceID:    testEntityID(1),
		CoverURL:    "https://images.example/cover.jpg",
	})
	require.NoError(t, err)

	file, err := os.Open(trackPath)
	require.NoError(t, err)

	defer file.Close() //nolint:errcheck // Error on close is not critical here.

	metadata, err := tag.ReadFrom(file)
	require.NoError(t, err)

	assert.Equal(t, "Test Artist", metadata.Artist())
	assert.Equal(t, "Test Track", metadata.Title())
	assert.Equal(t, "Test Album", metadata.Album())
	assert.Equal(t, "Test Album Artist", metadata.AlbumArtist())
	assert.Equal(t, 2024, metadata.Year())

	trackNumber, _ := metadata.Track()
	assert.Equal(t, 7, trackNumber)

	discNumber, _ := metadata.Disc()
	assert.Equal(t, 1, discNumber)

	picture := metadata.Picture()
	require.NotNil(t, picture, "Cover art should be embedded as a front cover frame")
	assert.Equal(t, minimalJPEG, picture.Data)
}

// TestTagProcessor_AlbumArtistFallback verifies that the track artist fills
// the album artist slot when none is given.
func TestTagProcessor_AlbumArtistFallback(t *testing.T) {
	t.Parallel()

	processor, _ := newTestTagProcessor(t)
	trackPath := makeEmptyMP3File(t)

	err := processor.WriteTags(context.Background(), &WriteTagsRequest{
		TrackPath: trackPath,
		Artist:    "Solo Artist",
		Title:     "Solo Track",
	})
	require.NoError(t, err)

	file, err := os.Open(trackPath)
	require.NoError(t, err)

	defer file.Close() //nolint:errcheck // Error on close is not critical here.

	metadata, err := tag.ReadFrom(file)
	require.NoError(t, err)
	assert.Equal(t, "Solo Artist", metadata.AlbumArtist())
}

// TestTagProcessor_CoverFailureDoesNotAbort verifies that a failed cover
// download leaves the textual tags intact.
func TestTagProcessor_CoverFailureDoesNotAbort(t *testing.T) {
	t.Parallel()

	processor, mockClient := newTestTagProcessor(t)
	trackPath := makeEmptyMP3File(t)

	mockClient.EXPECT().
		DownloadCover(gomock.Any(), "https://images.example/broken.jpg").
		Return(nil, assert.AnError)

	err := processor.WriteTags(context.Background(), &WriteTagsRequest{
		TrackPath: trackPath,
		Artist:    "Test Artist",
		Title:     "Coverless Track",
		CoverURL:  "https://images.example/broken.jpg",
	})
	require.NoError(t, err)

	file, err := os.Open(trackPath)
	require.NoError(t, err)

	defer file.Close() //nolint:errcheck // Error on close is not critical here.

	metadata, err := tag.ReadFrom(file)
	require.NoError(t, err)
	assert.Equal(t, "Coverless Track", metadata.Title())
	assert.Nil(t, metadata.Picture())
}

// TestTagProcessor_EmptyTrackPath verifies the empty-path guard.
func TestTagProcessor_EmptyTrackPath(t *testing.T) {
	t.Parallel()

	processor, _ := newTestTagProcessor(t)

	err := processor.WriteTags(context.Background(), &WriteTagsRequest{TrackPath: ""})
	require.ErrorIs(t, err, ErrEmptyTrackPath)
}
