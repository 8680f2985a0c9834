package spotify

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmirnov/spotify-grabber/internal/constants"
)

// TestNewURLResolver tests the NewURLResolver function.
func TestNewURLResolver(t *testing.T) {
	t.Parallel()

	resolver := NewURLResolver()
	assert.NotNil(t, resolver)
	assert.Implements(t, (*URLResolver)(nil), resolver)
}

// TestURLResolverImpl_Resolve tests link and URI parsing for every entity kind.
func TestURLResolverImpl_Resolve(t *testing.T) {
	t.Parallel()

	validID := "4cOdK2wGLETKBW3PvgPWqT"

	tests := []struct {
		name         string
		input        string
		expectedKind EntityKind
		expectedID   string
		expectedOK   bool
	}{
		{
			name:         "track URI",
			input:        "spotify:track:" + validID,
			expectedKind: EntityKindTrack,
			expectedID:   validID,
			expectedOK:   true,
		},
		{
			name:         "album URI",
			input:        "spotify:album:" + validID,
			expectedKind: EntityKindAlbum,
			expectedID:   validID,
			expectedOK:   true,
		},
		{
			name:         "playlist URI",
			input:        "spotify:playlist:" + validID,
			expectedKind: EntityKindPlaylist,
			expectedID:   validID,
			expectedOK:   true,
		},
		{
			name:         "episode URI",
			input:        "spotify:episode:" + validID,
			expectedKind: EntityKindEpisode,
			expectedID:   validID,
			expectedOK:   true,
		},
		{
			name:         "show URI",
			input:        "spotify:show:" + validID,
			expectedKind: EntityKindShow,
			expectedID:   validID,
			expectedOK:   true,
		},
		{
			name:         "artist URI",
			input:        "spotify:artist:" + validID,
			expectedKind: EntityKindArtist,
			expectedID:   validID,
			expectedOK:   true,
		},
		{
			name:         "track link",
			input:        "https://open.spotify.com/track/" + validID,
			expectedKind: EntityKindTrack,
			expectedID:   validID,
			expectedOK:   true,
		},
		{
			name:         "link without scheme",
			input:        "open.spotify.com/album/" + validID,
			expectedKind: EntityKindAlbum,
			expectedID:   validID,
			expectedOK:   true,
		},
		{
			name:         "link with query string",
			input:        "https://open.spotify.com/track/" + validID + "?si=abc123&utm_source=copy",
			expectedKind: EntityKindTrack,
			expectedID:   validID,
			expectedOK:   true,
		},
		{
			name:         "localized link",
			input:        "https://open.spotify.com/intl-pt/track/" + validID,
			expectedKind: EntityKindTrack,
			expectedID:   validID,
			expectedOK:   true,
		},
		{
			name:         "link with surrounding whitespace",
			input:        "  https://open.spotify.com/playlist/" + validID + "  ",
			expectedKind: EntityKindPlaylist,
			expectedID:   validID,
			expectedOK:   true,
		},
		{
			name:       "identifier too short",
			input:      "spotify:track:4cOdK2wGLETKBW3PvgPWq",
			expectedOK: false,
		},
		{
			name:       "identifier with invalid characters",
			input:      "spotify:track:4cOdK2wGLETKBW3PvgPW-T",
			expectedOK: false,
		},
		{
			name:       "unsupported entity",
			input:      "spotify:user:" + validID,
			expectedOK: false,
		},
		{
			name:       "wrong host",
			input:      "https://example.com/track/" + validID,
			expectedOK: false,
		},
		{
			name:       "free text",
			input:      "some artist - some song",
			expectedOK: false,
		},
		{
			name:       "empty input",
			input:      "",
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resolver := NewURLResolver()

			kind, id, ok := resolver.Resolve(tt.input)
			assert.Equal(t, tt.expectedOK, ok)

			if tt.expectedOK {
				assert.Equal(t, tt.expectedKind, kind)
				assert.Equal(t, tt.expectedID, id)
			}
		})
	}
}

// TestURLResolverImpl_ExtractDownloadItems tests input categorization.
func TestURLResolverImpl_ExtractDownloadItems(t *testing.T) {
	t.Parallel()

	resolver := NewURLResolver()
	ctx := context.Background()

	inputs := []string{
		"spotify:track:" + testEntityID(1),
		"https://open.spotify.com/album/" + testEntityID(2),
		"spotify:playlist:" + testEntityID(3),
		"spotify:show:" + testEntityID(4),
		"spotify:episode:" + testEntityID(5),
		"spotify:artist:" + testEntityID(6),
		"some search query",
		// Duplicate of the first input in link form.
		"https://open.spotify.com/track/" + testEntityID(1),
	}

	result, err := resolver.ExtractDownloadItems(ctx, inputs)
	require.NoError(t, err)

	assert.Len(t, result.Tracks, 1, "Duplicate track inputs should collapse into one item")
	assert.Len(t, result.StandaloneItems, 4)
	assert.Len(t, result.Artists, 1)
	assert.Equal(t, []string{"some search query"}, result.SearchQueries)
}

// TestURLResolverImpl_ExtractDownloadItems_BulkFile tests flattening of .txt link files.
func TestURLResolverImpl_ExtractDownloadItems_BulkFile(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	bulkFile := filepath.Join(tempDir, "links.txt")

	content := "spotify:track:" + testEntityID(1) + "\n" +
		"\n" +
		"https://open.spotify.com/album/" + testEntityID(2) + "\n" +
		"spotify:track:" + testEntityID(1) + "\n"
	require.NoError(t, os.WriteFile(bulkFile, []byte(content), constants.DefaultFilePermissions))

	resolver := NewURLResolver()

	result, err := resolver.ExtractDownloadItems(context.Background(), []string{bulkFile})
	require.NoError(t, err)

	assert.Len(t, result.Tracks, 1)
	assert.Len(t, result.StandaloneItems, 1)
	assert.Empty(t, result.SearchQueries)
}

// TestURLResolverImpl_ExtractDownloadItems_MissingBulkFile tests that a missing
// .txt file fails the whole extraction.
func TestURLResolverImpl_ExtractDownloadItems_MissingBulkFile(t *testing.T) {
	t.Parallel()

	resolver := NewURLResolver()

	_, err := resolver.ExtractDownloadItems(context.Background(),
		[]string{filepath.Join(t.TempDir(), "missing.txt")})
	require.Error(t, err)
}

// TestURLResolverImpl_DeduplicateDownloadItems tests the DeduplicateDownloadItems method.
func TestURLResolverImpl_DeduplicateDownloadItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		items    []*DownloadItem
		expected []*DownloadItem
	}{
		{
			name:     "empty items",
			items:    []*DownloadItem{},
			expected: []*DownloadItem{},
		},
		{
			name: "no duplicates",
			items: []*DownloadItem{
				{Kind: EntityKindTrack, ItemID: "1"},
				{Kind: EntityKindAlbum, ItemID: "2"},
			},
			expected: []*DownloadItem{
				{Kind: EntityKindTrack, ItemID: "1"},
				{Kind: EntityKindAlbum, ItemID: "2"},
			},
		},
		{
			name: "with duplicates",
			items: []*DownloadItem{
				{Kind: EntityKindTrack, ItemID: "1"},
				{Kind: EntityKindTrack, ItemID: "1"},
				{Kind: EntityKindAlbum, ItemID: "1"},
			},
			expected: []*DownloadItem{
				{Kind: EntityKindTrack, ItemID: "1"},
				{Kind: EntityKindAlbum, ItemID: "1"},
			},
		},
		{
			name: "same ID different kind is not a duplicate",
			items: []*DownloadItem{
				{Kind: EntityKindAlbum, ItemID: "7"},
				{Kind: EntityKindPlaylist, ItemID: "7"},
			},
			expected: []*DownloadItem{
				{Kind: EntityKindAlbum, ItemID: "7"},
				{Kind: EntityKindPlaylist, ItemID: "7"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resolver := NewURLResolver()

			result := resolver.DeduplicateDownloadItems(tt.items)
			assert.Equal(t, tt.expected, result)
		})
	}
}
