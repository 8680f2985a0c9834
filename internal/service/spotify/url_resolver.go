package spotify

//go:generate $MOCKGEN -source=url_resolver.go -destination=mocks/url_resolver_mock.go

import (
	"context"
	"regexp"
	"strings"

	"github.com/dsmirnov/spotify-grabber/internal/logger"
	"github.com/dsmirnov/spotify-grabber/internal/utils"
)

// URLResolver defines the interface for resolving inputs into downloadable items.
type URLResolver interface {
	// Resolve parses a single input into an entity kind and identifier.
	// ok is false when the input is not a recognized link or URI,
	// in which case callers treat the input as a search query.
	Resolve(input string) (kind EntityKind, id string, ok bool)
	// ExtractDownloadItems processes a list of inputs and categorizes them into
	// tracks, standalone items, artists, and free-text search queries.
	ExtractDownloadItems(ctx context.Context, inputs []string) (*ExtractDownloadItemsResponse, error)
	// DeduplicateDownloadItems removes duplicate DownloadItems based on their kind and ItemID.
	DeduplicateDownloadItems(items []*DownloadItem) []*DownloadItem
}

// ExtractDownloadItemsResponse represents the result of processing inputs.
type ExtractDownloadItemsResponse struct {
	// Tracks contains individual track download items.
	Tracks []*DownloadItem
	// StandaloneItems contains album, playlist, show, and episode download items.
	StandaloneItems []*DownloadItem
	// Artists contains artist discography download items.
	Artists []*DownloadItem
	// SearchQueries contains inputs that resolved to no known entity.
	SearchQueries []string
}

// URLResolverImpl implements the URLResolver interface.
type URLResolverImpl struct{}

// defaultTextExtension is the file extension for bulk input files of links.
const defaultTextExtension = ".txt"

// Entity identifiers are exactly 22 base62 characters.
//
//nolint:gochecknoglobals // Immutable compiled patterns shared by every resolver instance.
var (
	uriPattern = regexp.MustCompile(
		`^spotify:(?P<Kind>track|album|playlist|episode|show|artist):(?P<ID>[0-9A-Za-z]{22})$`)
	linkPattern = regexp.MustCompile(
		`^(?:https?://)?open\.spotify\.com/(?:intl-[a-z]{2,4}(?:-[A-Za-z]{2})?/)?` +
			`(?P<Kind>track|album|playlist|episode|show|artist)/(?P<ID>[0-9A-Za-z]{22})(?:\?.*)?$`)
)

//nolint:gochecknoglobals // Immutable lookup table from pattern capture to entity kind.
var entityKindsByNames = map[string]EntityKind{
	"track":    EntityKindTrack,
	"album":    EntityKindAlbum,
	"playlist": EntityKindPlaylist,
	"episode":  EntityKindEpisode,
	"show":     EntityKindShow,
	"artist":   EntityKindArtist,
}

// NewURLResolver creates and returns a new instance of URLResolverImpl.
func NewURLResolver() URLResolver {
	return &URLResolverImpl{}
}

// Resolve parses a single input into an entity kind and identifier.
func (ur *URLResolverImpl) Resolve(input string) (EntityKind, string, bool) {
	input = strings.TrimSpace(input)

	for _, pattern := range []*regexp.Regexp{uriPattern, linkPattern} {
		id := utils.ExtractNamedGroup(pattern, "ID", input)
		if id == "" {
			continue
		}

		kind, ok := entityKindsByNames[utils.ExtractNamedGroup(pattern, "Kind", input)]
		if !ok {
			continue
		}

		return kind, id, true
	}

	return EntityKindUnknown, "", false
}

// ExtractDownloadItems processes a list of inputs and categorizes them.
func (ur *URLResolverImpl) ExtractDownloadItems(
	ctx context.Context,
	inputs []string,
) (*ExtractDownloadItemsResponse, error) {
	// Flatten bulk .txt files into their contained links first.
	inputs, err := ur.processAndFlattenInputs(inputs)
	if err != nil {
		return nil, err
	}

	var (
		tracks          []*DownloadItem
		standaloneItems []*DownloadItem
		artists         []*DownloadItem
		searchQueries   []string
	)

	for _, input := range inputs {
		kind, itemID, ok := ur.Resolve(input)
		if !ok {
			logger.Debugf(ctx, "Input '%s' is not a catalog link, treating as search query", input)
			searchQueries = append(searchQueries, input)

			continue
		}

		item := &DownloadItem{Kind: kind, Input: input, ItemID: itemID}

		//nolint:exhaustive // Unknown inputs never reach this switch, Resolve filters them out.
		switch kind {
		case EntityKindTrack:
			tracks = append(tracks, item)
		case EntityKindAlbum, EntityKindPlaylist, EntityKindShow, EntityKindEpisode:
			standaloneItems = append(standaloneItems, item)
		case EntityKindArtist:
			artists = append(artists, item)
		}
	}

	return &ExtractDownloadItemsResponse{
		Tracks:          ur.DeduplicateDownloadItems(tracks),
		StandaloneItems: ur.DeduplicateDownloadItems(standaloneItems),
		Artists:         ur.DeduplicateDownloadItems(artists),
		SearchQueries:   searchQueries,
	}, nil
}

// DeduplicateDownloadItems removes duplicate DownloadItems based on their kind and ItemID.
func (ur *URLResolverImpl) DeduplicateDownloadItems(items []*DownloadItem) []*DownloadItem {
	uniqueItems := make(map[ShortDownloadItem]struct{}, len(items))
	result := make([]*DownloadItem, 0, len(items))

	for _, item := range items {
		key := item.GetShortVersion()
		if _, ok := uniqueItems[key]; ok {
			continue
		}

		uniqueItems[key] = struct{}{}

		result = append(result, item)
	}

	return result
}

func (ur *URLResolverImpl) processAndFlattenInputs(inputs []string) ([]string, error) {
	var (
		processedSet       = make(map[string]struct{})
		processedTextFiles = make(map[string]struct{})
		processedInputs    []string
	)

	for _, input := range inputs {
		// Anything that is not a bulk file goes into the list directly.
		if !strings.HasSuffix(input, defaultTextExtension) {
			if _, ok := processedSet[input]; ok {
				continue
			}

			processedSet[input] = struct{}{}

			processedInputs = append(processedInputs, input)

			continue
		}

		if _, exists := processedTextFiles[input]; exists {
			continue
		}

		lines, err := utils.ReadUniqueLinesFromFile(input)
		if err != nil {
			return nil, err
		}

		for _, line := range lines {
			if _, ok := processedSet[line]; ok {
				continue
			}

			processedSet[line] = struct{}{}

			processedInputs = append(processedInputs, line)
		}

		processedTextFiles[input] = struct{}{}
	}

	return processedInputs, nil
}
