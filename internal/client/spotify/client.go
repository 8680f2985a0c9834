package spotify

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dsmirnov/spotify-grabber/internal/config"
	"github.com/dsmirnov/spotify-grabber/internal/logger"
	http_transport "github.com/dsmirnov/spotify-grabber/internal/transport/http"
	"github.com/dsmirnov/spotify-grabber/internal/utils"
)

// Client defines the interface for interacting with the catalog API.
type Client interface {
	// Login exchanges the stored session cookie for a fresh access token.
	Login(ctx context.Context) error
	// GetUserProfile retrieves the authenticated user's profile.
	GetUserProfile(ctx context.Context) (*User, error)
	// GetTrack retrieves metadata for a single track.
	GetTrack(ctx context.Context, trackID string) (*Track, error)
	// GetAlbum retrieves metadata for a single album.
	GetAlbum(ctx context.Context, albumID string) (*Album, error)
	// GetAlbumTracks retrieves all tracks of an album across every page.
	GetAlbumTracks(ctx context.Context, albumID string) ([]*Track, error)
	// GetPlaylist retrieves metadata for a single playlist.
	GetPlaylist(ctx context.Context, playlistID string) (*Playlist, error)
	// GetPlaylistItems retrieves all entries of a playlist across every page.
	GetPlaylistItems(ctx context.Context, playlistID string) ([]*PlaylistItem, error)
	// GetArtist retrieves metadata for a single artist.
	GetArtist(ctx context.Context, artistID string) (*Artist, error)
	// GetArtistAlbums retrieves all albums of an artist across every page.
	GetArtistAlbums(ctx context.Context, artistID string) ([]*Album, error)
	// GetEpisode retrieves metadata for a single podcast episode.
	GetEpisode(ctx context.Context, episodeID string) (*Episode, error)
	// GetShow retrieves metadata for a single podcast show.
	GetShow(ctx context.Context, showID string) (*Show, error)
	// GetShowEpisodes retrieves all episodes of a show across every page.
	GetShowEpisodes(ctx context.Context, showID string) ([]*Episode, error)
	// GetSavedTracks retrieves the user's saved ("liked") tracks across every page.
	GetSavedTracks(ctx context.Context) ([]*Track, error)
	// GetUserPlaylists retrieves the user's playlists across every page.
	GetUserPlaylists(ctx context.Context) ([]*Playlist, error)
	// Search performs a catalog search across tracks, albums, playlists, and artists.
	Search(ctx context.Context, query string, limit int64) (*SearchResponse, error)
	// OpenStream resolves and opens the audio stream of a track at the given quality.
	OpenStream(ctx context.Context, trackID, quality string) (*StreamReader, error)
	// DownloadFromURL downloads content from the specified URL.
	DownloadFromURL(ctx context.Context, url string) (io.ReadCloser, error)
	// DownloadCover downloads cover art, memoizing the bytes per URL.
	DownloadCover(ctx context.Context, coverURL string) ([]byte, error)
}

// ClientImpl implements the Client interface for interacting with the catalog API.
type ClientImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// baseURL is the base URL for API requests.
	baseURL string
	// webURL is the base URL of the web player, used for the token exchange.
	webURL string
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
	// tokenMutex guards accessToken.
	tokenMutex sync.Mutex
	// accessToken is the current short-lived bearer token, empty before the first login.
	accessToken string
	// coversCache caches downloaded cover art bytes keyed by URL.
	// Track and album metadata is deliberately never cached: every call
	// reflects the live catalog state.
	coversCache *lru.Cache[string, []byte]
}

// NewClient creates and returns a new instance of ClientImpl.
func NewClient(cfg *config.Config) (Client, error) {
	// The cookie jar carries the session cookie for the token exchange endpoint.
	cookies, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	webURL, err := url.Parse(webBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid web player URL: %w", err)
	}

	cookie := &http.Cookie{
		Name:  sessionCookieName,
		Value: cfg.SessionToken,
	}
	cookies.SetCookies(webURL, []*http.Cookie{cookie})

	// Initialize the HTTP client with custom transport and timeout.
	httpClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewLogTransport(http.DefaultTransport, 0),
			utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent)),
		Jar:     cookies,
		Timeout: http_transport.DefaultTimeout,
	}

	coversCache, err := lru.New[string, []byte](coversCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create covers cache: %w", err)
	}

	client := &ClientImpl{
		cfg:         cfg,
		baseURL:     cfg.APIBaseURL,
		webURL:      webBaseURL,
		httpClient:  httpClient,
		coversCache: coversCache,
	}

	return client, nil
}

// Login exchanges the stored session cookie for a fresh access token.
func (c *ClientImpl) Login(ctx context.Context) error {
	_, err := c.refreshAccessToken(ctx)

	return err
}

// GetUserProfile retrieves the authenticated user's profile.
func (c *ClientImpl) GetUserProfile(ctx context.Context) (*User, error) {
	result, err := fetchJSON[User](c, ctx, apiUserProfileURI)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}

// GetTrack retrieves metadata for a single track.
func (c *ClientImpl) GetTrack(ctx context.Context, trackID string) (*Track, error) {
	query := url.Values{}
	query.Set("market", marketFromToken)

	result, err := fetchJSONWithQuery[Track](c, ctx, apiTracksURI+"/"+trackID, query)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}

// GetAlbum retrieves metadata for a single album.
func (c *ClientImpl) GetAlbum(ctx context.Context, albumID string) (*Album, error) {
	result, err := fetchJSON[Album](c, ctx, apiAlbumsURI+"/"+albumID)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}

// GetAlbumTracks retrieves all tracks of an album across every page.
func (c *ClientImpl) GetAlbumTracks(ctx context.Context, albumID string) ([]*Track, error) {
	query := url.Values{}
	query.Set("market", marketFromToken)

	return fetchAllPages[*Track](c, ctx, apiAlbumsURI+"/"+albumID+"/tracks", query)
}

// GetPlaylist retrieves metadata for a single playlist.
func (c *ClientImpl) GetPlaylist(ctx context.Context, playlistID string) (*Playlist, error) {
	result, err := fetchJSON[Playlist](c, ctx, apiPlaylistsURI+"/"+playlistID)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}

// GetPlaylistItems retrieves all entries of a playlist across every page.
func (c *ClientImpl) GetPlaylistItems(ctx context.Context, playlistID string) ([]*PlaylistItem, error) {
	query := url.Values{}
	query.Set("market", marketFromToken)

	return fetchAllPages[*PlaylistItem](c, ctx, apiPlaylistsURI+"/"+playlistID+"/tracks", query)
}

// GetArtist retrieves metadata for a single artist.
func (c *ClientImpl) GetArtist(ctx context.Context, artistID string) (*Artist, error) {
	result, err := fetchJSON[Artist](c, ctx, apiArtistsURI+"/"+artistID)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}

// GetArtistAlbums retrieves all albums of an artist across every page.
// Compilations and appearances are excluded, matching the web player's discography view.
func (c *ClientImpl) GetArtistAlbums(ctx context.Context, artistID string) ([]*Album, error) {
	query := url.Values{}
	query.Set("include_groups", "album,single")

	return fetchAllPages[*Album](c, ctx, apiArtistsURI+"/"+artistID+"/albums", query)
}

// GetEpisode retrieves metadata for a single podcast episode.
func (c *ClientImpl) GetEpisode(ctx context.Context, episodeID string) (*Episode, error) {
	query := url.Values{}
	query.Set("market", marketFromToken)

	result, err := fetchJSONWithQuery[Episode](c, ctx, apiEpisodesURI+"/"+episodeID, query)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}

// GetShow retrieves metadata for a single podcast show.
func (c *ClientImpl) GetShow(ctx context.Context, showID string) (*Show, error) {
	query := url.Values{}
	query.Set("market", marketFromToken)

	result, err := fetchJSONWithQuery[Show](c, ctx, apiShowsURI+"/"+showID, query)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}

// GetShowEpisodes retrieves all episodes of a show across every page.
func (c *ClientImpl) GetShowEpisodes(ctx context.Context, showID string) ([]*Episode, error) {
	query := url.Values{}
	query.Set("market", marketFromToken)

	return fetchAllPages[*Episode](c, ctx, apiShowsURI+"/"+showID+"/episodes", query)
}

// GetSavedTracks retrieves the user's saved ("liked") tracks across every page.
func (c *ClientImpl) GetSavedTracks(ctx context.Context) ([]*Track, error) {
	items, err := fetchAllPages[*SavedTrackItem](c, ctx, apiSavedTracksURI, nil)
	if err != nil {
		return nil, err
	}

	tracks := make([]*Track, 0, len(items))

	for _, item := range items {
		if item.Track != nil {
			tracks = append(tracks, item.Track)
		}
	}

	return tracks, nil
}

// GetUserPlaylists retrieves the user's playlists across every page.
func (c *ClientImpl) GetUserPlaylists(ctx context.Context) ([]*Playlist, error) {
	return fetchAllPages[*Playlist](c, ctx, apiUserPlaylistsURI, nil)
}

// Search performs a catalog search across tracks, albums, playlists, and artists.
func (c *ClientImpl) Search(ctx context.Context, searchQuery string, limit int64) (*SearchResponse, error) {
	query := url.Values{}
	query.Set("q", searchQuery)
	query.Set("type", "track,album,playlist,artist")
	query.Set("limit", strconv.FormatInt(limit, 10))

	result, err := fetchJSONWithQuery[SearchResponse](c, ctx, apiSearchURI, query)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}

// OpenStream resolves and opens the audio stream of a track at the given quality.
// The returned reader carries the total stream length reported by the server.
func (c *ClientImpl) OpenStream(ctx context.Context, trackID, quality string) (*StreamReader, error) {
	query := url.Values{}
	query.Set("quality", quality)

	metadata, err := fetchJSONWithQuery[streamMetadataResponse](c, ctx, apiStreamsURI+"/"+trackID, query)
	if err != nil {
		return nil, err
	}

	if metadata.Data.URL == "" {
		return nil, ErrEmptyStreamURL
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, metadata.Data.URL, http.NoBody)
	if err != nil {
		return nil, err
	}

	// Request partial content so the server reports the total length.
	request.Header.Add("Range", "bytes=0-")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusPartialContent {
		response.Body.Close() //nolint:gosec // Error on close is not critical here.

		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	return &StreamReader{
		Body:       response.Body,
		TotalBytes: response.ContentLength,
	}, nil
}

// DownloadFromURL downloads content from the specified URL.
func (c *ClientImpl) DownloadFromURL(ctx context.Context, url string) (io.ReadCloser, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		response.Body.Close() //nolint:gosec // Error on close is not critical here.

		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	return response.Body, nil
}

// DownloadCover downloads cover art, memoizing the bytes per URL.
// Every track of an album points at the same cover, so one album costs one request.
func (c *ClientImpl) DownloadCover(ctx context.Context, coverURL string) ([]byte, error) {
	if cached, ok := c.coversCache.Get(coverURL); ok {
		logger.Debugf(ctx, "Cover cache hit for URL: %s", coverURL)

		return cached, nil
	}

	body, err := c.DownloadFromURL(ctx, coverURL)
	if err != nil {
		return nil, err
	}

	defer body.Close() //nolint:errcheck // Error on close is not critical here.

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	c.coversCache.Add(coverURL, data)

	return data, nil
}

// refreshAccessToken performs the web player token exchange and stores the result.
func (c *ClientImpl) refreshAccessToken(ctx context.Context) (string, error) {
	c.tokenMutex.Lock()
	defer c.tokenMutex.Unlock()

	route, err := url.JoinPath(c.webURL, apiTokenURI)
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, route, http.NoBody)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("reason", "transport")
	query.Set("productType", "web_player")
	request.URL.RawQuery = query.Encode()

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", err
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange failed, %w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	var tokenResponse accessTokenResponse
	if err = decodeJSON(response.Body, &tokenResponse); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	if tokenResponse.AccessToken == "" {
		return "", ErrEmptyAccessToken
	}

	c.accessToken = tokenResponse.AccessToken

	return c.accessToken, nil
}

// currentAccessToken returns the stored access token,
// exchanging the session cookie first if none is held yet.
func (c *ClientImpl) currentAccessToken(ctx context.Context) (string, error) {
	c.tokenMutex.Lock()
	token := c.accessToken
	c.tokenMutex.Unlock()

	if token != "" {
		return token, nil
	}

	return c.refreshAccessToken(ctx)
}
