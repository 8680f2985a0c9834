package spotify

const (
	// webBaseURL is the base URL of the web player, used for the token exchange.
	webBaseURL = "https://open.spotify.com"

	// sessionCookieName is the cookie carrying the long-lived session credential.
	sessionCookieName = "sp_dc"

	// apiTokenURI is the URI path for the access token exchange endpoint.
	apiTokenURI = "get_access_token"
	// apiTracksURI is the URI path for track metadata endpoint.
	apiTracksURI = "tracks"
	// apiAlbumsURI is the URI path for album metadata endpoint.
	apiAlbumsURI = "albums"
	// apiPlaylistsURI is the URI path for playlist metadata endpoint.
	apiPlaylistsURI = "playlists"
	// apiArtistsURI is the URI path for artist metadata endpoint.
	apiArtistsURI = "artists"
	// apiEpisodesURI is the URI path for episode metadata endpoint.
	apiEpisodesURI = "episodes"
	// apiShowsURI is the URI path for show metadata endpoint.
	apiShowsURI = "shows"
	// apiSavedTracksURI is the URI path for the user's saved tracks endpoint.
	apiSavedTracksURI = "me/tracks"
	// apiUserPlaylistsURI is the URI path for the user's playlists endpoint.
	apiUserPlaylistsURI = "me/playlists"
	// apiUserProfileURI is the URI path for the user profile endpoint.
	apiUserProfileURI = "me"
	// apiSearchURI is the URI path for the search endpoint.
	apiSearchURI = "search"
	// apiStreamsURI is the URI path for the stream resolution endpoint.
	apiStreamsURI = "streams"
)

const (
	// StreamQualityHigh is the 160 kbps quality tier available to every account.
	StreamQualityHigh = "high"
	// StreamQualityVeryHigh is the 320 kbps quality tier for premium accounts.
	StreamQualityVeryHigh = "very_high"

	// UserProductPremium is the profile product value of a premium subscription.
	UserProductPremium = "premium"
)

const (
	// defaultPageLimit is the page size used for paginated list endpoints.
	defaultPageLimit = 50

	// marketFromToken asks the API to resolve availability against the account's market.
	marketFromToken = "from_token"

	// coversCacheSize defines the maximum number of cover art images to cache.
	// Every track of an album references the same cover, so a small cache
	// eliminates nearly all repeated downloads.
	coversCacheSize = 100
)
