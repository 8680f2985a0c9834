package auth

import (
	"context"

	"github.com/dsmirnov/spotify-grabber/internal/logger"
)

// getAuthCookie retrieves the session cookie value if it exists, without logging.
func (s *ServiceImpl) getAuthCookie(ctx context.Context) string {
	defer func() {
		if r := recover(); r != nil {
			logger.Debugf(ctx, "getAuthCookie panic recovered: %v", r)
		}
	}()

	cookies, err := s.page.Cookies([]string{spotifyHomeURL})
	if err != nil {
		return ""
	}

	for _, cookie := range cookies {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Value
		}
	}

	return ""
}

// extractTokenFromCookies extracts the session cookie from the browser.
func (s *ServiceImpl) extractTokenFromCookies(ctx context.Context) (string, error) {
	logger.Info(ctx, "Extracting session cookie from the browser...")

	// Get current page URL.
	currentURL := s.page.MustInfo().URL
	logger.Debugf(ctx, "Current page URL: %s", currentURL)

	// Get all cookies.
	logger.Debug(ctx, "Fetching cookies from browser...")

	cookies := s.page.MustCookies()
	logger.Debugf(ctx, "Found %d cookies", len(cookies))

	// Log cookie names only in debug mode. Values stay out of the logs, the
	// session cookie is as sensitive as a password.
	if logger.IsDebugLevel() && len(cookies) > 0 {
		logger.Debug(ctx, "Cookie list:")

		for i, cookie := range cookies {
			logger.Debugf(ctx, "Cookie %d: name=%s, domain=%s", i+1, cookie.Name, cookie.Domain)
		}
	}

	// Find the session cookie.
	logger.Debugf(ctx, "Looking for '%s' cookie...", authCookieName)

	var authToken string

	for _, cookie := range cookies {
		if cookie.Name == authCookieName {
			authToken = cookie.Value
			logger.Debugf(ctx, "Found '%s' cookie! Length: %d characters", authCookieName, len(authToken))

			break
		}
	}

	if authToken == "" {
		logger.Error(ctx, "Session cookie not found! Available cookies:")

		for _, cookie := range cookies {
			logger.Errorf(ctx, "%s (domain: %s)", cookie.Name, cookie.Domain)
		}

		return "", ErrAuthCookieNotFound
	}

	logger.Info(ctx, "Session cookie extracted from the browser!")

	return authToken, nil
}
