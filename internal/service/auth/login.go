package auth

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dsmirnov/spotify-grabber/internal/logger"
)

// allowedThirdPartyDomains are the identity providers the login page can hand off to.
//
//nolint:gochecknoglobals // Static allow list shared by the monitoring loop.
var allowedThirdPartyDomains = []string{
	"accounts.google.com",
	"facebook.com",
	"appleid.apple.com",
}

// waitForUserLogin navigates to the login page and waits for successful authentication.
//
//nolint:funlen // Login instructions require many log statements.
func (s *ServiceImpl) waitForUserLogin(ctx context.Context) (string, error) {
	logger.Info(ctx, "Opening the Spotify login page...")

	logger.Debugf(ctx, "Navigating to %s", spotifyLoginURL)

	// Add random delay before navigation to appear more human.
	randomHumanDelay()

	s.page.MustNavigate(spotifyLoginURL)

	// Wait for page to fully load with random delay.
	randomHumanDelay()

	// Perform some human-like mouse movements after page load.
	s.simulateHumanBehavior(ctx)

	currentURL := s.page.MustInfo().URL
	logger.Debugf(ctx, "Navigation complete. Current URL: %s", currentURL)

	logger.Info(ctx, "")
	logger.Info(ctx, "╔══════════════════════════════════════════════════════════════════╗")
	logger.Info(ctx, "║                      LOGIN INSTRUCTIONS                          ║")
	logger.Info(ctx, "╚══════════════════════════════════════════════════════════════════╝")
	logger.Info(ctx, "")
	logger.Info(ctx, "Please complete the login in the browser:")
	logger.Info(ctx, "")
	logger.Info(ctx, "1. Enter your Spotify email/username and password,")
	logger.Info(ctx, "   or continue with Google, Facebook, or Apple")
	logger.Info(ctx, "")
	logger.Info(ctx, "2. Complete any verification challenge if one appears")
	logger.Info(ctx, "")
	logger.Info(ctx, "3. Wait until the web player loads (a few seconds)")
	logger.Info(ctx, "")
	logger.Info(ctx, "4. DO NOT CLOSE THE BROWSER - let it complete automatically")
	logger.Info(ctx, "")
	logger.Info(ctx, "CRITICAL RULES:")
	logger.Info(ctx, "- ONLY interact with login forms")
	logger.Info(ctx, "- Do NOT close browser manually")
	logger.Info(ctx, "- Do NOT navigate away from Spotify pages")
	logger.Info(ctx, "- Tool will auto-detect when login completes")
	logger.Info(ctx, "")
	logger.Info(ctx, "Waiting for login to complete...")
	logger.Info(ctx, "")

	// Wait for login by monitoring the process.
	token, err := s.waitForLoginComplete(ctx)
	if err != nil {
		return "", err
	}

	logger.Info(ctx, "Login completed successfully!")

	// Give the session a moment to fully establish.
	time.Sleep(sessionEstablishDelay)

	return token, nil
}

// waitForLoginComplete monitors the login process and returns the session
// cookie as soon as it appears.
//
//nolint:cyclop // The monitoring loop checks several exit conditions per cycle.
func (s *ServiceImpl) waitForLoginComplete(ctx context.Context) (string, error) {
	var (
		startTime = time.Now()
		lastURL   string
		// Tracks whether the login redirect back to the web player happened.
		sawWebPlayer bool
	)

	for {
		// Check context cancellation.
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		// Check timeout.
		if time.Since(startTime) > maxLoginWaitTime {
			return "", fmt.Errorf("%w: waited for %v", ErrLoginTimeout, maxLoginWaitTime)
		}

		// Check if browser was closed.
		if !s.isBrowserAlive(ctx) {
			return "", ErrBrowserClosed
		}

		// Get current URL safely.
		currentURL, err := s.getCurrentURL(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to get current URL: %w", err)
		}

		// Log URL changes for debugging.
		if currentURL != lastURL {
			s.logURLChange(ctx, currentURL)
			lastURL = currentURL
		}

		// The session cookie is scoped to .spotify.com, so it is visible from
		// any Spotify page once the login succeeds.
		if strings.Contains(currentURL, spotifyDomain) {
			if authCookie := s.getAuthCookie(ctx); authCookie != "" {
				logger.Info(ctx, "Session cookie detected - login successful!")

				return authCookie, nil
			}
		}

		// Landing on the web player means the redirect completed. Cookies can
		// lag behind the navigation, so give them a moment and re-check.
		if !sawWebPlayer && strings.Contains(currentURL, openSpotifyDomain) {
			sawWebPlayer = true

			logger.Debug(ctx, "Web player loaded, waiting for the session cookie...")
			time.Sleep(postLoginCookieWaitDelay)

			continue
		}

		// On the web player, the account widget confirms the login even when
		// cookie polling is slow. The final extraction pass picks the cookie up.
		if sawWebPlayer && strings.Contains(currentURL, openSpotifyDomain) {
			if loggedIn, checkErr := s.checkIfLoggedIn(ctx); checkErr == nil && loggedIn {
				return "", nil
			}
		}

		// Validate user hasn't navigated away.
		if err = s.validateLoginURL(currentURL); err != nil {
			return "", err
		}

		// Simulate human behavior to avoid bot detection.
		s.simulateHumanBehavior(ctx)

		// Occasionally add extra random interactions.
		//nolint:gosec // Weak random is fine for simulating human behavior.
		if rand.IntN(interactionProbability) == 0 {
			s.simulateRandomPageInteraction(ctx)
		}

		// Wait before checking again with some randomness.
		randomHumanDelay()
	}
}

// logURLChange logs URL changes and page details in debug mode.
func (s *ServiceImpl) logURLChange(ctx context.Context, currentURL string) {
	logger.Debugf(ctx, "URL changed: %s", currentURL)

	if !logger.IsDebugLevel() {
		return
	}

	// Show page title.
	pageInfo, err := s.page.Info()
	if err == nil {
		logger.Debugf(ctx, "Page title: %s", pageInfo.Title)
	}
}

// checkIfLoggedIn checks if the user is logged in by looking for the account widget.
func (s *ServiceImpl) checkIfLoggedIn(ctx context.Context) (bool, error) {
	logger.Debug(ctx, "On the web player - checking for successful login...")

	// Try to find the account widget (appears only when logged in).
	avatarExists, _, err := s.page.Has(avatarButtonSelector)
	if err == nil && avatarExists {
		logger.Debug(ctx, "Account widget found - login successful!")

		return true, nil
	}

	// Also check if the login button still exists (not logged in).
	loginButtonExists, _, err := s.page.Has(loginButtonSelector)
	if err == nil && loginButtonExists {
		logger.Debug(ctx, "Still see the login button - not logged in yet, waiting...")
	}

	return false, err
}

// validateLoginURL validates that the user hasn't navigated away from allowed domains.
func (s *ServiceImpl) validateLoginURL(currentURL string) error {
	if strings.Contains(currentURL, spotifyDomain) {
		return nil
	}

	for _, domain := range allowedThirdPartyDomains {
		if strings.Contains(currentURL, domain) {
			return nil
		}
	}

	return fmt.Errorf("%w to: %s", ErrNavigatedAway, currentURL)
}
