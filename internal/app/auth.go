package app

import (
	"context"

	"github.com/dsmirnov/spotify-grabber/internal/config"
	"github.com/dsmirnov/spotify-grabber/internal/logger"
	"github.com/dsmirnov/spotify-grabber/internal/service/auth"
)

// ExecuteAuthLoginCommand executes the auth login command.
// It opens a browser, waits for the user to log in, extracts the session cookie,
// and saves it to the configuration file.
func ExecuteAuthLoginCommand(ctx context.Context, cfg *config.Config) {
	logger.Info(ctx, "Starting authentication process")

	// Create browser authentication service.
	authService, err := auth.NewService(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize authentication service: %v", err)
		return
	}

	// Perform login and extract the session cookie.
	token, err := authService.LoginAndExtractToken(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Authentication failed: %v", err)
		return
	}

	// Update configuration with the new token.
	cfg.SessionToken = token

	// Save configuration to file.
	if err = config.SaveConfig(cfg); err != nil {
		logger.Fatalf(ctx, "Failed to save configuration: %v", err)
		return
	}

	// Print success message.
	logger.Info(ctx, "Configuration updated successfully!")
	logger.Info(ctx, "Authentication complete! You can now download music.")
	logger.Info(ctx, "")
	logger.Info(ctx, "Try downloading an album:")
	logger.Info(ctx, "spotify-grabber https://open.spotify.com/album/4aawyAB9vmqN3uQ7FjRGTy")
	logger.Info(ctx, "")
	logger.Info(ctx, "Or a playlist:")
	logger.Info(ctx, "spotify-grabber https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M")
}
