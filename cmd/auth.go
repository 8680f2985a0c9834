package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dsmirnov/spotify-grabber/internal/app"
)

var (
	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Authentication management commands",
		Long: `Manage authentication for the catalog.

Use 'auth login' to log in via browser and automatically extract your session token.`,
	}

	authLoginCmd = &cobra.Command{
		Use:   "login",
		Short: "Login via browser and extract the session token",
		Long: `Opens a browser window for you to log in.

The login process:
1. Browser opens at the account login page
2. Enter your email/username and password, or continue with
   Google, Facebook, or Apple
3. Complete any verification challenge if one appears
4. Wait for authentication to complete

After successful login, the session token will be automatically
extracted from the browser and saved to the configuration file.

You can then use the token to download music:
spotify-grabber https://open.spotify.com/album/4aawyAB9vmqN3uQ7FjRGTy`,
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteAuthLoginCommand(cmd.Context(), appConfig)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	// Add login subcommand to auth command.
	authCmd.AddCommand(authLoginCmd)

	// Add auth command to root command.
	rootCmd.AddCommand(authCmd)
}
