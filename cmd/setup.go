package main

import (
	"context"
	"fmt"
	"os"

	"github.com/enunanota/enunanota/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file from the template if it is missing, then
// initializes the database and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.writePlain("✓ Config file created at %s\n", configPath)
		r.writePlain("  Set credentials.spotify.client_id before logging in.\n")
	}

	if err := r.bootstrap(configPath); err != nil {
		return err
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	r.writePlain("✓ Database ready at %s\n", r.config.Database.Path)
	r.writePlain("\nNext steps:\n")
	r.writePlain("1. Run 'enunanota auth login' to sign in to Spotify\n")
	r.writePlain("2. Run 'enunanota play' to start a game\n")

	return nil
}
