package main

import (
	"context"
	"fmt"

	"github.com/enunanota/enunanota/internal/shared"
	"github.com/urfave/cli/v3"
)

// Tracks lists the user's recent top tracks.
func (r *Runner) Tracks(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(cmd.String("config")); err != nil {
		return err
	}
	if err := r.requireAuth(); err != nil {
		return err
	}

	limit := cmd.Int("limit")

	r.logger.Infof("listing top tracks with limit %v", limit)

	tracks, err := r.spotify.TopTracks(ctx, limit)
	if err != nil {
		return r.apiError(err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	r.writePlain("Your top %d tracks:\n\n", len(tracks))
	for i, track := range tracks {
		r.writePlain("%d. %s - %s\n", i+1, track.Artist, track.Title)
		if track.Album != "" {
			r.writePlain("   Album: %s\n", track.Album)
		}
	}

	return nil
}

// Search searches the Spotify catalog for tracks.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(cmd.String("config")); err != nil {
		return err
	}
	if err := r.requireAuth(); err != nil {
		return err
	}

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrInvalidArgument)
	}

	limit := cmd.Int("limit")

	r.logger.Infof("searching tracks for %q", query)

	tracks, err := r.spotify.SearchTracks(ctx, query, limit)
	if err != nil {
		return r.apiError(err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d tracks for %q:\n\n", len(tracks), query)
	for i, track := range tracks {
		r.writePlain("%d. %s - %s\n", i+1, track.Artist, track.Title)
		if track.Album != "" {
			r.writePlain("   Album: %s\n", track.Album)
		}
	}

	return nil
}
