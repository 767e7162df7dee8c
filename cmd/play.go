package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/enunanota/enunanota/internal/game"
	"github.com/enunanota/enunanota/internal/repositories"
	"github.com/enunanota/enunanota/internal/shared"
	"github.com/enunanota/enunanota/internal/ui"
	"github.com/urfave/cli/v3"
)

// Play runs the guessing game: fetch the player's top tracks, start
// playback on a device, and launch the TUI. Results are persisted to the
// scores table when the program exits.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(cmd.String("config")); err != nil {
		return err
	}
	if err := r.requireAuth(); err != nil {
		return err
	}

	playerName := cmd.String("player")
	if playerName == "" {
		playerName = r.config.Game.PlayerName
	}

	rounds := cmd.Int("rounds")
	if rounds <= 0 {
		rounds = r.config.Game.TrackLimit
	}

	tracks, err := r.spotify.TopTracks(ctx, rounds)
	if err != nil {
		return r.apiError(err)
	}
	if len(tracks) == 0 {
		return fmt.Errorf("%w: no top tracks to play with, listen to some music first", shared.ErrInvalidInput)
	}

	deviceID, err := r.pickDevice(ctx, cmd.String("device"))
	if err != nil {
		return err
	}
	if deviceID == "" {
		r.logger.Warn("no active Spotify device found, running in silent mode")
		r.writePlain("⚠ No active Spotify device found. Open Spotify somewhere to hear the tracks.\n")
	}

	g := game.NewGame(playerName, tracks, r.config.Game.MaxAttempts)

	program := tea.NewProgram(ui.NewModel(ctx, g, r.spotify, deviceID))
	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("game session failed: %w", err)
	}

	if deviceID != "" {
		if err := r.spotify.Pause(ctx, deviceID); err != nil {
			r.logger.Debug("failed to pause playback", "error", err)
		}
	}

	final, ok := finalModel.(ui.Model)
	if !ok {
		return nil
	}

	return r.saveResults(final.Game())
}

// pickDevice resolves the playback target. An explicit preference must
// match; otherwise the active device wins, then the first available one.
// No device at all is not an error, the game just runs silently.
func (r *Runner) pickDevice(ctx context.Context, preferred string) (string, error) {
	devices, err := r.spotify.Devices(ctx)
	if err != nil {
		return "", r.apiError(err)
	}

	if preferred != "" {
		for _, device := range devices {
			if device.ID == preferred || device.Name == preferred {
				return device.ID, nil
			}
		}
		return "", fmt.Errorf("%w: device %q not found", shared.ErrNoActiveDevice, preferred)
	}

	for _, device := range devices {
		if device.Active {
			return device.ID, nil
		}
	}
	if len(devices) > 0 {
		return devices[0].ID, nil
	}

	return "", nil
}

// saveResults persists every finished round and prints the scoreboard.
func (r *Runner) saveResults(g *game.Game) error {
	played := 0
	for _, round := range g.Rounds() {
		if !round.Over {
			continue
		}
		played++

		if r.scores == nil {
			continue
		}

		score := &repositories.Score{
			PlayerName:  g.PlayerName,
			TrackID:     round.Track.ID,
			TrackTitle:  round.Track.Title,
			TrackArtist: round.Track.Artist,
			Attempts:    round.Attempts,
			Reveals:     round.RevealsUsed(),
			Points:      round.Points(),
			Won:         round.Won,
		}
		if err := r.scores.Create(score); err != nil {
			r.logger.Warn("failed to save score", "track", round.Track.Title, "error", err)
		}
	}

	if played == 0 {
		return r.writePlain("No rounds played.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Resultado de %s", g.PlayerName))
	for i, round := range g.Rounds() {
		if !round.Over {
			continue
		}
		mark := "✗"
		if round.Won {
			mark = "✓"
		}
		r.writePlain("%s %d. %s - %s (%d puntos)\n", mark, i+1, round.Track.Artist, round.Track.Title, round.Points())
	}
	r.writePlain("\nTotal: %d puntos\n", g.TotalPoints())

	if r.scores != nil {
		if total, err := r.scores.TotalPoints(g.PlayerName); err == nil {
			r.writePlain("All-time: %d puntos\n", total)
		}
	}

	return nil
}

// Scores lists recent game results.
func (r *Runner) Scores(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(cmd.String("config")); err != nil {
		return err
	}

	if r.scores == nil {
		return fmt.Errorf("%w: score storage not available", shared.ErrInvalidInput)
	}

	limit := cmd.Int("limit")

	scores, err := r.scores.Recent(limit)
	if err != nil {
		return fmt.Errorf("failed to load scores: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(scores, cmd.Bool("pretty"))
	}

	if len(scores) == 0 {
		return r.writePlain("No games played yet. Run 'enunanota play' to start one.\n")
	}

	r.writePlain("Last %d results:\n\n", len(scores))
	for _, score := range scores {
		mark := "✗"
		if score.Won {
			mark = "✓"
		}
		r.writePlain("%s %s - %s\n", mark, score.TrackArtist, score.TrackTitle)
		r.writePlain("   Player: %s  Points: %d  Attempts: %d  Hints: %d  Played: %s\n",
			score.PlayerName, score.Points, score.Attempts, score.Reveals,
			score.PlayedAt.Format("2006-01-02 15:04"))
	}

	return nil
}
