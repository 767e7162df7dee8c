package main

import (
	"context"
	"os"

	"github.com/enunanota/enunanota/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "enunanota",
		Usage:    "Guess your own top Spotify tracks, one note at a time",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	err := app.Run(context.Background(), os.Args)
	runner.Close()
	if err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
