package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hcollard/ytmirror/internal/shared"
	"github.com/urfave/cli/v3"
)

const version = "0.1.0"

func main() {
	logger := shared.NewLogger(os.Stderr)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		loaded, err := shared.LoadConfig("config.toml")
		if err != nil {
			logger.Fatal("failed to load config.toml", "err", err)
		}
		config = loaded
	}
	if level, err := log.ParseLevel(config.LogLevel); err == nil {
		shared.SetLogLevel(logger, level)
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
		Output: os.Stdout,
	})

	app := &cli.Command{
		Name:     "ytmirror",
		Usage:    "Incrementally mirror remote playlists into local media directories",
		Version:  version,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatal("command failed", "err", err)
	}
}
