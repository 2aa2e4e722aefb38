package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/hcollard/ytmirror/internal/audit"
	"github.com/hcollard/ytmirror/internal/services"
	"github.com/hcollard/ytmirror/internal/shared"
	"github.com/hcollard/ytmirror/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Trailers runs the batch trailer fetcher over the movies root.
func (r *Runner) Trailers(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}

	moviesDir := cmd.String("movies-dir")
	if moviesDir == "" {
		moviesDir = config.Trailers.MoviesDir
	}
	if moviesDir == "" {
		return shared.ErrMissingArgument
	}

	if r.tooling == nil {
		reqs := services.Requirements(config.Tools.Fetcher, config.Tools.FFmpeg, config.Tools.FFprobe)
		if err := services.VerifyBinaries(reqs); err != nil {
			return err
		}
	}

	workers := cmd.Int("workers")
	if workers <= 0 {
		workers = config.Trailers.Workers
	}

	auditLog, err := audit.Open(filepath.Join(moviesDir, "trailers.log"))
	if err != nil {
		return err
	}
	defer auditLog.Close()

	engine := tasks.NewEngine(tasks.EngineOpts{
		Tooling:          r.resolveTooling(config),
		Profiles:         config.Fetch.Profiles,
		RetryInterval:    time.Duration(config.Fetch.RetryIntervalSecs) * time.Second,
		FetchesPerMinute: config.Fetch.FetchesPerMinute,
		Logger:           r.logger,
	})

	report, err := engine.FetchTrailers(ctx, moviesDir, workers, auditLog)
	if err != nil {
		return err
	}

	return r.writePlain("%d folders: %d fetched, %d already present, %d failed\n",
		report.Folders, report.Fetched, report.Skipped, report.Failed)
}
