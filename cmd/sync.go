package main

import (
	"context"
	"time"

	"github.com/hcollard/ytmirror/internal/models"
	"github.com/hcollard/ytmirror/internal/repositories"
	"github.com/hcollard/ytmirror/internal/services"
	"github.com/hcollard/ytmirror/internal/shared"
	"github.com/hcollard/ytmirror/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Sync mirrors one or all configured collections.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	// A missing tool is fatal and detected before any collection work.
	if r.tooling == nil {
		reqs := services.Requirements(config.Tools.Fetcher, config.Tools.FFmpeg, config.Tools.FFprobe)
		if err := services.VerifyBinaries(reqs); err != nil {
			return err
		}
	}

	colls, err := selectCollections(config, cmd.String("collection"))
	if err != nil {
		return err
	}
	if len(colls) == 0 {
		r.logger.Warn("no collections configured")
		return nil
	}

	db, err := r.openIndex(config)
	if err != nil {
		return err
	}
	defer db.Close()

	engine := tasks.NewEngine(tasks.EngineOpts{
		Tooling:          r.resolveTooling(config),
		Index:            repositories.NewMediaIndex(db),
		Policy:           compliancePolicy(config),
		Profiles:         config.Fetch.Profiles,
		RetryInterval:    time.Duration(config.Fetch.RetryIntervalSecs) * time.Second,
		SubtitleLangs:    config.Subtitles.Languages,
		FetchesPerMinute: config.Fetch.FetchesPerMinute,
		Logger:           r.logger,
	})

	workers := cmd.Int("workers")
	if workers <= 0 {
		workers = config.Fetch.CollectionWorkers
	}

	r.logger.Info("starting sync", "run_id", engine.RunID(), "collections", len(colls), "workers", workers)
	stats := engine.SyncAll(ctx, colls, workers)

	return r.writePlain("listed %d, queued %d, fetched %d, skipped %d, failed %d, subtitles recovered %d\n",
		stats.Listed, stats.Queued, stats.Fetched, stats.SkippedPermanent, stats.Failed, stats.Recovered)
}

// Subs runs only the subtitle recovery sweep for one or all collections.
func (r *Runner) Subs(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	colls, err := selectCollections(config, cmd.String("collection"))
	if err != nil {
		return err
	}

	db, err := r.openIndex(config)
	if err != nil {
		return err
	}
	defer db.Close()

	engine := tasks.NewEngine(tasks.EngineOpts{
		Tooling:       r.resolveTooling(config),
		Index:         repositories.NewMediaIndex(db),
		Policy:        compliancePolicy(config),
		Profiles:      config.Fetch.Profiles,
		RetryInterval: time.Duration(config.Fetch.RetryIntervalSecs) * time.Second,
		SubtitleLangs: config.Subtitles.Languages,
		Logger:        r.logger,
	})

	recovered, failed := 0, 0
	for _, coll := range colls {
		rec, fail, err := engine.SweepSubtitles(ctx, coll)
		if err != nil {
			r.logger.Error("subtitle sweep failed", "collection", coll.Name, "err", err)
			continue
		}
		recovered += rec
		failed += fail
	}

	return r.writePlain("recovered %d subtitle tracks, %d newly cached failures\n", recovered, failed)
}

func compliancePolicy(config *shared.Config) models.CompliancePolicy {
	return models.CompliancePolicy{
		VideoCodec: config.Target.VideoCodec,
		AudioCodec: config.Target.AudioCodec,
		MaxHeight:  config.Target.MaxHeight,
	}
}
