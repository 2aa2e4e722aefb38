package main

import (
	"context"

	"github.com/hcollard/ytmirror/internal/services"
	"github.com/hcollard/ytmirror/internal/shared"
	"github.com/urfave/cli/v3"
)

// Check reports the availability of every external tool the pipeline needs.
func (r *Runner) Check(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}

	reqs := services.Requirements(config.Tools.Fetcher, config.Tools.FFmpeg, config.Tools.FFprobe)
	missing := 0
	for _, status := range services.CheckBinaries(reqs) {
		if status.Available {
			r.writePlain("ok\t%s (%s)\n", status.Name, status.Command)
			continue
		}
		missing++
		r.writePlain("missing\t%s: %s\n", status.Name, status.Detail)
	}

	if missing > 0 {
		return shared.ErrMissingTool
	}
	return nil
}

// Setup writes the example configuration file.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	return r.writePlain("wrote %s\n", path)
}
