package main

import (
	"context"
	"path/filepath"

	"github.com/hcollard/ytmirror/internal/archive"
	"github.com/hcollard/ytmirror/internal/scanner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

// Status prints a read-only summary table of every configured collection.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.output)
	t.AppendHeader(table.Row{"Collection", "Season", "Files", "Cursor", "Archived", "Sub Failures"})

	for _, coll := range config.Collections {
		files, err := scanner.Run(coll.Directory, coll.Season, r.logger)
		if err != nil {
			r.logger.Warn("failed to scan collection directory", "collection", coll.Name, "err", err)
		}
		cursor := 0
		for _, f := range files {
			if f.Position > cursor {
				cursor = f.Position
			}
		}

		archived := 0
		if store, err := archive.Open(filepath.Join(coll.Directory, "archive.txt")); err == nil {
			archived = store.Len()
		}
		cachedFailures := 0
		if cache, err := archive.OpenFailureCache(filepath.Join(coll.Directory, "subtitle-failures.txt")); err == nil {
			cachedFailures = cache.Len()
		}

		t.AppendRow(table.Row{coll.Name, coll.Season, len(files), cursor, archived, cachedFailures})
	}

	t.Render()
	return nil
}
