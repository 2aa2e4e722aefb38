package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/hcollard/ytmirror/internal/archive"
	"github.com/hcollard/ytmirror/internal/audit"
	"github.com/hcollard/ytmirror/internal/formatter"
	"github.com/hcollard/ytmirror/internal/models"
	"github.com/hcollard/ytmirror/internal/scanner"
	"github.com/hcollard/ytmirror/internal/services"
)

// listRetries is how many additional listing attempts follow a transient
// failure, each after the fixed retry interval.
const listRetries = 2

// SyncCollection runs the full pipeline for one collection:
//
//	Listing → ComputingCursor → Fetching(i)… → RecoveringSubtitles → Done
//
// The cursor is computed once. Items are fetched in strictly ascending
// position order and item-level failures never abort the run; Done is
// reached regardless of individual outcomes. Only a listing failure is
// returned as an error.
func (e *Engine) SyncCollection(ctx context.Context, coll models.Collection) (models.RunStats, error) {
	var stats models.RunStats

	if err := os.MkdirAll(coll.Directory, 0755); err != nil {
		return stats, fmt.Errorf("failed to create collection directory: %w", err)
	}
	logDir := coll.LogDirectory
	if logDir == "" {
		logDir = coll.Directory
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return stats, fmt.Errorf("failed to create log directory: %w", err)
	}

	store, err := archive.Open(filepath.Join(coll.Directory, "archive.txt"))
	if err != nil {
		return stats, err
	}
	cache, err := archive.OpenFailureCache(filepath.Join(coll.Directory, "subtitle-failures.txt"))
	if err != nil {
		return stats, err
	}

	logBase := formatter.SanitizeTitle(coll.Name)
	auditLog, err := audit.Open(filepath.Join(logDir, logBase+".log"))
	if err != nil {
		return stats, err
	}
	defer auditLog.Close()
	violations, err := audit.Open(filepath.Join(logDir, logBase+".violations.log"))
	if err != nil {
		return stats, err
	}
	defer violations.Close()

	auditLog.Printf("run %s started collection=%q season=%s", e.runID, coll.Name, coll.Season)

	// Listing
	entries, err := e.listCollection(ctx, coll)
	if err != nil {
		auditLog.Printf("listing failed: %v", err)
		return stats, err
	}
	stats.Listed = len(entries)

	items := make([]models.RemoteItem, len(entries))
	for i, entry := range entries {
		items[i] = models.RemoteItem{Position: i + 1, ID: entry.ID, Title: entry.Title}
	}

	// ComputingCursor: rebuild the index from disk, then derive the resume
	// point. The directory is the source of truth for progress; the archive
	// is the source of truth for per-item completion, so archived items are
	// excluded from the queue even when no file carries their position.
	files, err := e.rebuildIndex(coll)
	if err != nil {
		auditLog.Printf("index rebuild failed: %v", err)
		return stats, err
	}
	cursor, err := e.index.Cursor(coll.Name)
	if err != nil {
		return stats, err
	}
	auditLog.Printf("cursor computed position=%d indexed_files=%d remote_items=%d", cursor, len(files), len(items))

	var queue []models.RemoteItem
	for _, item := range items {
		if item.Position <= cursor {
			continue
		}
		if store.Contains(models.SourceKind, item.ID) {
			continue
		}
		queue = append(queue, item)
	}
	stats.Queued = len(queue)

	// Fetching(i), strictly ascending; no reordering or skipping ahead.
	for _, item := range queue {
		outcome, path := e.fetchItem(ctx, coll, item, store, auditLog)
		switch outcome {
		case models.OutcomeSuccess:
			stats.Fetched++
			if err := e.index.Add(coll.Name, models.MediaFile{Path: path, Position: item.Position, VideoID: item.ID}); err != nil {
				e.logger.Error("failed to index fetched file", "path", path, "err", err)
			}
			if report := e.validate(ctx, path, violations); !report.Compliant {
				stats.Violations++
			}
			if err := e.tagFile(ctx, coll, item, path); err != nil {
				e.logger.Warn("tagging failed, original preserved", "path", path, "err", err)
				auditLog.Printf("tagging failed position=%d id=%s: %v", item.Position, item.ID, err)
			}
		case models.OutcomeSkippedPermanent:
			stats.SkippedPermanent++
		case models.OutcomeFailed:
			stats.Failed++
		}
	}

	// RecoveringSubtitles: one full sweep over every local file.
	stats.Recovered, stats.SubtitleFailures = e.recoverSubtitles(ctx, coll, cache, auditLog)

	// Done
	auditLog.Printf("run %s done fetched=%d skipped=%d failed=%d recovered=%d sub_failures=%d violations=%d",
		e.runID, stats.Fetched, stats.SkippedPermanent, stats.Failed, stats.Recovered, stats.SubtitleFailures, stats.Violations)
	e.logger.Info("collection done",
		"collection", coll.Name,
		"fetched", stats.Fetched,
		"skipped", stats.SkippedPermanent,
		"failed", stats.Failed,
		"recovered", stats.Recovered)

	return stats, nil
}

// listCollection retrieves the remote listing, retrying transient failures on
// a fixed interval. An empty listing is valid and short-circuits the caller
// straight to subtitle recovery.
func (e *Engine) listCollection(ctx context.Context, coll models.Collection) ([]services.ListEntry, error) {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(e.retryInterval), listRetries), ctx)

	return backoff.RetryWithData(func() ([]services.ListEntry, error) {
		return e.tooling.List(ctx, coll.URL)
	}, policy)
}

// rebuildIndex scans the collection directory and replaces the collection's
// rows in the media index.
func (e *Engine) rebuildIndex(coll models.Collection) ([]models.MediaFile, error) {
	files, err := e.scanCollection(coll)
	if err != nil {
		return nil, err
	}
	if err := e.index.Rebuild(coll.Name, files); err != nil {
		return nil, err
	}
	return files, nil
}

// scanCollection recovers the materialized files of a collection from disk.
func (e *Engine) scanCollection(coll models.Collection) ([]models.MediaFile, error) {
	files, err := scanner.Run(coll.Directory, coll.Season, e.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", coll.Directory, err)
	}
	return files, nil
}

// SyncAll processes independent collections on a bounded worker pool. Each
// collection owns a distinct directory, archive and log, so workers share no
// mutable state; stats are accumulated per worker and merged after the pool
// drains. A collection failure never aborts the batch.
func (e *Engine) SyncAll(ctx context.Context, colls []models.Collection, workers int) models.RunStats {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(colls) {
		workers = len(colls)
	}

	work := make(chan models.Collection)
	results := make(chan models.RunStats, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var acc models.RunStats
			for coll := range work {
				stats, err := e.SyncCollection(ctx, coll)
				if err != nil {
					e.logger.Error("collection sync failed", "collection", coll.Name, "err", err)
				}
				acc.Merge(stats)
			}
			results <- acc
		}()
	}

	for _, coll := range colls {
		work <- coll
	}
	close(work)
	wg.Wait()
	close(results)

	var total models.RunStats
	for acc := range results {
		total.Merge(acc)
	}
	return total
}
