package tasks

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/hcollard/ytmirror/internal/archive"
	"github.com/hcollard/ytmirror/internal/audit"
	"github.com/hcollard/ytmirror/internal/formatter"
	"github.com/hcollard/ytmirror/internal/models"
	"github.com/hcollard/ytmirror/internal/scanner"
	"github.com/hcollard/ytmirror/internal/services"
	"github.com/hcollard/ytmirror/internal/shared"
)

// SweepSubtitles runs the recovery sweep alone for one collection, outside a
// full sync run. Used by the standalone subs command to heal gaps on files
// fetched before subtitle recovery existed.
func (e *Engine) SweepSubtitles(ctx context.Context, coll models.Collection) (recovered, failed int, err error) {
	cache, err := archive.OpenFailureCache(filepath.Join(coll.Directory, "subtitle-failures.txt"))
	if err != nil {
		return 0, 0, err
	}

	logDir := coll.LogDirectory
	if logDir == "" {
		logDir = coll.Directory
	}
	auditLog, err := audit.Open(filepath.Join(logDir, formatter.SanitizeTitle(coll.Name)+".log"))
	if err != nil {
		return 0, 0, err
	}
	defer auditLog.Close()

	auditLog.Printf("run %s subtitle sweep collection=%q", e.runID, coll.Name)
	recovered, failed = e.recoverSubtitles(ctx, coll, cache, auditLog)
	return recovered, failed, nil
}

// recoverSubtitles sweeps every local media file of a collection once and
// fills missing subtitle tracks. The sweep is decoupled from the fetch queue
// so gaps on files from earlier runs heal the same way as gaps on new files.
// Returns (recovered, failed) counts.
func (e *Engine) recoverSubtitles(ctx context.Context, coll models.Collection, cache *archive.FailureCache, auditLog *audit.Log) (int, int) {
	paths, err := scanner.MediaFiles(coll.Directory)
	if err != nil {
		e.logger.Error("subtitle sweep scan failed", "collection", coll.Name, "err", err)
		return 0, 0
	}

	recovered, failed := 0, 0
	for _, path := range paths {
		base := formatter.BaseName(path)

		if cache.Contains(base) {
			continue
		}
		if scanner.HasSubtitle(path) {
			continue
		}

		id, err := formatter.ExtractID(base)
		if err != nil {
			// No cache entry: once the file is renamed into convention the
			// next sweep can retry it.
			e.logger.Warn("cannot recover subtitles for file outside naming convention", "file", base)
			continue
		}

		if e.recoverOne(ctx, path, base, id, auditLog) {
			recovered++
			continue
		}

		if err := cache.Record(base); err != nil {
			e.logger.Error("failed to record subtitle failure", "base", base, "err", err)
		}
		auditLog.Printf("subtitle recovery exhausted base=%s id=%s", base, id)
		failed++
	}
	return recovered, failed
}

// recoverOne walks the ordered language preferences and stops at the first
// language for which the tool produced the expected output file.
func (e *Engine) recoverOne(ctx context.Context, path, base, id string, auditLog *audit.Log) bool {
	locator := models.RemoteItem{ID: id}.Locator()
	outputBase := strings.TrimSuffix(path, filepath.Ext(path))

	for _, lang := range e.subtitleLangs {
		err := e.tooling.FetchSubtitles(ctx, services.SubtitleRequest{
			Locator:    locator,
			Language:   lang,
			OutputBase: outputBase,
		})
		if err != nil {
			e.logger.Warn("subtitle attempt failed", "base", base, "lang", lang, "err", err)
			continue
		}
		if shared.FileExists(formatter.SubtitleFileName(outputBase, lang)) {
			auditLog.Printf("recovered subtitles base=%s lang=%s", base, lang)
			return true
		}
	}
	return false
}
