package tasks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hcollard/ytmirror/internal/archive"
	"github.com/hcollard/ytmirror/internal/audit"
	"github.com/hcollard/ytmirror/internal/formatter"
	"github.com/hcollard/ytmirror/internal/models"
	"github.com/hcollard/ytmirror/internal/services"
	"github.com/hcollard/ytmirror/internal/shared"
)

// permanentIncompatibilityMarker is the fetch tool diagnostic that marks an
// item as permanently unfetchable. Matched by substring over the tool's
// combined output; no lower-priority profile can succeed once it appears.
const permanentIncompatibilityMarker = "This video is DRM protected"

// fetchItem drives the quality cascade for one item. Profiles are attempted
// most-preferred first with a fixed delay between attempts; the cascade stops
// at the first success or at the permanent-incompatibility marker. Exactly
// one outcome is returned. On OutcomeFailed no partial file remains.
func (e *Engine) fetchItem(ctx context.Context, coll models.Collection, item models.RemoteItem, store *archive.Store, auditLog *audit.Log) (models.Outcome, string) {
	destPath := filepath.Join(coll.Directory, formatter.EpisodeFileName(
		coll.Name, coll.Season, item.Position, item.Title, item.ID, models.CanonicalExt))

	delay := backoff.NewConstantBackOff(e.retryInterval)

	for i, profile := range e.profiles {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				break
			}
		}

		output, err := e.tooling.Fetch(ctx, services.FetchRequest{
			Locator:     item.Locator(),
			Profile:     profile,
			DestPath:    destPath,
			ArchivePath: store.Path(),
		})

		if strings.Contains(output, permanentIncompatibilityMarker) {
			// Permanently unfetchable, not merely failed: record it so no
			// future run queues it again, and stop the cascade here.
			if recErr := store.Record(models.SourceKind, item.ID); recErr != nil {
				e.logger.Error("failed to archive permanently skipped item", "id", item.ID, "err", recErr)
			}
			auditLog.Printf("skipped permanently incompatible item position=%d id=%s title=%q", item.Position, item.ID, item.Title)
			return models.OutcomeSkippedPermanent, ""
		}

		if err == nil && shared.FileExists(destPath) {
			// The tool's own bookkeeping appended the archive entry.
			if relErr := store.Reload(); relErr != nil {
				e.logger.Warn("failed to reload archive after fetch", "err", relErr)
			}
			auditLog.Printf("fetched position=%d id=%s profile=%s", item.Position, item.ID, profile)
			return models.OutcomeSuccess, destPath
		}

		e.logger.Warn("fetch attempt failed",
			"collection", coll.Name, "position", item.Position, "profile", profile, "err", err)

		if i < len(e.profiles)-1 {
			select {
			case <-ctx.Done():
				return e.failItem(item, destPath, auditLog), ""
			case <-time.After(delay.NextBackOff()):
			}
		}
	}

	return e.failItem(item, destPath, auditLog), ""
}

// failItem reports cascade exhaustion and guarantees no partial file is left
// behind for callers to trip over.
func (e *Engine) failItem(item models.RemoteItem, destPath string, auditLog *audit.Log) models.Outcome {
	if shared.FileExists(destPath) {
		if err := os.Remove(destPath); err != nil {
			e.logger.Error("failed to remove partial file", "path", destPath, "err", err)
		}
	}
	auditLog.Printf("fetch failed after all profiles position=%d id=%s title=%q", item.Position, item.ID, item.Title)
	return models.OutcomeFailed
}
