package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hcollard/ytmirror/internal/models"
	"github.com/hcollard/ytmirror/internal/shared"
)

// tagFile rewrites a materialized file with descriptive metadata via safe
// replace: the stream-copied replacement is written to a temporary path and
// the original is removed only once the replacement is verified present.
// Only the canonical container is accepted; anything else is rejected
// without mutation.
func (e *Engine) tagFile(ctx context.Context, coll models.Collection, item models.RemoteItem, path string) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != models.CanonicalExt {
		return fmt.Errorf("%w: %s", shared.ErrUnsupportedContainer, ext)
	}

	tags := e.buildTags(ctx, coll, item)

	tmpPath := strings.TrimSuffix(path, models.CanonicalExt) + ".tagged" + models.CanonicalExt
	if err := e.tooling.WriteTags(ctx, path, tmpPath, tags.Pairs()); err != nil {
		if shared.FileExists(tmpPath) {
			_ = os.Remove(tmpPath)
		}
		return err
	}

	return shared.ReplaceFileVerified(path, tmpPath)
}

// buildTags assembles the metadata record for one item. A metadata lookup
// failure degrades to the fields already known from the listing; tagging is
// never fatal either way.
func (e *Engine) buildTags(ctx context.Context, coll models.Collection, item models.RemoteItem) models.TagSet {
	tags := models.TagSet{
		Title: item.Title,
		Album: coll.Album(),
	}

	meta, err := e.tooling.Describe(ctx, item.Locator())
	if err != nil {
		e.logger.Warn("metadata lookup failed, tagging with listing fields only", "id", item.ID, "err", err)
		return tags
	}

	tags.Artist = meta.Uploader
	tags.Comment = meta.Description
	tags.Date = shared.NormalizeDate(meta.UploadDate)
	tags.Genre = strings.Join(meta.Tags, ", ")
	return tags
}
