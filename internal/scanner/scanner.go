// package scanner recovers the materialized state of a collection from its
// local directory. The filesystem is the source of truth for progress; the
// scan result feeds the media index rebuild at the start of every run.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hcollard/ytmirror/internal/formatter"
	"github.com/hcollard/ytmirror/internal/models"
)

var videoExtSet = map[string]struct{}{
	".mp4":  {},
	".mkv":  {},
	".webm": {},
	".m4v":  {},
}

var subtitleExtSet = map[string]struct{}{
	".srt": {},
	".ass": {},
	".vtt": {},
}

// Run walks a collection directory and returns the media files whose names
// carry the collection's season tag, sorted by position. Files whose names
// defeat the naming convention are logged and skipped; they cannot take part
// in resume or subtitle matching until renamed.
func Run(dir, season string, logger *log.Logger) ([]models.MediaFile, error) {
	var files []models.MediaFile

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if _, ok := videoExtSet[ext]; !ok {
			return nil
		}

		position, id, err := formatter.ParseEpisodeFileName(d.Name(), season)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping file outside naming convention", "file", d.Name(), "err", err)
			}
			return nil
		}

		files = append(files, models.MediaFile{Path: path, Position: position, VideoID: id})
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Position < files[j].Position })
	return files, nil
}

// MediaFiles lists every video file under dir regardless of naming, for the
// subtitle sweep, which covers previously fetched files too.
func MediaFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if _, ok := videoExtSet[ext]; ok {
			paths = append(paths, path)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// HasSubtitle reports whether any subtitle file already exists alongside the
// media file (same base name, any subtitle extension, any language infix).
func HasSubtitle(mediaPath string) bool {
	dir := filepath.Dir(mediaPath)
	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := subtitleExtSet[ext]; !ok {
			continue
		}
		if strings.HasPrefix(name, base+".") {
			return true
		}
	}
	return false
}
