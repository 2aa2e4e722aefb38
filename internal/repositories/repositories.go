// package repositories provides the persistence layer for the media index.
//
// The index is the explicit {collection, position, video id} → path mapping
// that replaces ad-hoc filename parsing as the authority for resume cursors
// and subtitle id lookups. It is rebuilt from a directory scan at startup and
// treated as authoritative data afterwards.
package repositories

import (
	"database/sql"
	"fmt"

	"github.com/hcollard/ytmirror/internal/models"
)

// MediaIndex implements index queries over the media_files table.
type MediaIndex struct {
	db *sql.DB
}

// NewMediaIndex creates a MediaIndex with the given database connection.
func NewMediaIndex(db *sql.DB) *MediaIndex {
	return &MediaIndex{db: db}
}

// Rebuild replaces the indexed rows of one collection with the freshly
// scanned files. Runs in a single transaction so readers never observe a
// half-built index.
func (r *MediaIndex) Rebuild(collection string, files []models.MediaFile) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM media_files WHERE collection = ?", collection); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO media_files (collection, position, video_id, path) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range files {
		if _, err := stmt.Exec(collection, f.Position, f.VideoID, f.Path); err != nil {
			return fmt.Errorf("failed to index %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit index rebuild: %w", err)
	}
	return nil
}

// Add indexes one newly materialized file without rebuilding.
func (r *MediaIndex) Add(collection string, file models.MediaFile) error {
	_, err := r.db.Exec(
		"INSERT OR REPLACE INTO media_files (collection, position, video_id, path) VALUES (?, ?, ?, ?)",
		collection, file.Position, file.VideoID, file.Path,
	)
	if err != nil {
		return fmt.Errorf("failed to index %s: %w", file.Path, err)
	}
	return nil
}

// Cursor returns the highest indexed position for a collection, or 0 when
// nothing has been materialized yet.
func (r *MediaIndex) Cursor(collection string) (int, error) {
	var cursor int
	err := r.db.QueryRow(
		"SELECT COALESCE(MAX(position), 0) FROM media_files WHERE collection = ?",
		collection,
	).Scan(&cursor)
	if err != nil {
		return 0, fmt.Errorf("failed to compute cursor: %w", err)
	}
	return cursor, nil
}

// PathByVideoID resolves a video id to its indexed path.
func (r *MediaIndex) PathByVideoID(collection, videoID string) (string, error) {
	var path string
	err := r.db.QueryRow(
		"SELECT path FROM media_files WHERE collection = ? AND video_id = ?",
		collection, videoID,
	).Scan(&path)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("video id %s not indexed", videoID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve video id: %w", err)
	}
	return path, nil
}

// Files returns the indexed files of a collection in ascending position order.
func (r *MediaIndex) Files(collection string) ([]models.MediaFile, error) {
	rows, err := r.db.Query(
		"SELECT position, video_id, path FROM media_files WHERE collection = ? ORDER BY position ASC",
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexed files: %w", err)
	}
	defer rows.Close()

	var files []models.MediaFile
	for rows.Next() {
		var f models.MediaFile
		if err := rows.Scan(&f.Position, &f.VideoID, &f.Path); err != nil {
			return nil, fmt.Errorf("failed to scan indexed file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Count returns the number of indexed files for a collection.
func (r *MediaIndex) Count(collection string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM media_files WHERE collection = ?", collection).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count indexed files: %w", err)
	}
	return count, nil
}
