package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hcollard/ytmirror/internal/audit"
	"github.com/hcollard/ytmirror/internal/services"
	"github.com/hcollard/ytmirror/internal/shared"
)

// TrailerReport accumulates the batch trailer fetcher's counters. Workers
// keep their own report and the reports are merged after the pool drains;
// there is no shared counter.
type TrailerReport struct {
	Folders int
	Fetched int
	Skipped int
	Failed  int
}

func (r *TrailerReport) merge(other TrailerReport) {
	r.Folders += other.Folders
	r.Fetched += other.Fetched
	r.Skipped += other.Skipped
	r.Failed += other.Failed
}

// FetchTrailers fills missing `<folder>-trailer.mp4` files under a movies
// root. Folders are fully independent units of work (distinct directories,
// no shared file), so the bounded pool needs no locking; only the audit log
// is shared and it appends whole lines in single write calls.
func (e *Engine) FetchTrailers(ctx context.Context, moviesDir string, workers int, auditLog *audit.Log) (TrailerReport, error) {
	entries, err := os.ReadDir(moviesDir)
	if err != nil {
		return TrailerReport{}, fmt.Errorf("failed to read movies directory: %w", err)
	}

	var folders []string
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, filepath.Join(moviesDir, entry.Name()))
		}
	}

	if workers <= 0 {
		workers = 1
	}
	if workers > len(folders) {
		workers = len(folders)
	}

	work := make(chan string)
	results := make(chan TrailerReport, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var acc TrailerReport
			for folder := range work {
				acc.Folders++
				switch e.fetchTrailer(ctx, folder, auditLog) {
				case trailerFetched:
					acc.Fetched++
				case trailerPresent:
					acc.Skipped++
				default:
					acc.Failed++
				}
			}
			results <- acc
		}()
	}

	for _, folder := range folders {
		work <- folder
	}
	close(work)
	wg.Wait()
	close(results)

	var total TrailerReport
	for acc := range results {
		total.merge(acc)
	}
	return total, nil
}

type trailerResult int

const (
	trailerFetched trailerResult = iota
	trailerPresent
	trailerFailed
)

// fetchTrailer fetches one folder's trailer by search locator when absent.
func (e *Engine) fetchTrailer(ctx context.Context, folder string, auditLog *audit.Log) trailerResult {
	name := filepath.Base(folder)
	destPath := filepath.Join(folder, name+"-trailer.mp4")
	if shared.FileExists(destPath) {
		return trailerPresent
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return trailerFailed
		}
	}

	profile := "720p"
	if len(e.profiles) > 0 {
		profile = e.profiles[0]
	}

	_, err := e.tooling.Fetch(ctx, services.FetchRequest{
		Locator:  "ytsearch1:" + name + " trailer",
		Profile:  profile,
		DestPath: destPath,
	})
	if err != nil || !shared.FileExists(destPath) {
		e.logger.Warn("trailer fetch failed", "folder", name, "err", err)
		auditLog.Printf("trailer fetch failed folder=%q", name)
		return trailerFailed
	}

	auditLog.Printf("trailer fetched folder=%q", name)
	return trailerFetched
}
