package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// YTDLP shells out to yt-dlp for listing, fetching, subtitle recovery and
// item metadata. Timeouts are the tool's own responsibility; callers only
// carry a context for process-level lifetime.
type YTDLP struct {
	Binary string
}

// NewYTDLP returns a YTDLP client for the given binary name or path.
func NewYTDLP(binary string) *YTDLP {
	if strings.TrimSpace(binary) == "" {
		binary = "yt-dlp"
	}
	return &YTDLP{Binary: binary}
}

type flatListing struct {
	Entries []ListEntry `json:"entries"`
}

// List runs a flat playlist dump and decodes the ordered entries.
func (y *YTDLP) List(ctx context.Context, url string) ([]ListEntry, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("collection url is required")
	}

	cmd := exec.CommandContext(ctx, y.Binary, "--flat-playlist", "-J", url)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("listing failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return parseListing(stdout.Bytes())
}

// parseListing decodes a flat playlist JSON document. Entries without an id
// are dropped; an empty entries array is valid.
func parseListing(data []byte) ([]ListEntry, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("listing returned empty output")
	}
	var listing flatListing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("failed to parse listing: %w", err)
	}
	entries := make([]ListEntry, 0, len(listing.Entries))
	for _, e := range listing.Entries {
		if e.ID == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Fetch runs one quality-constrained download attempt. The combined output is
// returned on both success and failure so the caller can classify diagnostics.
func (y *YTDLP) Fetch(ctx context.Context, req FetchRequest) (string, error) {
	args := []string{
		"--no-playlist",
		"--newline",
		"-f", FormatSelector(req.Profile),
		"--merge-output-format", "mp4",
		"-o", escapeOutputTemplate(req.DestPath),
	}
	if req.ArchivePath != "" {
		args = append(args, "--download-archive", req.ArchivePath)
	}
	args = append(args, req.Locator)

	cmd := exec.CommandContext(ctx, y.Binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("fetch failed: %w", err)
	}
	return string(output), nil
}

// FetchSubtitles attempts one language preference. yt-dlp names the produced
// file <OutputBase>.<Language>.srt; existence is checked by the caller.
func (y *YTDLP) FetchSubtitles(ctx context.Context, req SubtitleRequest) error {
	args := []string{
		"--no-playlist",
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", req.Language,
		"--convert-subs", "srt",
		"-o", escapeOutputTemplate(req.OutputBase),
		req.Locator,
	}

	cmd := exec.CommandContext(ctx, y.Binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("subtitle fetch failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Describe dumps a single item's metadata document.
func (y *YTDLP) Describe(ctx context.Context, locator string) (ItemMeta, error) {
	cmd := exec.CommandContext(ctx, y.Binary, "--no-playlist", "-J", locator)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return ItemMeta{}, fmt.Errorf("describe failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	var meta ItemMeta
	if err := json.Unmarshal(stdout.Bytes(), &meta); err != nil {
		return ItemMeta{}, fmt.Errorf("failed to parse item metadata: %w", err)
	}
	return meta, nil
}

// FormatSelector maps a quality profile name to a yt-dlp format selector.
// Unknown names fall through to best available.
func FormatSelector(profile string) string {
	switch strings.ToLower(strings.TrimSpace(profile)) {
	case "720p", "720":
		return "bv*[height<=720]+ba/b[height<=720]"
	case "1080p", "1080":
		return "bv*[height<=1080]+ba/b[height<=1080]"
	default:
		return "bv*+ba/b"
	}
}

// escapeOutputTemplate doubles percent signs so literal destination paths
// survive yt-dlp's output templating.
func escapeOutputTemplate(path string) string {
	return strings.ReplaceAll(path, "%", "%%")
}
