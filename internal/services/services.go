// package services defines interface Tooling for the external tools the
// pipeline shells out to
//
// yt-dlp (listing, fetching, subtitles, metadata), ffprobe (stream probing),
// ffmpeg (metadata rewrite)
package services

import (
	"context"
)

// StreamKind selects which stream a probe inspects.
type StreamKind string

const (
	StreamVideo StreamKind = "video"
	StreamAudio StreamKind = "audio"
)

// ListEntry is one record of a remote listing, decodable to {id, title}.
type ListEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// FetchRequest describes one fetch attempt: one locator, one quality profile,
// one destination. The archive path is passed through so the tool's own
// bookkeeping records successes.
type FetchRequest struct {
	Locator     string
	Profile     string
	DestPath    string
	ArchivePath string
}

// ProbeInfo is the probed codec (and, for video, height) of a stream.
type ProbeInfo struct {
	Codec  string
	Height int
}

// SubtitleRequest describes one subtitle recovery attempt for one language.
// OutputBase is the destination path without extension; the tool writes
// <OutputBase>.<Language>.srt on success.
type SubtitleRequest struct {
	Locator    string
	Language   string
	OutputBase string
}

// ItemMeta is the descriptive metadata of a remote item used for tagging.
type ItemMeta struct {
	Uploader    string   `json:"uploader"`
	UploadDate  string   `json:"upload_date"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Tooling is the injectable capability interface over the external tools.
// The orchestrators depend on this, never on os/exec, so tests substitute
// deterministic fakes.
type Tooling interface {
	// List retrieves the ordered sequence of remote items for a collection.
	// An empty sequence is a valid, non-error outcome.
	List(ctx context.Context, url string) ([]ListEntry, error)

	// Fetch attempts one materialization. It returns the tool's combined
	// stdout+stderr regardless of outcome so callers can classify failures
	// by diagnostic substring.
	Fetch(ctx context.Context, req FetchRequest) (output string, err error)

	// Probe inspects the first stream of the given kind.
	Probe(ctx context.Context, path string, kind StreamKind) (ProbeInfo, error)

	// WriteTags stream-copies input to output injecting the ordered key=value
	// metadata pairs. It never touches the input file.
	WriteTags(ctx context.Context, input, output string, pairs []string) error

	// FetchSubtitles attempts recovery of one language preference.
	FetchSubtitles(ctx context.Context, req SubtitleRequest) error

	// Describe retrieves the descriptive metadata of a remote item.
	Describe(ctx context.Context, locator string) (ItemMeta, error)
}
