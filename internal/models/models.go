package models

import (
	"fmt"
	"strings"
)

// SourceKind tags archive entries with the remote source they came from.
const SourceKind = "youtube"

// CanonicalExt is the pipeline's canonical container extension. The metadata
// tagger rejects anything else without mutation.
const CanonicalExt = ".mp4"

// Collection identifies one remote-playlist-to-local-directory mapping.
// Immutable for the duration of a sync run.
type Collection struct {
	URL          string
	Name         string
	Season       string
	Directory    string
	LogDirectory string
}

// Album is the album tag written into every file of the collection,
// e.g. "Example Show S01".
func (c Collection) Album() string {
	return c.Name + " " + c.Season
}

// RemoteItem is one entry of the remote listing. Produced fresh each run,
// never persisted directly; Position is 1-based and follows the lister's
// stable ordering.
type RemoteItem struct {
	Position int
	ID       string
	Title    string
}

// Locator returns the remote address the external tools accept for this item.
func (r RemoteItem) Locator() string {
	return "https://www.youtube.com/watch?v=" + r.ID
}

// MediaFile is a materialized item recovered from the local directory. The
// position and video id are parsed from the filename, which is the durable
// link between a RemoteItem and its file.
type MediaFile struct {
	Path     string
	Position int
	VideoID  string
}

// Outcome is the tagged result of one item's fetch cascade. Exactly one
// outcome is produced per item.
type Outcome int

const (
	// OutcomeSuccess means the destination file exists; validate and tag follow.
	OutcomeSuccess Outcome = iota
	// OutcomeSkippedPermanent means the item is permanently unfetchable and was
	// recorded in the archive so it is never attempted again.
	OutcomeSkippedPermanent
	// OutcomeFailed means every quality profile was exhausted; no file remains.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeSkippedPermanent:
		return "skipped_permanent"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// CompatibilityReport describes how one file measures against the compliance
// profile. Derived and transient; only non-compliant reports are persisted,
// into the violations log.
type CompatibilityReport struct {
	VideoCodec  string
	VideoHeight int
	AudioCodec  string
	Compliant   bool
}

// CompliancePolicy is the fixed target profile: exactly one video codec, one
// audio codec, and a maximum vertical resolution.
type CompliancePolicy struct {
	VideoCodec string
	AudioCodec string
	MaxHeight  int
}

// Evaluate computes a CompatibilityReport for the probed stream properties.
// Unknown codecs never pass.
func (p CompliancePolicy) Evaluate(videoCodec string, height int, audioCodec string) CompatibilityReport {
	report := CompatibilityReport{
		VideoCodec:  videoCodec,
		VideoHeight: height,
		AudioCodec:  audioCodec,
	}
	report.Compliant = strings.EqualFold(videoCodec, p.VideoCodec) &&
		strings.EqualFold(audioCodec, p.AudioCodec) &&
		height > 0 && height <= p.MaxHeight
	return report
}

// TagSet is the descriptive metadata written into a materialized file.
type TagSet struct {
	Title   string
	Artist  string
	Album   string
	Comment string
	Date    string // ISO calendar date
	Genre   string // joined tag list
}

// Pairs returns the metadata as ordered key=value arguments for the tagger.
func (t TagSet) Pairs() []string {
	return []string{
		"title=" + t.Title,
		"artist=" + t.Artist,
		"album=" + t.Album,
		"comment=" + t.Comment,
		"date=" + t.Date,
		"genre=" + t.Genre,
	}
}

// RunStats accumulates per-collection counters reported when a run reaches
// its terminal state.
type RunStats struct {
	Listed           int
	Queued           int
	Fetched          int
	SkippedPermanent int
	Failed           int
	Recovered        int
	SubtitleFailures int
	Violations       int
}

// Merge folds other into s. Used by worker pools that keep per-worker
// accumulators and combine them after the pool drains.
func (s *RunStats) Merge(other RunStats) {
	s.Listed += other.Listed
	s.Queued += other.Queued
	s.Fetched += other.Fetched
	s.SkippedPermanent += other.SkippedPermanent
	s.Failed += other.Failed
	s.Recovered += other.Recovered
	s.SubtitleFailures += other.SubtitleFailures
	s.Violations += other.Violations
}
