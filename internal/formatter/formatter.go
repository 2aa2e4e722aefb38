// package formatter implements the filename convention linking remote items
// to materialized files:
//
//	<ShowName> - <SeasonTag>E<NN> - <SanitizedTitle> [<Id>].<ext>
//
// Position and id recovery depend on this exact shape, so building and
// parsing live together here.
package formatter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/hcollard/ytmirror/internal/shared"
)

// idTokenLen is the fixed length of the remote item identifier.
const idTokenLen = 11

var (
	episodePattern = regexp.MustCompile(`E(\d{2,})`)
	idPattern      = regexp.MustCompile(`\[([A-Za-z0-9_-]{11})\]$`)
	illegalChars   = regexp.MustCompile(`[\\/:*?"<>|%]`)
	spaceRuns      = regexp.MustCompile(`\s+`)
)

// SanitizeTitle strips path-illegal characters from a title and collapses
// runs of whitespace. Leading and trailing dots are dropped so the result is
// safe as a filename fragment on every supported filesystem.
func SanitizeTitle(title string) string {
	s := illegalChars.ReplaceAllString(title, "")
	s = strings.Map(func(r rune) rune {
		if r < 0x20 {
			return -1
		}
		return r
	}, s)
	s = spaceRuns.ReplaceAllString(s, " ")
	s = strings.Trim(s, " .")
	if s == "" {
		s = "untitled"
	}
	return s
}

// EpisodeFileName builds the canonical filename for one item of a collection.
// The position is zero-padded to at least two digits.
func EpisodeFileName(show, season string, position int, title, id, ext string) string {
	return fmt.Sprintf("%s - %sE%02d - %s [%s]%s",
		SanitizeTitle(show), season, position, SanitizeTitle(title), id, ext)
}

// SubtitleFileName returns the subtitle path convention for a media file base
// name and language: <baseName>.<language>.srt
func SubtitleFileName(base, language string) string {
	return base + "." + language + ".srt"
}

// BaseName strips the directory and extension from a media file path.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ParseEpisodeFileName recovers the position and id encoded in a filename.
// The season tag must match the collection's tag; files from other seasons in
// the same directory are not ours to touch. Returns [shared.ErrMalformedName]
// when either token is missing.
func ParseEpisodeFileName(name, season string) (position int, id string, err error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))

	marker := season + "E"
	idx := strings.Index(base, marker)
	if idx < 0 {
		return 0, "", fmt.Errorf("%w: no %q tag in %q", shared.ErrMalformedName, marker, name)
	}
	m := episodePattern.FindStringSubmatch(base[idx+len(season):])
	if m == nil {
		return 0, "", fmt.Errorf("%w: unparseable position in %q", shared.ErrMalformedName, name)
	}
	position, err = strconv.Atoi(m[1])
	if err != nil || position <= 0 {
		return 0, "", fmt.Errorf("%w: position %q in %q", shared.ErrMalformedName, m[1], name)
	}

	id, err = ExtractID(base)
	if err != nil {
		return 0, "", err
	}
	return position, id, nil
}

// ExtractID recovers the bracketed id token from a media file base name.
func ExtractID(base string) (string, error) {
	m := idPattern.FindStringSubmatch(strings.TrimRight(base, " "))
	if m == nil {
		return "", fmt.Errorf("%w: no [id] token in %q", shared.ErrMalformedName, base)
	}
	return m[1], nil
}
