// package shared defines helpers used across the mirror pipeline
package shared

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger creates a new [log.Logger] instance with the specified [io.Writer], with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true}
	return log.NewWithOptions(w, opts)
}

// WithLogger creates a child [log.Logger] with the specified key-value pairs added to all log entries.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevel sets the [log.Level] for the given [log.Logger].
func SetLogLevel(l *log.Logger, ll log.Level) {
	l.SetLevel(ll)
}

// GenerateRunID generates a new v4 [uuid.UUID] as a string, used to stamp
// audit log entries belonging to one sync run.
func GenerateRunID() string {
	return uuid.New().String()
}

// NormalizeDate reformats a compact upload date (YYYYMMDD, the shape yt-dlp
// reports) into an ISO calendar date (YYYY-MM-DD). Inputs that are not eight
// digits are returned unchanged.
func NormalizeDate(compact string) string {
	d := strings.TrimSpace(compact)
	if len(d) != 8 {
		return compact
	}
	for _, r := range d {
		if r < '0' || r > '9' {
			return compact
		}
	}
	return d[0:4] + "-" + d[4:6] + "-" + d[6:8]
}
