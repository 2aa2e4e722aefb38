// package audit implements the append-only operator log: UTF-8, byte-order
// mark at file creation, one `<timestamp>\t<message>` line per entry, written
// in a single Write call so concurrent writers never interleave partial
// lines. The log is the sole record of partial failure.
package audit

import (
	"fmt"
	"os"
	"sync"
	"time"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Log is an append-only, human-tailable event log.
type Log struct {
	mu   sync.Mutex
	file *os.File
	now  func() time.Time
}

// Open appends to the log file at path, creating it (with a BOM) on first
// use.
func Open(path string) (*Log, error) {
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	if fresh {
		if _, err := file.Write(bom); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write BOM: %w", err)
		}
	}
	return &Log{file: file, now: time.Now}, nil
}

// Printf appends one timestamped entry. The entire line is flushed in one
// Write call.
func (l *Log) Printf(format string, args ...any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("%s\t%s\n", l.now().Format(time.RFC3339), fmt.Sprintf(format, args...))
	if _, err := l.file.Write([]byte(line)); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// Close releases the underlying file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
