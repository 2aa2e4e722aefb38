// package archive persists the append-only record of materialized item ids,
// the source of idempotency for the fetch pipeline. One store file per
// collection; entries are `<sourceKind> <id>` lines, compatible with the
// fetch tool's own bookkeeping so both writers share one file.
package archive

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gofrs/flock"
)

// Store is the append-only archive for one collection. Presence of an entry
// means "must not re-fetch". There is no deletion path.
type Store struct {
	path string
	lock *flock.Flock

	mu      sync.Mutex
	entries map[string]struct{}
}

// Open loads the archive file at path, creating it on first use.
func Open(path string) (*Store, error) {
	s := &Store{
		path:    path,
		lock:    flock.New(path + ".lock"),
		entries: make(map[string]struct{}),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path, handed to the fetch tool so its own
// bookkeeping lands in the same archive.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the backing file. Called after the external fetch tool may
// have appended entries of its own.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	entries := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	s.entries = entries
	return nil
}

// Contains reports whether (sourceKind, id) has been recorded.
func (s *Store) Contains(sourceKind, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key(sourceKind, id)]
	return ok
}

// Record appends (sourceKind, id). Recording an already-present entry is a
// no-op. The append happens under an advisory file lock so a second process
// pointed at the same store cannot interleave a partial line.
func (s *Store) Record(sourceKind, id string) error {
	k := key(sourceKind, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[k]; ok {
		return nil
	}

	if err := appendLine(s.lock, s.path, k); err != nil {
		return fmt.Errorf("failed to record archive entry: %w", err)
	}
	s.entries[k] = struct{}{}
	return nil
}

// Len returns the number of distinct recorded entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func key(sourceKind, id string) string {
	return sourceKind + " " + id
}

// appendLine writes one line in a single write call under the advisory lock.
func appendLine(lock *flock.Flock, path, line string) error {
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer lock.Unlock()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.WriteString(line + "\n"); err != nil {
		return err
	}
	return file.Close()
}
