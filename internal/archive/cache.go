package archive

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gofrs/flock"
)

// FailureCache memoizes media base names whose subtitle recovery has been
// exhaustively attempted and failed. Append-only and consulted before every
// recovery attempt; a name once cached is never retried automatically.
// Clearing requires deleting the file by hand.
type FailureCache struct {
	path string
	lock *flock.Flock

	mu    sync.Mutex
	names map[string]struct{}
}

// OpenFailureCache loads the cache file at path, creating it on first use.
func OpenFailureCache(path string) (*FailureCache, error) {
	c := &FailureCache{
		path:  path,
		lock:  flock.New(path + ".lock"),
		names: make(map[string]struct{}),
	}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open failure cache: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		c.names[name] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read failure cache: %w", err)
	}
	return c, nil
}

// Contains reports whether recovery for baseName has already been exhausted.
func (c *FailureCache) Contains(baseName string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.names[baseName]
	return ok
}

// Record memoizes baseName as permanently failed. Idempotent.
func (c *FailureCache) Record(baseName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.names[baseName]; ok {
		return nil
	}

	if err := appendLine(c.lock, c.path, baseName); err != nil {
		return fmt.Errorf("failed to record failure cache entry: %w", err)
	}
	c.names[baseName] = struct{}{}
	return nil
}

// Len returns the number of cached base names.
func (c *FailureCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.names)
}
