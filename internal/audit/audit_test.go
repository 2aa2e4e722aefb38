package audit

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLog(t *testing.T) {
	t.Run("fresh file starts with BOM", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "show.log")
		l, err := Open(path)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer l.Close()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, bom) {
			t.Errorf("fresh log should start with BOM, got % x", data[:min(3, len(data))])
		}
	})

	t.Run("reopen does not duplicate BOM", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "show.log")
		l, err := Open(path)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		l.Printf("first run")
		l.Close()

		l2, err := Open(path)
		if err != nil {
			t.Fatalf("reopen failed: %v", err)
		}
		l2.Printf("second run")
		l2.Close()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if bytes.Count(data, bom) != 1 {
			t.Errorf("log should carry exactly one BOM, found %d", bytes.Count(data, bom))
		}
	})

	t.Run("entries are timestamp tab message lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "show.log")
		l, err := Open(path)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		fixed := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
		l.now = func() time.Time { return fixed }

		if err := l.Printf("fetched position=%d id=%s", 3, "dQw4w9WgXcQ"); err != nil {
			t.Fatalf("Printf failed: %v", err)
		}
		l.Close()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		content := strings.TrimPrefix(string(data), string(bom))
		want := "2024-01-15T10:30:00Z\tfetched position=3 id=dQw4w9WgXcQ\n"
		if content != want {
			t.Errorf("entry = %q, want %q", content, want)
		}
	})

	t.Run("appends preserve earlier entries", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "show.log")
		l, err := Open(path)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		l.Printf("one")
		l.Printf("two")
		l.Close()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(string(data), string(bom)), "\n"), "\n")
		if len(lines) != 2 {
			t.Fatalf("got %d lines, want 2", len(lines))
		}
		for i, line := range lines {
			ts, _, ok := strings.Cut(line, "\t")
			if !ok {
				t.Errorf("line %d missing tab separator: %q", i, line)
				continue
			}
			if _, err := time.Parse(time.RFC3339, ts); err != nil {
				t.Errorf("line %d timestamp %q not RFC3339: %v", i, ts, err)
			}
		}
	})
}
