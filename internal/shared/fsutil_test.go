package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReplaceFileVerified(t *testing.T) {
	t.Run("swaps verified replacement into place", func(t *testing.T) {
		dir := t.TempDir()
		original := filepath.Join(dir, "file.mp4")
		replacement := filepath.Join(dir, "file.tagged.mp4")
		if err := os.WriteFile(original, []byte("old"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(replacement, []byte("new content"), 0644); err != nil {
			t.Fatal(err)
		}

		if err := ReplaceFileVerified(original, replacement); err != nil {
			t.Fatalf("ReplaceFileVerified failed: %v", err)
		}

		data, err := os.ReadFile(original)
		if err != nil {
			t.Fatalf("original missing after replace: %v", err)
		}
		if string(data) != "new content" {
			t.Errorf("original content = %q, want replacement content", data)
		}
		if FileExists(replacement) {
			t.Error("replacement should have been moved away")
		}
	})

	t.Run("missing replacement leaves original untouched", func(t *testing.T) {
		dir := t.TempDir()
		original := filepath.Join(dir, "file.mp4")
		if err := os.WriteFile(original, []byte("old"), 0644); err != nil {
			t.Fatal(err)
		}

		err := ReplaceFileVerified(original, filepath.Join(dir, "absent.mp4"))
		if !errors.Is(err, ErrReplacementMissing) {
			t.Errorf("expected ErrReplacementMissing, got %v", err)
		}
		data, _ := os.ReadFile(original)
		if string(data) != "old" {
			t.Errorf("original mutated: %q", data)
		}
	})

	t.Run("empty replacement rejected and removed", func(t *testing.T) {
		dir := t.TempDir()
		original := filepath.Join(dir, "file.mp4")
		replacement := filepath.Join(dir, "file.tagged.mp4")
		if err := os.WriteFile(original, []byte("old"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(replacement, nil, 0644); err != nil {
			t.Fatal(err)
		}

		err := ReplaceFileVerified(original, replacement)
		if !errors.Is(err, ErrReplacementMissing) {
			t.Errorf("expected ErrReplacementMissing, got %v", err)
		}
		data, _ := os.ReadFile(original)
		if string(data) != "old" {
			t.Errorf("original mutated: %q", data)
		}
		if FileExists(replacement) {
			t.Error("empty replacement should be cleaned up")
		}
	})
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(path) {
		t.Error("FileExists should report regular file")
	}
	if FileExists(filepath.Join(dir, "absent.txt")) {
		t.Error("FileExists should reject missing path")
	}
	if FileExists(dir) {
		t.Error("FileExists should reject directories")
	}
}
