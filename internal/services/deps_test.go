package services

import (
	"errors"
	"testing"

	"github.com/hcollard/ytmirror/internal/shared"
)

func TestCheckBinaries(t *testing.T) {
	t.Run("missing binary reported", func(t *testing.T) {
		results := CheckBinaries([]Requirement{
			{Name: "fetcher", Command: "definitely-not-installed-anywhere"},
		})
		if len(results) != 1 {
			t.Fatalf("got %d results, want 1", len(results))
		}
		if results[0].Available {
			t.Error("nonexistent binary should not be available")
		}
		if results[0].Detail == "" {
			t.Error("missing binary should carry a detail message")
		}
	})

	t.Run("unconfigured command reported", func(t *testing.T) {
		results := CheckBinaries([]Requirement{{Name: "fetcher", Command: "  "}})
		if results[0].Available {
			t.Error("blank command should not be available")
		}
	})

	t.Run("shell resolves", func(t *testing.T) {
		// sh is present on every platform the pipeline targets.
		results := CheckBinaries([]Requirement{{Name: "shell", Command: "sh"}})
		if !results[0].Available {
			t.Skipf("sh not on PATH: %s", results[0].Detail)
		}
	})
}

func TestVerifyBinaries(t *testing.T) {
	t.Run("missing required binary is fatal", func(t *testing.T) {
		err := VerifyBinaries([]Requirement{
			{Name: "fetcher", Command: "definitely-not-installed-anywhere"},
		})
		if !errors.Is(err, shared.ErrMissingTool) {
			t.Errorf("expected ErrMissingTool, got %v", err)
		}
	})

	t.Run("missing optional binary passes", func(t *testing.T) {
		err := VerifyBinaries([]Requirement{
			{Name: "extra", Command: "definitely-not-installed-anywhere", Optional: true},
		})
		if err != nil {
			t.Errorf("optional binary should not be fatal: %v", err)
		}
	})
}

func TestRequirements(t *testing.T) {
	reqs := Requirements("yt-dlp", "ffmpeg", "ffprobe")
	if len(reqs) != 3 {
		t.Fatalf("got %d requirements, want 3", len(reqs))
	}
	for _, req := range reqs {
		if req.Optional {
			t.Errorf("%s should be required", req.Name)
		}
	}
}
