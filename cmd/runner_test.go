package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hcollard/ytmirror/internal/shared"
	"github.com/urfave/cli/v3"
)

func TestNewRunner(t *testing.T) {
	t.Run("with all dependencies provided", func(t *testing.T) {
		config := shared.DefaultConfig()
		logger := shared.NewLogger(nil)
		output := &bytes.Buffer{}

		runner := NewRunner(RunnerOpts{Config: config, Logger: logger, Output: output})

		if runner.config != config {
			t.Error("expected config to be set")
		}
		if runner.logger != logger {
			t.Error("expected logger to be set")
		}
		if runner.output != output {
			t.Error("expected output to be set")
		}
	})

	t.Run("with nil config uses defaults", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		if runner.config == nil {
			t.Error("expected default config to be set")
		}
	})

	t.Run("with nil output uses stdout", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		if runner.output != os.Stdout {
			t.Error("expected output to default to os.Stdout")
		}
	})
}

func TestRegister(t *testing.T) {
	runner := NewRunner(RunnerOpts{})
	commands := runner.register()

	want := []string{"sync", "subs", "status", "check", "trailers", "setup"}
	if len(commands) != len(want) {
		t.Fatalf("register returned %d commands, want %d", len(commands), len(want))
	}
	for i, name := range want {
		if commands[i].Name != name {
			t.Errorf("commands[%d].Name = %q, want %q", i, commands[i].Name, name)
		}
	}
}

func TestSelectCollections(t *testing.T) {
	config := &shared.Config{Collections: []shared.CollectionConfig{
		{URL: "https://example.com/a", Name: "Show A", Season: "S01", Directory: "/media/a"},
		{URL: "https://example.com/b", Name: "Show B", Season: "S02", Directory: "/media/b"},
	}}

	t.Run("empty name selects all", func(t *testing.T) {
		colls, err := selectCollections(config, "")
		if err != nil {
			t.Fatalf("selectCollections failed: %v", err)
		}
		if len(colls) != 2 {
			t.Errorf("got %d collections, want 2", len(colls))
		}
	})

	t.Run("name narrows to one", func(t *testing.T) {
		colls, err := selectCollections(config, "Show B")
		if err != nil {
			t.Fatalf("selectCollections failed: %v", err)
		}
		if len(colls) != 1 || colls[0].Name != "Show B" || colls[0].Season != "S02" {
			t.Errorf("colls = %+v", colls)
		}
	})

	t.Run("unknown name errors", func(t *testing.T) {
		if _, err := selectCollections(config, "Show C"); !errors.Is(err, shared.ErrCollectionNotFound) {
			t.Errorf("expected ErrCollectionNotFound, got %v", err)
		}
	})
}

func TestWritePlain(t *testing.T) {
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Output: output})

	if err := runner.writePlain("fetched %d of %d\n", 2, 3); err != nil {
		t.Fatalf("writePlain failed: %v", err)
	}
	if output.String() != "fetched 2 of 3\n" {
		t.Errorf("output = %q", output.String())
	}
}

func newTestApp(runner *Runner) *cli.Command {
	return &cli.Command{Name: "ytmirror", Commands: runner.register()}
}

func TestSetupCommand(t *testing.T) {
	t.Run("writes example config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		output := &bytes.Buffer{}
		app := newTestApp(NewRunner(RunnerOpts{Output: output}))

		if err := app.Run(context.Background(), []string{"ytmirror", "setup", "--config", path}); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		if _, err := shared.LoadConfig(path); err != nil {
			t.Errorf("written config does not load: %v", err)
		}
		if !strings.Contains(output.String(), path) {
			t.Errorf("output = %q, want the written path", output.String())
		}
	})

	t.Run("refuses existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("log_level = \"warn\""), 0644); err != nil {
			t.Fatal(err)
		}
		app := newTestApp(NewRunner(RunnerOpts{Output: &bytes.Buffer{}}))

		if err := app.Run(context.Background(), []string{"ytmirror", "setup", "--config", path}); err == nil {
			t.Error("expected error for existing config")
		}
	})
}

func TestStatusCommand(t *testing.T) {
	dir := t.TempDir()
	config := shared.DefaultConfig()
	config.Collections = []shared.CollectionConfig{{
		URL: "https://example.com/p", Name: "Example Show", Season: "S01", Directory: dir,
	}}

	if err := os.WriteFile(filepath.Join(dir, "Example Show - S01E01 - First [aaaaaaaaaaa].mp4"), []byte("v"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "archive.txt"), []byte("youtube aaaaaaaaaaa\n"), 0644); err != nil {
		t.Fatal(err)
	}

	output := &bytes.Buffer{}
	app := newTestApp(NewRunner(RunnerOpts{Config: config, Output: output, Logger: shared.NewLogger(&bytes.Buffer{})}))

	if err := app.Run(context.Background(), []string{"ytmirror", "status"}); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(output.String(), "Example Show") {
		t.Errorf("status output missing collection name: %q", output.String())
	}
}
