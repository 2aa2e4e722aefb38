package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hcollard/ytmirror/internal/models"
	"github.com/hcollard/ytmirror/internal/services"
	"github.com/hcollard/ytmirror/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	tooling services.Tooling
	logger  *log.Logger
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Tooling services.Tooling
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		tooling: opts.Tooling,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		syncCommand, subsCommand, statusCommand, checkCommand, trailersCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// resolveConfig loads the configuration from the command's --config flag,
// falling back to the config the Runner was constructed with.
func (r *Runner) resolveConfig(cmd *cli.Command) (*shared.Config, error) {
	path := cmd.String("config")
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			config, err := shared.LoadConfig(path)
			if err != nil {
				return nil, err
			}
			return config, nil
		}
	}
	return r.config, nil
}

// resolveTooling returns the injected tool kit or builds the production one
// from the configured binaries.
func (r *Runner) resolveTooling(config *shared.Config) services.Tooling {
	if r.tooling != nil {
		return r.tooling
	}
	return services.NewKit(config.Tools.Fetcher, config.Tools.FFmpeg, config.Tools.FFprobe)
}

// openIndex opens the media index database and applies pending migrations.
func (r *Runner) openIndex(config *shared.Config) (*sql.DB, error) {
	db, err := shared.NewDatabase(config.Index.Path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, config.Index.MaxOpenConns, config.Index.MaxIdleConns)
	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// selectCollections narrows the configured collections to the --collection
// flag when present.
func selectCollections(config *shared.Config, name string) ([]models.Collection, error) {
	var configs []shared.CollectionConfig
	if name == "" {
		configs = config.Collections
	} else {
		coll, err := config.Collection(name)
		if err != nil {
			return nil, err
		}
		configs = []shared.CollectionConfig{*coll}
	}

	colls := make([]models.Collection, len(configs))
	for i, c := range configs {
		colls[i] = models.Collection{
			URL:          c.URL,
			Name:         c.Name,
			Season:       c.Season,
			Directory:    c.Directory,
			LogDirectory: c.LogDirectory,
		}
	}
	return colls, nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
