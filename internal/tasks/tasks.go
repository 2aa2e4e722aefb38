// package tasks implements the incremental sync pipeline: cursor computation,
// the quality-fallback fetch cascade, compatibility validation, metadata
// tagging, and the subtitle recovery sweep.
//
// The Engine owns no per-collection state; archive stores, failure caches and
// audit logs are opened per collection inside SyncCollection so independent
// collections can run on concurrent workers with no shared mutable state.
package tasks

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hcollard/ytmirror/internal/models"
	"github.com/hcollard/ytmirror/internal/repositories"
	"github.com/hcollard/ytmirror/internal/services"
	"github.com/hcollard/ytmirror/internal/shared"
	"golang.org/x/time/rate"
)

// Engine orchestrates sync runs over the injected tool kit.
type Engine struct {
	tooling       services.Tooling
	index         *repositories.MediaIndex
	policy        models.CompliancePolicy
	profiles      []string
	retryInterval time.Duration
	subtitleLangs []string
	limiter       *rate.Limiter
	logger        *log.Logger
	runID         string
}

// EngineOpts contains the dependencies and tunables for an Engine.
type EngineOpts struct {
	Tooling          services.Tooling
	Index            *repositories.MediaIndex
	Policy           models.CompliancePolicy
	Profiles         []string
	RetryInterval    time.Duration
	SubtitleLangs    []string
	FetchesPerMinute int
	Logger           *log.Logger
}

// NewEngine creates an Engine for one run.
func NewEngine(opts EngineOpts) *Engine {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 30 * time.Second
	}

	var limiter *rate.Limiter
	if opts.FetchesPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.FetchesPerMinute)), 1)
	}

	return &Engine{
		tooling:       opts.Tooling,
		index:         opts.Index,
		policy:        opts.Policy,
		profiles:      opts.Profiles,
		retryInterval: opts.RetryInterval,
		subtitleLangs: opts.SubtitleLangs,
		limiter:       limiter,
		logger:        opts.Logger,
		runID:         shared.GenerateRunID(),
	}
}

// RunID identifies this engine's run in audit log entries.
func (e *Engine) RunID() string {
	return e.runID
}
