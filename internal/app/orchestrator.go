package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/quantmind-br/xnpak/internal/cache"
	"github.com/quantmind-br/xnpak/internal/config"
	"github.com/quantmind-br/xnpak/internal/domain"
	"github.com/quantmind-br/xnpak/internal/importer"
	"github.com/quantmind-br/xnpak/internal/manifest"
	"github.com/quantmind-br/xnpak/internal/utils"
)

// Orchestrator coordinates building, rebuilding and cleaning pak content
type Orchestrator struct {
	config       *config.Config
	logger       *utils.Logger
	converter    importer.Converter
	cached       *cache.CachedConverter
	cache        domain.Cache
	ownsCache    bool
	workers      int
	showProgress bool
	progressOut  io.Writer

	mu    sync.Mutex
	state State
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	domain.CommonOptions
	Config *config.Config
	// Logger overrides the logger built from Config.Logging
	Logger *utils.Logger
	// Converter overrides the importer registry
	Converter importer.Converter
	// Cache overrides the cache opened from Config.Cache. The caller keeps
	// ownership and must close it.
	Cache domain.Cache
	// ProgressOutput is where the progress bar renders, stderr by default
	ProgressOutput io.Writer
}

// BuildResult summarizes a successful build
type BuildResult struct {
	RunID       string
	ContentDir  string
	Assets      int
	Bytes       int64
	CacheHits   int64
	CacheMisses int64
	Duration    time.Duration
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config

	// Validate config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logLevel := "info"
		logFormat := "auto"
		if cfg.Logging.Level != "" {
			logLevel = cfg.Logging.Level
		}
		if cfg.Logging.Format != "" {
			logFormat = cfg.Logging.Format
		}
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   logLevel,
			Format:  logFormat,
			Verbose: opts.Verbose,
		})
	}
	logger = logger.WithComponent("orchestrator")

	converter := opts.Converter
	if converter == nil {
		converter = importer.NewRegistry()
	}

	o := &Orchestrator{
		config:       cfg,
		logger:       logger,
		converter:    converter,
		workers:      cfg.Build.Workers,
		showProgress: opts.ShowProgress && cfg.Build.ShowProgress,
		progressOut:  opts.ProgressOutput,
		state:        StateIdle,
	}
	if opts.Workers > 0 {
		o.workers = opts.Workers
	}
	if o.workers < 1 {
		o.workers = 1
	}

	switch {
	case opts.Cache != nil:
		o.cache = opts.Cache
	case cfg.Cache.Enabled && !opts.NoCache:
		c, err := cache.NewBadgerCache(cache.Options{
			Directory: utils.ExpandPath(cfg.Cache.Directory),
		})
		if err != nil {
			// Another build may hold the cache directory; build without it
			logger.Warn().Err(err).Msg("Import cache unavailable, continuing without it")
		} else {
			o.cache = c
			o.ownsCache = true
		}
	}

	if o.cache != nil {
		o.cached = cache.NewCachedConverter(converter, o.cache, cfg.Cache.TTL, logger)
		o.converter = o.cached
	}

	return o, nil
}

// Close releases all resources held by the orchestrator
func (o *Orchestrator) Close() error {
	if o.cache != nil && o.ownsCache {
		return o.cache.Close()
	}
	return nil
}

// State returns the outcome of the most recent operation
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Run executes action against m. Clean returns a nil result.
func (o *Orchestrator) Run(ctx context.Context, action Action, m *manifest.Manifest) (*BuildResult, error) {
	switch action {
	case ActionBuild:
		return o.Build(ctx, m)
	case ActionRebuild:
		return o.Rebuild(ctx, m)
	case ActionClean:
		return nil, o.Clean(ctx, m)
	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}
}

// Build converts every asset into a freshly emptied content directory
func (o *Orchestrator) Build(ctx context.Context, m *manifest.Manifest) (*BuildResult, error) {
	if err := preflight(m); err != nil {
		o.setState(StateFailed)
		return nil, err
	}

	unlock, err := acquireLock(m)
	if err != nil {
		o.setState(StateFailed)
		return nil, err
	}
	defer unlock()

	result, err := o.build(ctx, m)
	o.finish(err)
	return result, err
}

// Rebuild cleans the content directory, purges the import cache and builds
func (o *Orchestrator) Rebuild(ctx context.Context, m *manifest.Manifest) (*BuildResult, error) {
	if err := preflight(m); err != nil {
		o.setState(StateFailed)
		return nil, err
	}

	unlock, err := acquireLock(m)
	if err != nil {
		o.setState(StateFailed)
		return nil, err
	}
	defer unlock()

	if err := o.clean(m); err != nil {
		o.setState(StateFailed)
		return nil, err
	}

	if o.cache != nil {
		entries := o.cache.Size()
		if err := o.cache.Clear(ctx); err != nil {
			o.logger.Warn().Err(err).Msg("Failed to purge import cache")
		} else {
			o.logger.Info().Int64("entries", entries).Msg("Import cache purged")
		}
	}

	result, err := o.build(ctx, m)
	o.finish(err)
	return result, err
}

// Clean removes the content directory. Cleaning a missing directory succeeds.
func (o *Orchestrator) Clean(ctx context.Context, m *manifest.Manifest) error {
	if m == nil {
		return fmt.Errorf("manifest is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock, err := acquireLock(m)
	if err != nil {
		o.setState(StateFailed)
		return err
	}
	defer unlock()

	if err := o.clean(m); err != nil {
		o.setState(StateFailed)
		return err
	}
	o.setState(StateIdle)
	return nil
}

func (o *Orchestrator) clean(m *manifest.Manifest) error {
	dir := m.ContentDir()
	existed := utils.DirExists(dir)
	var size int64
	if existed {
		size, _ = utils.DirSize(dir)
	}
	if err := utils.RemoveDir(dir); err != nil {
		return err
	}
	if existed {
		o.logger.Info().Str("dir", dir).Int64("bytes", size).Msg("Removed content directory")
	} else {
		o.logger.Debug().Str("dir", dir).Msg("Content directory already absent")
	}
	return nil
}

func (o *Orchestrator) finish(err error) {
	if err != nil {
		o.setState(StateFailed)
		return
	}
	o.setState(StateBuilt)
}

// preflight rejects manifests the builder cannot honor before anything is touched
func preflight(m *manifest.Manifest) error {
	if m == nil {
		return fmt.Errorf("manifest is required")
	}
	if m.Compress {
		return fmt.Errorf("%w: compressed pak output", domain.ErrNotImplemented)
	}
	return nil
}

func (o *Orchestrator) build(ctx context.Context, m *manifest.Manifest) (*BuildResult, error) {
	startTime := time.Now()
	runID := uuid.NewString()
	logger := o.logger.WithRunID(runID).WithManifest(m.Path)
	contentDir := m.ContentDir()
	plan := Plan(m)
	total := len(plan)

	logger.Info().
		Str("output", contentDir).
		Int("assets", total).
		Int("workers", o.workers).
		Msg("Starting build")

	for _, a := range m.CoercedAssets() {
		logger.Warn().
			Str("asset", a.Name).
			Str("declared_type", a.TypeName).
			Msg("Unknown asset type, importing as PlainText")
	}

	if err := utils.ResetDir(contentDir); err != nil {
		return nil, err
	}

	var before cache.Stats
	if o.cached != nil {
		before = o.cached.Stats()
	}

	var bar *progressbar.ProgressBar
	if o.showProgress {
		if o.progressOut != nil {
			bar = utils.NewProgressBarTo(o.progressOut, total, utils.DescBuilding)
		} else {
			bar = utils.NewProgressBar(total, utils.DescBuilding)
		}
	}

	buildCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var completed atomic.Int32
	var written atomic.Int64

	errs := utils.ParallelForEach(buildCtx, plan, o.workers, func(ctx context.Context, a PlannedAsset) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := o.buildAsset(ctx, a)
		if err != nil {
			err = domain.NewAssetError(a.Index, a.Name, err)
			cancel(err)
			return err
		}

		done := completed.Add(1)
		written.Add(int64(n))
		if bar != nil {
			_ = bar.Add(1)
		}
		logger.WithAsset(a.Name, a.Type.String()).Info().
			Int("bytes", n).
			Msgf("[%d/%d] Built asset", done, total)
		return nil
	})

	if err := buildFailure(ctx, buildCtx, errs); err != nil {
		if bar != nil {
			_ = bar.Exit()
		}
		if domain.IsCanceled(err) {
			logger.Info().Msg("Build canceled")
		} else {
			logger.Error().Err(err).Msg("Build failed")
		}
		if rmErr := utils.RemoveDir(contentDir); rmErr != nil {
			logger.Warn().Err(rmErr).Msg("Failed to remove partial content directory")
		}
		return nil, err
	}

	if bar != nil {
		_ = bar.Finish()
	}

	result := &BuildResult{
		RunID:      runID,
		ContentDir: contentDir,
		Assets:     int(completed.Load()),
		Bytes:      written.Load(),
		Duration:   time.Since(startTime),
	}
	if o.cached != nil {
		after := o.cached.Stats()
		result.CacheHits = after.Hits - before.Hits
		result.CacheMisses = after.Misses - before.Misses
	}

	logger.Info().
		Int("assets", result.Assets).
		Int64("bytes", result.Bytes).
		Int64("cache_hits", result.CacheHits).
		Dur("duration", result.Duration).
		Msg("Build completed")

	return result, nil
}

// buildAsset converts one asset and writes its pak file
func (o *Orchestrator) buildAsset(ctx context.Context, a PlannedAsset) (int, error) {
	data, err := o.converter.Convert(ctx, a.Type, a.Source)
	if err != nil {
		return 0, err
	}
	if err := utils.WriteFile(a.Output, data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// buildFailure reports why a build stopped early, if it did. Cancellation
// of the caller's context wins over asset failures it may have caused.
func buildFailure(parent, buildCtx context.Context, errs []error) error {
	if err := parent.Err(); err != nil {
		return err
	}
	if cause := context.Cause(buildCtx); cause != nil {
		var assetErr *domain.AssetError
		if errors.As(cause, &assetErr) {
			return assetErr
		}
		return cause
	}
	return utils.FirstError(errs)
}
