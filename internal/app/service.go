// Package service provides the core business service that implements
// the dependencies required by the HTTP API. It composes the results
// loader, the standings pipeline, and the published snapshot store.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	repository "github.com/okian/chalk/internal/adapters/repository"
	"github.com/okian/chalk/internal/domain/appearance"
	"github.com/okian/chalk/internal/domain/division"
	"github.com/okian/chalk/internal/domain/league"
	"github.com/okian/chalk/internal/domain/types"
	"github.com/okian/chalk/internal/ingest"
	"github.com/okian/chalk/pkg/logger"
	"github.com/okian/chalk/pkg/metrics"
)

// Service implements the API dependencies for the league standings system.
type Service struct {
	mu sync.RWMutex

	// Core components
	loader    *ingest.Loader
	standings repository.Store

	// Configuration
	resultsPath   string
	appearanceCap int
	divisionOrder []division.Division
	leagueInfo    league.Info

	// State
	started   bool
	lastBuild time.Time
	lastErr   error

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithResultsPath sets the CSV file the service ingests results from.
func WithResultsPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.resultsPath = path
		}
	}
}

// WithAppearanceCap sets how many meet results per lifter count toward
// the standings.
func WithAppearanceCap(cap int) Option {
	return func(s *Service) {
		if cap > 0 {
			s.appearanceCap = cap
		}
	}
}

// WithDivisionOrder sets the display order divisions are listed in.
func WithDivisionOrder(order []division.Division) Option {
	return func(s *Service) {
		if len(order) > 0 {
			s.divisionOrder = order
		}
	}
}

// WithLeagueInfo sets the league metadata served on the info endpoint.
func WithLeagueInfo(info league.Info) Option {
	return func(s *Service) {
		s.leagueInfo = info
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		resultsPath:   "results.csv",
		appearanceCap: appearance.DefaultCap,
		divisionOrder: division.Order(),
		leagueInfo:    league.DefaultInfo(),
		logger:        nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components and attempts the first
// standings build. A failed first build is not fatal: the service
// starts empty and serves errors until a reload succeeds, so a missing
// results file can be dropped in later and picked up by the watcher.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting league standings service...")

	// Initialize components
	s.loader = ingest.NewLoader()
	s.standings = repository.NewSnapStore(
		repository.WithDivisionOrder(s.divisionOrder),
	)

	s.started = true
	s.logger.Info(ctx, "league standings service started",
		logger.String("resultsPath", s.resultsPath),
		logger.Int("appearanceCap", s.appearanceCap),
		logger.Int("divisions", len(s.divisionOrder)),
	)
	s.mu.Unlock()

	if err := s.Reload(ctx); err != nil {
		s.logger.Warn(ctx, "initial standings build failed, serving empty",
			logger.Error(err),
		)
	}

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping league standings service...")

	if s.loader != nil {
		s.loader.ClearCache()
	}

	s.started = false
	s.logger.Info(context.Background(), "league standings service stopped")
}

// Reload re-ingests the results file and rebuilds the standings. On any
// failure the previously published snapshot stays in place and the
// error is retained for LastBuildError. Satisfies the watcher's
// Reloader interface.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.RLock()
	loader, standings := s.loader, s.standings
	path, cap := s.resultsPath, s.appearanceCap
	s.mu.RUnlock()

	if loader == nil || standings == nil {
		return ErrNotStarted
	}

	start := time.Now()

	dataset, err := loader.Load(ctx, path)
	if err != nil {
		metrics.RecordReloadError()
		s.recordBuild(time.Time{}, err)
		s.logger.Error(ctx, "results ingest failed",
			logger.String("path", path),
			logger.Error(err),
		)
		return fmt.Errorf("load results: %w", err)
	}

	table, err := league.Build(ctx, dataset.Records,
		league.WithAppearanceCap(cap),
	)
	if err != nil {
		metrics.RecordStandingsBuildError(buildFailureReason(err))
		metrics.RecordReloadError()
		s.recordBuild(time.Time{}, err)
		s.logger.Error(ctx, "standings build failed",
			logger.String("dataset", dataset.ID),
			logger.Error(err),
		)
		return fmt.Errorf("build standings: %w", err)
	}

	standings.Publish(ctx, table)

	built := time.Now()
	metrics.RecordStandingsBuild()
	metrics.RecordStandingsBuildDuration(float64(built.Sub(start).Milliseconds()))
	metrics.UpdateStandingsLastBuildUnix(float64(built.Unix()))
	metrics.RecordReload()
	s.recordBuild(built, nil)

	s.logger.Info(ctx, "standings rebuilt",
		logger.String("dataset", dataset.ID),
		logger.Int("records", table.Diagnostics.InputRecords),
		logger.Int("rows", table.Diagnostics.Rows),
		logger.Int("unclassifiable", table.Diagnostics.Unclassifiable),
		logger.Int("capped", table.Diagnostics.Capped),
		logger.Int("skipped", dataset.Skipped.Total()),
		logger.Duration("took", built.Sub(start)),
	)
	return nil
}

// recordBuild retains the outcome of the latest build attempt.
func (s *Service) recordBuild(built time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		s.lastBuild = built
	}
	s.lastErr = err
}

// buildFailureReason maps a build error to a metrics label.
func buildFailureReason(err error) string {
	switch {
	case errors.Is(err, league.ErrNoResults):
		return "no_results"
	case errors.Is(err, league.ErrNoQualifiers):
		return "no_qualifiers"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}

// Divisions returns the division names in display order.
func (s *Service) Divisions(ctx context.Context) []string {
	return s.standings.Divisions(ctx)
}

// Leaderboard returns the ranked rows for one division. A limit of
// zero returns the whole division.
func (s *Service) Leaderboard(ctx context.Context, div string, limit int) ([]types.Entry, error) {
	return s.standings.Leaderboard(ctx, div, limit)
}

// Lifter returns a lifter's entry in every division they appear in.
func (s *Service) Lifter(ctx context.Context, name string) ([]types.Entry, error) {
	return s.standings.Lifter(ctx, name)
}

// Summary returns the publish time and diagnostics of the current
// standings.
func (s *Service) Summary(ctx context.Context) (repository.Summary, error) {
	return s.standings.Summary(ctx)
}

// LeagueInfo returns the league metadata with the effective appearance
// cap, which config may have changed from the metadata default.
func (s *Service) LeagueInfo() league.Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info := s.leagueInfo
	info.AppearanceCap = s.appearanceCap
	return info
}

// LastBuildError returns the error from the most recent build attempt,
// or nil when it succeeded.
func (s *Service) LastBuildError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":       s.started,
		"resultsPath":   s.resultsPath,
		"appearanceCap": s.appearanceCap,
	}

	if s.standings != nil {
		stats["lifters"] = s.standings.Count(ctx)
		stats["divisions"] = len(s.standings.Divisions(ctx))
	}
	if s.loader != nil {
		stats["cachedDatasets"] = s.loader.Size()
	}
	if !s.lastBuild.IsZero() {
		stats["lastBuildAt"] = s.lastBuild.UTC().Format(time.RFC3339)
	}
	if s.lastErr != nil {
		stats["lastBuildError"] = s.lastErr.Error()
	}

	return stats
}
