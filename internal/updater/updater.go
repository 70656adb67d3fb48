// Package updater runs the harvest and index pipeline, either on demand or
// on a fixed interval, with at most one update in flight.
package updater

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_updater.go -package=mocks github.com/lakshitcodes/DocuMed/internal/updater Harvester,RecordIndexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lakshitcodes/DocuMed/internal/config"
	"github.com/lakshitcodes/DocuMed/internal/contextutil"
	"github.com/lakshitcodes/DocuMed/internal/harvest"
	"github.com/lakshitcodes/DocuMed/internal/indexer"
	"github.com/lakshitcodes/DocuMed/internal/paper"
	"github.com/lakshitcodes/DocuMed/internal/storage"
)

// ErrUpdateInProgress is returned when an update is requested while another runs.
var ErrUpdateInProgress = errors.New("update already in progress")

// Harvester fetches the configured sources.
type Harvester interface {
	Harvest(ctx context.Context, sources []config.Source) (*harvest.Result, error)
}

// RecordIndexer chunks and indexes harvested records.
type RecordIndexer interface {
	IndexRecords(ctx context.Context, records []paper.Record) (*indexer.IndexingStats, error)
}

// Report is the outcome of one update.
type Report struct {
	Run    *storage.HarvestRun
	Result *harvest.Result
	Stats  *indexer.IndexingStats
}

// Updater serializes updates. The harvest result is always indexed even when
// some sources fail; the schedule only advances when indexing succeeds.
type Updater struct {
	harvester Harvester
	indexer   RecordIndexer
	runs      storage.RunStore
	sources   []config.Source
	state     *StateFile
	interval  time.Duration
	now       func() time.Time
	logger    *slog.Logger

	mu      sync.Mutex
	running atomic.Bool
}

// Option configures an Updater.
type Option func(*Updater)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(u *Updater) {
		u.now = now
	}
}

// WithLogger sets the fallback logger.
func WithLogger(logger *slog.Logger) Option {
	return func(u *Updater) {
		u.logger = logger
	}
}

// New creates an Updater.
func New(h Harvester, ix RecordIndexer, runs storage.RunStore, sources []config.Source, state *StateFile, interval time.Duration, opts ...Option) *Updater {
	u := &Updater{
		harvester: h,
		indexer:   ix,
		runs:      runs,
		sources:   sources,
		state:     state,
		interval:  interval,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Updater) getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(contextutil.LoggerKey()).(*slog.Logger); ok {
		return l
	}
	return u.logger
}

// InProgress reports whether an update is running.
func (u *Updater) InProgress() bool {
	return u.running.Load()
}

// Interval returns the time between scheduled updates.
func (u *Updater) Interval() time.Duration {
	return u.interval
}

// State returns the last persisted schedule.
func (u *Updater) State() State {
	return u.state.Current()
}

// Run performs one update synchronously. It returns ErrUpdateInProgress
// without waiting when another update holds the lock.
func (u *Updater) Run(ctx context.Context) (*Report, error) {
	if !u.mu.TryLock() {
		return nil, ErrUpdateInProgress
	}
	defer u.mu.Unlock()
	return u.run(ctx)
}

// Trigger starts an update in the background and returns once the lock is
// held. The update outlives ctx cancellation.
func (u *Updater) Trigger(ctx context.Context) error {
	if !u.mu.TryLock() {
		return ErrUpdateInProgress
	}
	bg := context.WithoutCancel(ctx)
	go func() {
		defer u.mu.Unlock()
		if _, err := u.run(bg); err != nil {
			u.getLogger(bg).ErrorContext(bg, "triggered update failed", "error", err)
		}
	}()
	return nil
}

// run must be called with u.mu held.
func (u *Updater) run(ctx context.Context) (*Report, error) {
	u.running.Store(true)
	defer u.running.Store(false)

	logger := u.getLogger(ctx)
	started := u.now()
	logger.InfoContext(ctx, "update started", "sources", len(u.sources))

	run := &storage.HarvestRun{ID: uuid.NewString(), StartedAt: started}
	report := &Report{Run: run}

	result, harvestErr := u.harvester.Harvest(ctx, u.sources)
	report.Result = result

	var indexErr error
	if result != nil {
		run.RecordCount = len(result.Records)
		run.SnapshotPath = result.SnapshotPath
		run.Sources = sourceReports(result.Sources)
		report.Stats, indexErr = u.indexer.IndexRecords(ctx, result.Records)
		if report.Stats != nil {
			run.ChunkCount = report.Stats.ChunksIndexed
		}
	}

	runErr := errors.Join(harvestErr, indexErr)
	run.FinishedAt = u.now()
	if runErr != nil {
		run.Error = runErr.Error()
	}

	if err := u.runs.Create(ctx, run); err != nil {
		logger.ErrorContext(ctx, "failed to record harvest run", "run_id", run.ID, "error", err)
		runErr = errors.Join(runErr, fmt.Errorf("failed to record harvest run: %w", err))
	}

	if result != nil && indexErr == nil {
		next := State{LastUpdate: run.FinishedAt, NextUpdate: run.FinishedAt.Add(u.interval)}
		if err := u.state.Save(next); err != nil {
			logger.ErrorContext(ctx, "failed to save update state", "error", err)
			runErr = errors.Join(runErr, err)
		}
	}

	if runErr != nil {
		logger.ErrorContext(ctx, "update finished with errors", "run_id", run.ID, "records", run.RecordCount, "chunks", run.ChunkCount, "error", runErr)
		return report, runErr
	}
	logger.InfoContext(ctx, "update completed",
		"run_id", run.ID,
		"records", run.RecordCount,
		"chunks", run.ChunkCount,
		"duration_ms", run.FinishedAt.Sub(started).Milliseconds(),
	)
	return report, nil
}

// Start runs the update loop until ctx is done. The first update happens
// immediately when the persisted next update is missing or past due,
// otherwise at that time; later updates follow every interval. The returned
// channel is closed when the loop exits.
func (u *Updater) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		logger := u.getLogger(ctx)

		delay := u.untilDue()
		logger.InfoContext(ctx, "update loop started", "interval", u.interval.String(), "first_update_in", delay.String())

		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		u.runScheduled(ctx)

		ticker := time.NewTicker(u.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.InfoContext(ctx, "update loop stopped")
				return
			case <-ticker.C:
				u.runScheduled(ctx)
			}
		}
	}()
	return done
}

func (u *Updater) untilDue() time.Duration {
	next := u.state.Current().NextUpdate
	if next.IsZero() {
		return 0
	}
	if d := next.Sub(u.now()); d > 0 {
		return d
	}
	return 0
}

func (u *Updater) runScheduled(ctx context.Context) {
	logger := u.getLogger(ctx)
	_, err := u.Run(ctx)
	switch {
	case errors.Is(err, ErrUpdateInProgress):
		logger.InfoContext(ctx, "skipping scheduled update, another update is running")
	case err != nil:
		logger.ErrorContext(ctx, "scheduled update failed", "error", err)
	}
}

func sourceReports(in []harvest.SourceReport) []storage.SourceReport {
	out := make([]storage.SourceReport, len(in))
	for i, s := range in {
		out[i] = storage.SourceReport{
			Name:  s.Name,
			Type:  string(s.Type),
			URL:   s.URL,
			Count: s.Count,
		}
		if s.Err != nil {
			out[i].Error = s.Err.Error()
		}
	}
	return out
}
