// Package harvest fetches every configured source, extracts paper records
// and writes the dated snapshot for the run.
package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lakshitcodes/DocuMed/internal/config"
	"github.com/lakshitcodes/DocuMed/internal/contextutil"
	"github.com/lakshitcodes/DocuMed/internal/extractor"
	"github.com/lakshitcodes/DocuMed/internal/paper"
)

// DefaultConcurrency is the number of sources fetched at once.
const DefaultConcurrency = 4

// Fetcher downloads a source document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// SnapshotWriter persists the records of one run under its date.
type SnapshotWriter interface {
	Write(date time.Time, records []paper.Record) (string, error)
}

// SourceError is a source-level failure. The source contributes no records
// and the harvest continues with the others.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// SourceReport is the outcome of one configured source.
type SourceReport struct {
	Name  string
	Type  paper.SourceType // empty when the type could not be resolved
	URL   string
	Count int
	Err   error // *SourceError, nil on success
}

// Result is the outcome of one harvest.
type Result struct {
	Records      []paper.Record
	Sources      []SourceReport
	SnapshotPath string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Failed returns how many sources contributed no records because of an error.
func (r *Result) Failed() int {
	n := 0
	for _, s := range r.Sources {
		if s.Err != nil {
			n++
		}
	}
	return n
}

// Coordinator runs harvests.
type Coordinator struct {
	fetcher     Fetcher
	registry    extractor.Registry
	snapshots   SnapshotWriter
	concurrency int
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithConcurrency bounds the number of sources fetched in parallel.
func WithConcurrency(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithClock replaces time.Now, which dates the snapshot.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// WithLogger sets the fallback logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// New creates a Coordinator.
func New(fetcher Fetcher, registry extractor.Registry, snapshots SnapshotWriter, opts ...Option) *Coordinator {
	c := &Coordinator{
		fetcher:     fetcher,
		registry:    registry,
		snapshots:   snapshots,
		concurrency: DefaultConcurrency,
		now:         time.Now,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(contextutil.LoggerKey()).(*slog.Logger); ok {
		return l
	}
	return c.logger
}

// Harvest fetches and extracts every source, then writes the snapshot for
// the run date. Failing sources are reported in Result.Sources and never
// abort the run; when all fail Records is empty. A snapshot write failure is
// returned together with the result.
func (c *Coordinator) Harvest(ctx context.Context, sources []config.Source) (*Result, error) {
	logger := c.getLogger(ctx)

	res := &Result{
		Sources:   make([]SourceReport, len(sources)),
		StartedAt: c.now(),
	}
	logger.InfoContext(ctx, "harvest started", "sources", len(sources), "concurrency", c.concurrency)

	perSource := make([][]paper.Record, len(sources))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, src := range sources {
		g.Go(func() error {
			records, srcType, err := c.harvestSource(ctx, src)
			report := SourceReport{Name: src.Name, Type: srcType, URL: src.URL, Count: len(records)}
			if err != nil {
				report.Err = &SourceError{Source: src.Name, Err: err}
				logger.WarnContext(ctx, "source failed", "source", src.Name, "url", src.URL, "error", err)
			} else {
				logger.InfoContext(ctx, "source harvested", "source", src.Name, "type", srcType, "records", len(records))
			}
			res.Sources[i] = report
			perSource[i] = records
			return nil
		})
	}
	_ = g.Wait()

	res.Records = make([]paper.Record, 0)
	for _, records := range perSource {
		res.Records = append(res.Records, records...)
	}

	path, err := c.snapshots.Write(res.StartedAt, res.Records)
	res.FinishedAt = c.now()
	if err != nil {
		logger.ErrorContext(ctx, "failed to write snapshot", "error", err)
		return res, fmt.Errorf("failed to write snapshot: %w", err)
	}
	res.SnapshotPath = path

	logger.InfoContext(ctx, "harvest completed",
		"records", len(res.Records),
		"failed_sources", res.Failed(),
		"snapshot", path,
		"duration_ms", res.FinishedAt.Sub(res.StartedAt).Milliseconds(),
	)
	return res, nil
}

func (c *Coordinator) harvestSource(ctx context.Context, src config.Source) ([]paper.Record, paper.SourceType, error) {
	srcType, err := extractor.Resolve(src.Type, src.URL)
	if err != nil {
		return nil, "", err
	}
	ex, err := c.registry.For(srcType)
	if err != nil {
		return nil, srcType, err
	}

	doc, err := c.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, srcType, fmt.Errorf("failed to fetch: %w", err)
	}

	records, err := ex.Extract(doc, src.URL)
	if err != nil {
		return nil, srcType, fmt.Errorf("failed to extract: %w", err)
	}
	return records, srcType, nil
}
