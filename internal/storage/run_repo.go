package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_run_store.go -package=mocks github.com/lakshitcodes/DocuMed/internal/storage RunStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RunStore defines the interface for harvest run history.
type RunStore interface {
	// Create inserts a run together with its per-source reports.
	Create(ctx context.Context, run *HarvestRun) error
	// Latest returns the most recently started run. Returns ErrNotFound if none exist.
	Latest(ctx context.Context) (*HarvestRun, error)
	// List returns up to limit runs, newest first, without source reports.
	List(ctx context.Context, limit int) ([]HarvestRun, error)
}

// RunRepo provides methods for harvest run operations.
// It implements the RunStore interface.
type RunRepo struct {
	db *sql.DB
}

// NewRunRepo creates a new RunRepo.
func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

// Create inserts a run and its source reports in one transaction.
// run.ID must be set before calling this method.
func (r *RunRepo) Create(ctx context.Context, run *HarvestRun) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO harvest_runs (id, started_at, finished_at, record_count, chunk_count, snapshot_path, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(time.RFC3339Nano), run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.RecordCount, run.ChunkCount, run.SnapshotPath, run.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to insert harvest run: %w", err)
	}

	for i, s := range run.Sources {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO source_reports (run_id, position, name, type, url, record_count, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, s.Name, s.Type, s.URL, s.Count, s.Error,
		)
		if err != nil {
			return fmt.Errorf("failed to insert source report: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit harvest run: %w", err)
	}
	return nil
}

// Latest returns the most recently started run with its source reports.
func (r *RunRepo) Latest(ctx context.Context) (*HarvestRun, error) {
	runs, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrNotFound
	}

	run := runs[0]
	run.Sources, err = r.sources(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// List returns up to limit runs, newest first.
func (r *RunRepo) List(ctx context.Context, limit int) ([]HarvestRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, record_count, chunk_count, snapshot_path, error
		 FROM harvest_runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query harvest runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	runs := []HarvestRun{}
	for rows.Next() {
		var (
			run                   HarvestRun
			startedAt, finishedAt string
			snapshotPath, runErr  sql.NullString
		)
		if err := rows.Scan(&run.ID, &startedAt, &finishedAt, &run.RecordCount, &run.ChunkCount, &snapshotPath, &runErr); err != nil {
			return nil, fmt.Errorf("failed to scan harvest run: %w", err)
		}
		if run.StartedAt, err = parseTime(startedAt); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseTime(finishedAt); err != nil {
			return nil, err
		}
		run.SnapshotPath = snapshotPath.String
		run.Error = runErr.String
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating harvest runs: %w", err)
	}
	return runs, nil
}

func (r *RunRepo) sources(ctx context.Context, runID string) ([]SourceReport, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name, type, url, record_count, error FROM source_reports WHERE run_id = ? ORDER BY position",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query source reports: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	reports := []SourceReport{}
	for rows.Next() {
		var (
			s      SourceReport
			srcErr sql.NullString
		)
		if err := rows.Scan(&s.Name, &s.Type, &s.URL, &s.Count, &srcErr); err != nil {
			return nil, fmt.Errorf("failed to scan source report: %w", err)
		}
		s.Error = srcErr.String
		reports = append(reports, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source reports: %w", err)
	}
	return reports, nil
}

// parseTime parses a stored timestamp. go-sqlite3 may hand DATETIME columns
// back in its own layout, so both forms are accepted.
func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse timestamp %q", s)
}
