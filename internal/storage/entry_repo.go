package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lakshitcodes/DocuMed/internal/paper"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// EntryRepo stores vector entries in the vector_entries table.
type EntryRepo struct {
	db *sql.DB
}

// NewEntryRepo creates a new EntryRepo.
func NewEntryRepo(db *sql.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

// InsertBatch appends entries in a single transaction, so readers see either
// the whole batch or none of it.
func (r *EntryRepo) InsertBatch(ctx context.Context, entries []VectorEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO vector_entries (id, text, title, url, source, date, dim, embedding) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			e.ID, e.Text, e.Meta.Title, e.Meta.URL, e.Meta.Source, e.Meta.Date,
			len(e.Embedding), FloatsToBytes(e.Embedding),
		); err != nil {
			return fmt.Errorf("failed to insert vector entry %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vector entries: %w", err)
	}
	return nil
}

// Count returns the number of stored entries.
func (r *EntryRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vector_entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count vector entries: %w", err)
	}
	return n, nil
}

// ForEach calls fn for every entry in insertion order. A non-nil error from fn stops the scan.
func (r *EntryRepo) ForEach(ctx context.Context, fn func(VectorEntry) error) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, text, title, url, source, date, embedding FROM vector_entries ORDER BY seq",
	)
	if err != nil {
		return fmt.Errorf("failed to query vector entries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			e    VectorEntry
			meta paper.Ref
			blob []byte
		)
		if err := rows.Scan(&e.ID, &e.Text, &meta.Title, &meta.URL, &meta.Source, &meta.Date, &blob); err != nil {
			return fmt.Errorf("failed to scan vector entry: %w", err)
		}
		e.Meta = meta
		if e.Embedding, err = BytesToFloats(blob); err != nil {
			return fmt.Errorf("failed to decode vector entry %s: %w", e.ID, err)
		}
		if err := fn(e); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating vector entries: %w", err)
	}
	return nil
}
