package vectorstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lakshitcodes/DocuMed/internal/contextutil"
	"github.com/lakshitcodes/DocuMed/internal/storage"
)

// entryStore is the subset of storage.EntryRepo used by SQLiteStore.
type entryStore interface {
	InsertBatch(ctx context.Context, entries []storage.VectorEntry) error
	Count(ctx context.Context) (int, error)
	ForEach(ctx context.Context, fn func(storage.VectorEntry) error) error
}

// SQLiteStore implements VectorStore on the vector_entries table.
// Search is a full scan ranked by cosine similarity.
type SQLiteStore struct {
	entries entryStore
	logger  *slog.Logger
}

// NewSQLiteStore creates a SQLite-backed vector store.
func NewSQLiteStore(entries *storage.EntryRepo) *SQLiteStore {
	return &SQLiteStore{
		entries: entries,
		logger:  slog.Default(),
	}
}

// getLogger returns a logger from context or falls back to the store's logger.
func (s *SQLiteStore) getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(contextutil.LoggerKey()).(*slog.Logger); ok {
		return l
	}
	return s.logger
}

// Upsert appends points in one transaction.
func (s *SQLiteStore) Upsert(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	entries := make([]storage.VectorEntry, len(points))
	for i, p := range points {
		entries[i] = storage.VectorEntry{
			ID:        p.ID,
			Text:      p.Text,
			Meta:      p.Meta,
			Embedding: p.Vec,
		}
	}

	if err := s.entries.InsertBatch(ctx, entries); err != nil {
		s.getLogger(ctx).ErrorContext(ctx, "failed to upsert points", "count", len(points), "error", err)
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	s.getLogger(ctx).InfoContext(ctx, "upserted points", "backend", "sqlite", "count", len(points))
	return nil
}

// Search scans every entry and returns the k most similar.
func (s *SQLiteStore) Search(ctx context.Context, query []float32, k int) ([]SearchResult, error) {
	logger := s.getLogger(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	var (
		results    []SearchResult
		mismatched int
	)
	err := s.entries.ForEach(ctx, func(e storage.VectorEntry) error {
		if len(e.Embedding) != len(query) {
			mismatched++
			return nil
		}
		results = append(results, SearchResult{
			PointID: e.ID,
			Score:   Cosine(query, e.Embedding),
			Text:    e.Text,
			Meta:    e.Meta,
		})
		return nil
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to search points", "k", k, "error", err)
		return nil, fmt.Errorf("failed to search points: %w", err)
	}
	if mismatched > 0 {
		logger.WarnContext(ctx, "skipped entries with mismatched dimension", "count", mismatched, "query_dim", len(query))
	}

	results = topK(results, k)
	logger.DebugContext(ctx, "search completed", "backend", "sqlite", "k", k, "results", len(results))
	return results, nil
}

// Count returns the number of stored entries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	n, err := s.entries.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count points: %w", err)
	}
	return n, nil
}
