package vectorindex

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks github.com/lakshitcodes/DocuMed/internal/vectorindex Embedder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/lakshitcodes/DocuMed/internal/chunker"
	"github.com/lakshitcodes/DocuMed/internal/contextutil"
	"github.com/lakshitcodes/DocuMed/internal/paper"
	"github.com/lakshitcodes/DocuMed/internal/vectorstore"
)

// DefaultBatchSize is the number of chunk texts sent per embedding request.
const DefaultBatchSize = 32

// ErrMissingMetadata is returned when a chunk has no paper title.
var ErrMissingMetadata = errors.New("chunk has no paper metadata")

// Embedder turns texts into vectors, one per input, in input order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Hit is one search result.
type Hit struct {
	Text  string
	Meta  paper.Ref
	Score float32
}

// Index is the handle for the paper vector index. Upserts are serialized;
// searches may run concurrently with each other and with an upsert.
type Index struct {
	store     vectorstore.VectorStore
	embedder  Embedder
	batchSize int
	logger    *slog.Logger

	mu sync.Mutex
}

// Option configures an Index.
type Option func(*Index)

// WithBatchSize sets the embedding batch size.
func WithBatchSize(n int) Option {
	return func(ix *Index) {
		if n > 0 {
			ix.batchSize = n
		}
	}
}

// WithLogger sets the fallback logger.
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) {
		if logger != nil {
			ix.logger = logger
		}
	}
}

// New creates an Index over store using embedder for both build and query.
func New(store vectorstore.VectorStore, embedder Embedder, opts ...Option) *Index {
	ix := &Index{
		store:     store,
		embedder:  embedder,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// getLogger returns a logger from context or falls back to the index logger.
func (ix *Index) getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(contextutil.LoggerKey()).(*slog.Logger); ok {
		return l
	}
	return ix.logger
}

// Upsert embeds chunks and appends them to the store. It returns the number
// of chunks stored. All chunks are checked for metadata before anything is
// written; each embedding batch is stored atomically.
func (ix *Index) Upsert(ctx context.Context, chunks []chunker.Chunk) (int, error) {
	for i, c := range chunks {
		if c.Meta.Title == "" {
			return 0, fmt.Errorf("%w: chunk %d", ErrMissingMetadata, i)
		}
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	logger := ix.getLogger(ctx)
	stored := 0
	for start := 0; start < len(chunks); start += ix.batchSize {
		end := min(start+ix.batchSize, len(chunks))
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		vecs, err := ix.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return stored, fmt.Errorf("failed to embed chunks: %w", err)
		}
		if len(vecs) != len(batch) {
			return stored, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vecs), len(batch))
		}

		points := make([]vectorstore.Point, len(batch))
		for i, c := range batch {
			points[i] = vectorstore.Point{
				ID:   uuid.New().String(),
				Vec:  vecs[i],
				Text: c.Text,
				Meta: c.Meta,
			}
		}

		if err := ix.store.Upsert(ctx, points); err != nil {
			return stored, fmt.Errorf("failed to store chunks: %w", err)
		}
		stored += len(points)
	}

	logger.InfoContext(ctx, "indexed chunks", "count", stored)
	return stored, nil
}

// Search returns up to k hits ordered by descending cosine similarity.
// An empty index returns no hits without calling the embedder.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	empty, err := ix.IsEmpty(ctx)
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, nil
	}

	vecs, err := ix.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for 1 query", len(vecs))
	}

	results, err := ix.store.Search(ctx, vecs[0], k)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = Hit{Text: r.Text, Meta: r.Meta, Score: r.Score}
	}
	ix.getLogger(ctx).DebugContext(ctx, "index search", "k", k, "hits", len(hits))
	return hits, nil
}

// Count returns the number of indexed chunks.
func (ix *Index) Count(ctx context.Context) (int, error) {
	n, err := ix.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count index entries: %w", err)
	}
	return n, nil
}

// IsEmpty reports whether nothing has been indexed yet.
func (ix *Index) IsEmpty(ctx context.Context) (bool, error) {
	n, err := ix.Count(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
