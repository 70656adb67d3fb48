package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks github.com/lakshitcodes/DocuMed/internal/vectorstore VectorStore

import (
	"context"

	"github.com/lakshitcodes/DocuMed/internal/paper"
)

// Point represents an embedded chunk with its text and paper metadata.
type Point struct {
	ID   string
	Vec  []float32
	Text string
	Meta paper.Ref
}

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Text    string
	Meta    paper.Ref
}

// VectorStore defines the interface for vector storage operations.
// Entries are append-only.
type VectorStore interface {
	// Upsert appends points. A batch is stored atomically.
	Upsert(ctx context.Context, points []Point) error

	// Search returns up to k points ordered by descending cosine similarity.
	// An empty store yields no results and no error.
	Search(ctx context.Context, query []float32, k int) ([]SearchResult, error)

	// Count returns the number of stored points.
	Count(ctx context.Context) (int, error)
}
