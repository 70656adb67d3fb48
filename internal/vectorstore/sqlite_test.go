package vectorstore

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/lakshitcodes/DocuMed/internal/paper"
	"github.com/lakshitcodes/DocuMed/internal/storage"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "vectors.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return NewSQLiteStore(storage.NewEntryRepo(db))
}

func TestSQLiteStore_SearchEmpty(t *testing.T) {
	store := newTestSQLiteStore(t)

	results, err := store.Search(context.Background(), []float32{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("Search() on empty store error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search() on empty store returned %d results, want 0", len(results))
	}

	n, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}
}

func TestSQLiteStore_UpsertAndSearch(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	points := []Point{
		{ID: "x", Vec: []float32{1, 0, 0}, Text: "about x", Meta: paper.Ref{Title: "X paper", Source: "PubMed"}},
		{ID: "y", Vec: []float32{0, 1, 0}, Text: "about y", Meta: paper.Ref{Title: "Y paper", Source: "PubMed"}},
		{ID: "xy", Vec: []float32{1, 1, 0}, Text: "about x and y", Meta: paper.Ref{Title: "XY paper", Source: "arXiv"}},
		// Different dimension; skipped by search.
		{ID: "other", Vec: []float32{1, 0}, Text: "2d", Meta: paper.Ref{Title: "2D paper", Source: "arXiv"}},
	}
	if err := store.Upsert(ctx, points); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	results, err := store.Search(ctx, []float32{1, 0.1, 0}, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search() returned %d results, want 2", len(results))
	}
	if results[0].PointID != "x" || results[1].PointID != "xy" {
		t.Errorf("Search() order = [%s %s], want [x xy]", results[0].PointID, results[1].PointID)
	}
	if results[0].Score < results[1].Score {
		t.Error("Search() results should be ordered by descending score")
	}
	if results[1].Text != "about x and y" || results[1].Meta.Source != "arXiv" {
		t.Errorf("Search() result lost text or metadata: %+v", results[1])
	}

	// k larger than the store returns every comparable entry.
	all, err := store.Search(ctx, []float32{0, 0, 1}, 50)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Search() with large k returned %d results, want 3", len(all))
	}

	if _, err := store.Search(ctx, []float32{1, 0, 0}, 0); err == nil {
		t.Error("Search() with k=0 should return error")
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 1}, b: []float32{-1, -1}, want: -1},
		{name: "scale invariant", a: []float32{1, 2}, b: []float32{10, 20}, want: 1},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
		{name: "length mismatch", a: []float32{1}, b: []float32{1, 1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := float64(Cosine(tt.a, tt.b))
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}
