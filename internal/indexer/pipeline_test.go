package indexer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/lakshitcodes/DocuMed/internal/chunker"
	"github.com/lakshitcodes/DocuMed/internal/indexer/mocks"
	"github.com/lakshitcodes/DocuMed/internal/paper"
)

func newTestChunker(t *testing.T, size, overlap int) *chunker.Chunker {
	t.Helper()
	c, err := chunker.New(size, overlap)
	if err != nil {
		t.Fatalf("chunker.New() error = %v", err)
	}
	return c
}

func TestNewPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pipeline := NewPipeline(newTestChunker(t, 1000, 200), mocks.NewMockChunkIndex(ctrl), "test-model")
	if pipeline == nil {
		t.Fatal("NewPipeline() returned nil")
	}
	if pipeline.chunker == nil {
		t.Error("NewPipeline() chunker should not be nil")
	}
	if pipeline.embeddingModel != "test-model" {
		t.Errorf("NewPipeline() embeddingModel = %v, want test-model", pipeline.embeddingModel)
	}
}

func TestPipeline_IndexRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := mocks.NewMockChunkIndex(ctrl)
	records := []paper.Record{
		{Title: "Short paper", Abstract: "Brief.", Date: "2024", Source: "PubMed", URL: "u1"},
		{Title: "", Abstract: "No title", Date: "2024", Source: "PubMed", URL: "u2"},
		{Title: "Long paper", Abstract: strings.Repeat("long abstract text ", 20), Date: "2024", Source: "arXiv", URL: "u3"},
	}

	index.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, chunks []chunker.Chunk) (int, error) {
		if chunks[0].Meta.Title != "Short paper" {
			t.Errorf("first chunk title = %q, want Short paper", chunks[0].Meta.Title)
		}
		for _, c := range chunks {
			if c.Meta.Title == "" {
				t.Error("chunk without title reached the index")
			}
		}
		return len(chunks), nil
	})

	pipeline := NewPipeline(newTestChunker(t, 200, 50), index, "test-model")
	stats, err := pipeline.IndexRecords(context.Background(), records)
	if err != nil {
		t.Fatalf("IndexRecords() error = %v", err)
	}

	if stats.RecordsProcessed != 3 {
		t.Errorf("RecordsProcessed = %d, want 3", stats.RecordsProcessed)
	}
	if stats.RecordsSkipped != 1 {
		t.Errorf("RecordsSkipped = %d, want 1", stats.RecordsSkipped)
	}
	if stats.ChunksAttempted < 3 {
		t.Errorf("ChunksAttempted = %d, want at least 3 (long record spans several chunks)", stats.ChunksAttempted)
	}
	if stats.ChunksIndexed != stats.ChunksAttempted {
		t.Errorf("ChunksIndexed = %d, want %d", stats.ChunksIndexed, stats.ChunksAttempted)
	}
	if stats.ChunkTokenStats.Max == 0 {
		t.Error("ChunkTokenStats should be populated")
	}
	if stats.IndexVersion != IndexVersion("test-model", 200, 50) {
		t.Errorf("IndexVersion = %s, want hash of model and params", stats.IndexVersion)
	}
}

func TestPipeline_IndexRecords_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The index is not called when there is nothing to store.
	pipeline := NewPipeline(newTestChunker(t, 1000, 200), mocks.NewMockChunkIndex(ctrl), "test-model")
	stats, err := pipeline.IndexRecords(context.Background(), nil)
	if err != nil {
		t.Fatalf("IndexRecords() error = %v", err)
	}
	if stats.ChunksIndexed != 0 || stats.RecordsProcessed != 0 {
		t.Errorf("IndexRecords(nil) stats = %+v, want zero counts", stats)
	}
}

func TestPipeline_IndexRecords_IndexError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := mocks.NewMockChunkIndex(ctrl)
	index.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(2, errors.New("embedding service unavailable"))

	records := []paper.Record{
		{Title: "A", Abstract: "a", Source: "PubMed"},
		{Title: "B", Abstract: "b", Source: "PubMed"},
		{Title: "C", Abstract: "c", Source: "PubMed"},
	}

	pipeline := NewPipeline(newTestChunker(t, 1000, 200), index, "test-model")
	stats, err := pipeline.IndexRecords(context.Background(), records)
	if err == nil {
		t.Fatal("IndexRecords() expected error, got nil")
	}
	if stats.ChunksIndexed != 2 {
		t.Errorf("ChunksIndexed = %d, want 2 (partial progress is reported)", stats.ChunksIndexed)
	}
}

func TestPipeline_IndexRecords_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pipeline := NewPipeline(newTestChunker(t, 1000, 200), mocks.NewMockChunkIndex(ctrl), "test-model")
	_, err := pipeline.IndexRecords(ctx, []paper.Record{{Title: "A", Abstract: "a"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("IndexRecords() error = %v, want context.Canceled", err)
	}
}
