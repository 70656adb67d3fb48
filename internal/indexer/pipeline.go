package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_index.go -package=mocks github.com/lakshitcodes/DocuMed/internal/indexer ChunkIndex

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lakshitcodes/DocuMed/internal/chunker"
	"github.com/lakshitcodes/DocuMed/internal/contextutil"
	"github.com/lakshitcodes/DocuMed/internal/paper"
)

// ChunkIndex stores chunks for retrieval. Implemented by vectorindex.Index.
type ChunkIndex interface {
	Upsert(ctx context.Context, chunks []chunker.Chunk) (int, error)
}

// Pipeline turns harvested paper records into indexed chunks.
type Pipeline struct {
	chunker        *chunker.Chunker
	index          ChunkIndex
	embeddingModel string
	logger         *slog.Logger
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(c *chunker.Chunker, index ChunkIndex, embeddingModel string) *Pipeline {
	return &Pipeline{
		chunker:        c,
		index:          index,
		embeddingModel: embeddingModel,
		logger:         slog.Default(),
	}
}

// getLogger extracts logger from context or returns default logger.
func (p *Pipeline) getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(contextutil.LoggerKey()).(*slog.Logger); ok {
		return l
	}
	return p.logger
}

// IndexRecords chunks every record and upserts the chunks into the index.
// Records without a title are skipped and counted; they cannot be cited.
func (p *Pipeline) IndexRecords(ctx context.Context, records []paper.Record) (*IndexingStats, error) {
	logger := p.getLogger(ctx)

	stats := &IndexingStats{
		ChunkerVersion: ChunkerVersion,
		IndexVersion:   IndexVersion(p.embeddingModel, p.chunker.Size(), p.chunker.Overlap()),
	}

	logger.InfoContext(ctx, "starting indexing", "records", len(records))

	var chunks []chunker.Chunk
	for i, rec := range records {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		stats.RecordsProcessed++
		if rec.Title == "" {
			stats.RecordsSkipped++
			logger.WarnContext(ctx, "skipping record without title", "index", i, "source", rec.Source)
			continue
		}

		recChunks := p.chunker.ChunkRecord(rec)
		if len(recChunks) == 0 {
			stats.RecordsWith0Chunks++
			continue
		}
		chunks = append(chunks, recChunks...)
	}

	stats.ChunksAttempted = len(chunks)
	stats.ChunkTokenStats = computeTokenStats(tokenCounts(chunks))

	if len(chunks) == 0 {
		logger.InfoContext(ctx, "indexing completed", "records", stats.RecordsProcessed, "chunks", 0)
		return stats, nil
	}

	stored, err := p.index.Upsert(ctx, chunks)
	stats.ChunksIndexed = stored
	if err != nil {
		logger.ErrorContext(ctx, "failed to index chunks", "attempted", len(chunks), "indexed", stored, "error", err)
		return stats, fmt.Errorf("failed to index chunks: %w", err)
	}

	logger.InfoContext(ctx, "indexing completed",
		"records", stats.RecordsProcessed,
		"skipped", stats.RecordsSkipped,
		"chunks", stats.ChunksIndexed,
	)
	return stats, nil
}
