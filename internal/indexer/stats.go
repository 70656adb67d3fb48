package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/lakshitcodes/DocuMed/internal/chunker"
)

const (
	// ChunkerVersion is the version identifier for the chunker implementation.
	// Update this when chunking logic changes significantly.
	ChunkerVersion = "v2.0-window"
	// TokensPerRune is an approximation for token counting (4 chars per token).
	TokensPerRune = 4.0
)

// IndexingStats contains statistics about one indexing pass.
type IndexingStats struct {
	// RecordsProcessed is the total number of records seen.
	RecordsProcessed int `json:"records_processed"`
	// RecordsSkipped is the number of records rejected for missing metadata.
	RecordsSkipped int `json:"records_skipped"`
	// RecordsWith0Chunks is the number of records that produced 0 chunks.
	RecordsWith0Chunks int `json:"records_with_0_chunks"`
	// ChunksAttempted is the total number of chunks sent to the index.
	ChunksAttempted int `json:"chunks_attempted"`
	// ChunksIndexed is the number of chunks embedded and stored.
	ChunksIndexed int `json:"chunks_indexed"`
	// ChunkTokenStats contains statistics about token counts per chunk.
	ChunkTokenStats ChunkTokenStats `json:"chunk_token_stats"`
	// ChunkerVersion is the version of the chunker used.
	ChunkerVersion string `json:"chunker_version"`
	// IndexVersion is a hash identifying the index build (chunker + embedding model + params).
	IndexVersion string `json:"index_version"`
}

// ChunkTokenStats contains statistics about token counts in chunks.
type ChunkTokenStats struct {
	// Min is the minimum token count across all chunks.
	Min int `json:"min"`
	// Max is the maximum token count across all chunks.
	Max int `json:"max"`
	// Mean is the mean token count across all chunks.
	Mean float64 `json:"mean"`
	// P95 is the 95th percentile token count.
	P95 int `json:"p95"`
}

// IndexVersion hashes the chunker version, embedding model, and window
// parameters. Entries built under different versions should not be mixed.
func IndexVersion(embeddingModel string, chunkSize, chunkOverlap int) string {
	input := fmt.Sprintf("%s|%s|chunkSize=%d|chunkOverlap=%d",
		ChunkerVersion, embeddingModel, chunkSize, chunkOverlap)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16] // 16 hex chars = 64 bits
}

// tokenCounts estimates tokens per chunk from rune count (~4 chars per token).
func tokenCounts(chunks []chunker.Chunk) []int {
	counts := make([]int, 0, len(chunks))
	for _, c := range chunks {
		n := int(math.Round(float64(utf8.RuneCountInString(c.Text)) / TokensPerRune))
		if n < 1 {
			n = 1 // Minimum 1 token
		}
		counts = append(counts, n)
	}
	return counts
}

// computeTokenStats computes min, max, mean, and p95 from token counts.
func computeTokenStats(tokenCounts []int) ChunkTokenStats {
	if len(tokenCounts) == 0 {
		return ChunkTokenStats{}
	}

	// Sort for percentile calculation
	sorted := make([]int, len(tokenCounts))
	copy(sorted, tokenCounts)
	sort.Ints(sorted)

	minCount := sorted[0]
	maxCount := sorted[len(sorted)-1]

	sum := 0
	for _, count := range tokenCounts {
		sum += count
	}
	mean := float64(sum) / float64(len(tokenCounts))

	p95Index := int(math.Ceil(float64(len(sorted)) * 0.95))
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}

	return ChunkTokenStats{
		Min:  minCount,
		Max:  maxCount,
		Mean: math.Round(mean*100) / 100, // Round to 2 decimal places
		P95:  sorted[p95Index],
	}
}
