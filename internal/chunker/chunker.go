package chunker

import (
	"errors"
	"fmt"

	"github.com/lakshitcodes/DocuMed/internal/paper"
)

const (
	// DefaultChunkSize is the default number of characters per chunk.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the default number of characters shared by neighbouring chunks.
	DefaultChunkOverlap = 200
)

// ErrInvalidConfig is returned when the chunk size and overlap cannot make progress.
var ErrInvalidConfig = errors.New("invalid chunker configuration")

// Chunk is a window of a paper's indexable text with the paper's metadata attached.
type Chunk struct {
	Text string
	Meta paper.Ref
}

// Validate checks the sliding window parameters.
func Validate(size, overlap int) error {
	if size <= 0 {
		return fmt.Errorf("%w: chunk size must be greater than 0, got %d", ErrInvalidConfig, size)
	}
	if overlap < 0 {
		return fmt.Errorf("%w: overlap must not be negative, got %d", ErrInvalidConfig, overlap)
	}
	if overlap >= size {
		return fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", ErrInvalidConfig, overlap, size)
	}
	return nil
}

// Split slides a window of size characters over text with a stride of size-overlap.
// Characters are runes. The last window may be shorter than size; a window that
// would only repeat the tail of the previous one is not emitted.
func Split(text string, size, overlap int) ([]string, error) {
	if err := Validate(size, overlap); err != nil {
		return nil, err
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return []string{}, nil
	}

	stride := size - overlap
	chunks := make([]string, 0, len(runes)/stride+1)
	for start := 0; start < len(runes); start += stride {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}

	return chunks, nil
}

// Chunker splits paper records into metadata-carrying chunks.
type Chunker struct {
	size    int
	overlap int
}

// New creates a Chunker after validating size and overlap.
func New(size, overlap int) (*Chunker, error) {
	if err := Validate(size, overlap); err != nil {
		return nil, err
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Size returns the configured chunk size.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// ChunkRecord splits the record's indexable text; every chunk carries a copy of the record's metadata.
func (c *Chunker) ChunkRecord(rec paper.Record) []Chunk {
	// Validated in New, so Split cannot fail here.
	texts, _ := Split(rec.IndexText(), c.size, c.overlap)

	ref := rec.Ref()
	chunks := make([]Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = Chunk{Text: text, Meta: ref}
	}
	return chunks
}

// ChunkRecords chunks every record in order.
func (c *Chunker) ChunkRecords(recs []paper.Record) []Chunk {
	var chunks []Chunk
	for _, rec := range recs {
		chunks = append(chunks, c.ChunkRecord(rec)...)
	}
	return chunks
}
