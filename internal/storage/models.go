package storage

import (
	"time"

	"github.com/lakshitcodes/DocuMed/internal/paper"
)

// VectorEntry is one indexed chunk: its embedding, text, and paper metadata.
// Entries are appended and never updated.
type VectorEntry struct {
	ID        string // UUID
	Text      string
	Meta      paper.Ref
	Embedding []float32
}

// HarvestRun records one update: harvest, snapshot, and indexing.
type HarvestRun struct {
	ID           string // UUID
	StartedAt    time.Time
	FinishedAt   time.Time
	RecordCount  int
	ChunkCount   int
	SnapshotPath string
	Error        string // empty when the run succeeded
	Sources      []SourceReport
}

// SourceReport is the outcome of one configured source within a run.
type SourceReport struct {
	Name  string
	Type  string
	URL   string
	Count int
	Error string // empty when the source was harvested
}
