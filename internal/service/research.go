package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_dependencies.go -package=mocks github.com/lakshitcodes/DocuMed/internal/service Asker,UpdateController,SnapshotReader,RunHistory,IndexCounter
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_research_service.go -package=mocks -mock_names=ResearchService=MockResearchService github.com/lakshitcodes/DocuMed/internal/service ResearchService

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lakshitcodes/DocuMed/internal/contextutil"
	"github.com/lakshitcodes/DocuMed/internal/paper"
	"github.com/lakshitcodes/DocuMed/internal/rag"
	"github.com/lakshitcodes/DocuMed/internal/snapshot"
	"github.com/lakshitcodes/DocuMed/internal/storage"
	"github.com/lakshitcodes/DocuMed/internal/updater"
)

// Asker answers research questions. rag.Engine implements it.
type Asker interface {
	Ask(ctx context.Context, req rag.AskRequest) (rag.AskResponse, error)
}

// UpdateController starts updates and reports the schedule.
type UpdateController interface {
	Trigger(ctx context.Context) error
	InProgress() bool
	State() updater.State
}

// SnapshotReader reads harvested snapshots.
type SnapshotReader interface {
	List() ([]string, error)
	Load(date string) ([]paper.Record, error)
	Latest() (string, []paper.Record, error)
}

// RunHistory returns recorded updates.
type RunHistory interface {
	Latest(ctx context.Context) (*storage.HarvestRun, error)
}

// IndexCounter reports the number of indexed chunks.
type IndexCounter interface {
	Count(ctx context.Context) (int, error)
}

// AskRequest represents a research question in the domain layer.
type AskRequest struct {
	Question string `validate:"required"`
	K        int
}

// PaperList is the content of one snapshot.
type PaperList struct {
	Date   string // YYYYMMDD, empty when nothing has been harvested
	Papers []paper.Record
}

// Status describes the update schedule and index.
type Status struct {
	UpdateInProgress bool
	LastUpdate       time.Time // zero when no update has completed
	NextUpdate       time.Time
	IndexedChunks    int
	LastRun          *storage.HarvestRun // nil before the first update
}

// ResearchService is the application API shared by HTTP and CLI.
type ResearchService interface {
	// Ask answers a question from the indexed papers.
	Ask(ctx context.Context, req AskRequest) (rag.AskResponse, error)
	// TriggerUpdate starts a harvest and index run in the background.
	TriggerUpdate(ctx context.Context) error
	// ListPapers returns the snapshot for date, or the latest when date is empty.
	ListPapers(ctx context.Context, date string) (PaperList, error)
	// Snapshots returns the available snapshot dates, newest first.
	Snapshots(ctx context.Context) ([]string, error)
	// Status returns the update schedule, index size and last run.
	Status(ctx context.Context) (Status, error)
	// ExportXLSX writes the snapshot for date (latest when empty) as a workbook
	// and returns the date written.
	ExportXLSX(ctx context.Context, date string, w io.Writer) (string, error)
}

type researchService struct {
	asker     Asker
	updates   UpdateController
	snapshots SnapshotReader
	runs      RunHistory
	index     IndexCounter
	logger    *slog.Logger
}

// NewResearchService creates a new ResearchService.
func NewResearchService(asker Asker, updates UpdateController, snapshots SnapshotReader, runs RunHistory, index IndexCounter) ResearchService {
	return &researchService{
		asker:     asker,
		updates:   updates,
		snapshots: snapshots,
		runs:      runs,
		index:     index,
		logger:    slog.Default(),
	}
}

func (s *researchService) getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(contextutil.LoggerKey()).(*slog.Logger); ok {
		return l
	}
	return s.logger
}

// Ask validates the question and delegates to the synthesizer.
func (s *researchService) Ask(ctx context.Context, req AskRequest) (rag.AskResponse, error) {
	logger := s.getLogger(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		logger.WarnContext(ctx, "empty question in ask request")
		return rag.AskResponse{}, &ValidationError{Field: "question", Message: "cannot be empty"}
	}
	if req.K < 0 {
		return rag.AskResponse{}, &ValidationError{Field: "k", Message: "must not be negative"}
	}

	resp, err := s.asker.Ask(ctx, rag.AskRequest{Question: question, K: req.K})
	if err != nil {
		logger.ErrorContext(ctx, "failed to answer question", "error", err)
		return rag.AskResponse{}, fmt.Errorf("%w: %w", ErrExternalService, err)
	}
	if resp.Papers == nil {
		resp.Papers = []paper.Ref{}
	}
	if resp.Sections == nil {
		resp.Sections = []rag.Section{}
	}
	return resp, nil
}

// TriggerUpdate starts an update unless one is already running.
func (s *researchService) TriggerUpdate(ctx context.Context) error {
	if err := s.updates.Trigger(ctx); err != nil {
		if errors.Is(err, updater.ErrUpdateInProgress) {
			return fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return WrapError(err, "failed to start update")
	}
	s.getLogger(ctx).InfoContext(ctx, "update triggered")
	return nil
}

// ListPapers returns one snapshot's records.
func (s *researchService) ListPapers(ctx context.Context, date string) (PaperList, error) {
	date, records, err := s.load(date)
	if err != nil {
		return PaperList{}, err
	}
	s.getLogger(ctx).DebugContext(ctx, "papers listed", "date", date, "count", len(records))
	return PaperList{Date: date, Papers: records}, nil
}

// Snapshots returns the available snapshot dates.
func (s *researchService) Snapshots(_ context.Context) ([]string, error) {
	dates, err := s.snapshots.List()
	if err != nil {
		return nil, WrapError(err, "failed to list snapshots")
	}
	return dates, nil
}

// Status combines the schedule, index size and last recorded run.
func (s *researchService) Status(ctx context.Context) (Status, error) {
	state := s.updates.State()
	st := Status{
		UpdateInProgress: s.updates.InProgress(),
		LastUpdate:       state.LastUpdate,
		NextUpdate:       state.NextUpdate,
	}

	n, err := s.index.Count(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("%w: failed to count index entries: %w", ErrExternalService, err)
	}
	st.IndexedChunks = n

	run, err := s.runs.Latest(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return Status{}, WrapError(err, "failed to load last run")
	default:
		st.LastRun = run
	}
	return st, nil
}

// ExportXLSX renders a snapshot as a workbook.
func (s *researchService) ExportXLSX(ctx context.Context, date string, w io.Writer) (string, error) {
	date, records, err := s.load(date)
	if err != nil {
		return "", err
	}
	if date == "" {
		return "", fmt.Errorf("%w: no snapshot has been written yet", ErrNotFound)
	}
	if err := snapshot.ExportXLSX(w, records); err != nil {
		return "", WrapError(err, "failed to export snapshot")
	}
	s.getLogger(ctx).InfoContext(ctx, "snapshot exported", "date", date, "count", len(records))
	return date, nil
}

// load resolves date (latest when empty) and reads the snapshot. An empty
// store yields no date and no records.
func (s *researchService) load(date string) (string, []paper.Record, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		latest, records, err := s.snapshots.Latest()
		if errors.Is(err, snapshot.ErrNotFound) {
			return "", []paper.Record{}, nil
		}
		if err != nil {
			return "", nil, WrapError(err, "failed to load latest snapshot")
		}
		return latest, records, nil
	}

	if _, err := time.Parse(snapshot.DateLayout, date); err != nil {
		return "", nil, &ValidationError{Field: "date", Message: "must be formatted YYYYMMDD"}
	}
	records, err := s.snapshots.Load(date)
	if errors.Is(err, snapshot.ErrNotFound) {
		return "", nil, fmt.Errorf("%w: no snapshot for %s", ErrNotFound, date)
	}
	if err != nil {
		return "", nil, WrapError(err, "failed to load snapshot")
	}
	return date, records, nil
}
