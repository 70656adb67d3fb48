package handlers

import (
	"net/http"
	"time"

	"github.com/lakshitcodes/DocuMed/internal/service"
	"github.com/lakshitcodes/DocuMed/internal/storage"
)

// StatusHandler reports the update schedule and the last run.
type StatusHandler struct {
	research service.ResearchService
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(research service.ResearchService) *StatusHandler {
	return &StatusHandler{research: research}
}

// StatusResponse represents the update status.
//
// swagger:model StatusResponse
type StatusResponse struct {
	UpdateInProgress bool         `json:"update_in_progress"`
	LastUpdate       string       `json:"last_update,omitempty"`
	NextUpdate       string       `json:"next_update,omitempty"`
	IndexedChunks    int          `json:"indexed_chunks"`
	LastRun          *RunResponse `json:"last_run,omitempty"`
}

// RunResponse describes one recorded update.
//
// swagger:model RunResponse
type RunResponse struct {
	ID          string           `json:"id"`
	StartedAt   string           `json:"started_at"`
	FinishedAt  string           `json:"finished_at"`
	RecordCount int              `json:"record_count"`
	ChunkCount  int              `json:"chunk_count"`
	Snapshot    string           `json:"snapshot,omitempty"`
	Error       string           `json:"error,omitempty"`
	Sources     []SourceResponse `json:"sources"`
}

// SourceResponse is the per-source outcome of a run.
//
// swagger:model SourceResponse
type SourceResponse struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	URL   string `json:"url"`
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

// ServeHTTP handles HTTP requests for the update status.
//
// swagger:route GET /api/status updateStatus
//
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/StatusResponse"
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	st, err := h.research.Status(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load status")
		return
	}

	resp := StatusResponse{
		UpdateInProgress: st.UpdateInProgress,
		LastUpdate:       formatTime(st.LastUpdate),
		NextUpdate:       formatTime(st.NextUpdate),
		IndexedChunks:    st.IndexedChunks,
	}
	if st.LastRun != nil {
		resp.LastRun = toRunResponse(st.LastRun)
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

func toRunResponse(run *storage.HarvestRun) *RunResponse {
	out := &RunResponse{
		ID:          run.ID,
		StartedAt:   formatTime(run.StartedAt),
		FinishedAt:  formatTime(run.FinishedAt),
		RecordCount: run.RecordCount,
		ChunkCount:  run.ChunkCount,
		Snapshot:    run.SnapshotPath,
		Error:       run.Error,
		Sources:     make([]SourceResponse, len(run.Sources)),
	}
	for i, s := range run.Sources {
		out.Sources[i] = SourceResponse{Name: s.Name, Type: s.Type, URL: s.URL, Count: s.Count, Error: s.Error}
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
