package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/lakshitcodes/DocuMed/internal/contextutil"
	"github.com/lakshitcodes/DocuMed/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PapersHandler serves harvested snapshots.
type PapersHandler struct {
	research service.ResearchService
}

// NewPapersHandler creates a new PapersHandler.
func NewPapersHandler(research service.ResearchService) *PapersHandler {
	return &PapersHandler{research: research}
}

// PaperListResponse is the content of one snapshot.
//
// swagger:model PaperListResponse
type PaperListResponse struct {
	// Snapshot date (YYYYMMDD); empty when nothing has been harvested
	Date   string          `json:"date"`
	Count  int             `json:"count"`
	Papers []PaperResponse `json:"papers"`
}

// SnapshotsResponse lists the available snapshot dates, newest first.
//
// swagger:model SnapshotsResponse
type SnapshotsResponse struct {
	Dates []string `json:"dates"`
}

// List returns the snapshot for ?date=YYYYMMDD, or the latest one.
//
// swagger:route GET /api/papers listPapers
//
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/PaperListResponse"
//	'400':
//	  description: Malformed date
//	'404':
//	  description: No snapshot for the date
func (h *PapersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := h.research.ListPapers(ctx, r.URL.Query().Get("date"))
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load papers")
		return
	}

	resp := PaperListResponse{
		Date:   list.Date,
		Count:  len(list.Papers),
		Papers: make([]PaperResponse, len(list.Papers)),
	}
	for i, p := range list.Papers {
		resp.Papers[i] = PaperResponse{Title: p.Title, URL: p.URL, Source: p.Source, Date: p.Date}
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Export streams the snapshot as an XLSX workbook.
//
// swagger:route GET /api/papers/export.xlsx exportPapers
func (h *PapersHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Buffered so a failed export can still produce a JSON error.
	var buf bytes.Buffer
	date, err := h.research.ExportXLSX(ctx, r.URL.Query().Get("date"), &buf)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to export papers")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="papers_%s.xlsx"`, date))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to write workbook", "error", err)
	}
}

// Snapshots lists the available snapshot dates.
//
// swagger:route GET /api/snapshots listSnapshots
func (h *PapersHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dates, err := h.research.Snapshots(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to list snapshots")
		return
	}
	if dates == nil {
		dates = []string{}
	}
	writeJSON(ctx, w, http.StatusOK, SnapshotsResponse{Dates: dates})
}
