package handlers

import (
	"net/http"

	"github.com/lakshitcodes/DocuMed/internal/contextutil"
	"github.com/lakshitcodes/DocuMed/internal/service"
)

// UpdateHandler handles HTTP requests for triggering a harvest and re-index.
type UpdateHandler struct {
	research service.ResearchService
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(research service.ResearchService) *UpdateHandler {
	return &UpdateHandler{research: research}
}

// UpdateResponse represents the response from the update endpoint.
//
// swagger:model UpdateResponse
type UpdateResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ServeHTTP starts an update in the background and returns immediately.
//
// swagger:route POST /api/update triggerUpdate
//
// # Harvest all sources and re-index
//
// ---
// produces:
// - application/json
// responses:
//
//	'202':
//	  description: Update started
//	  schema:
//	    "$ref": "#/definitions/UpdateResponse"
//	'409':
//	  description: An update is already running
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.research.TriggerUpdate(ctx); err != nil {
		handleServiceError(ctx, w, err, "Failed to start update")
		return
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "update triggered via API")
	writeJSON(ctx, w, http.StatusAccepted, UpdateResponse{
		Message: "Update started. Check /api/status for progress.",
		Status:  "accepted",
	})
}
