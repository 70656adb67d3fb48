package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lakshitcodes/DocuMed/internal/contextutil"
	"github.com/lakshitcodes/DocuMed/internal/paper"
	"github.com/lakshitcodes/DocuMed/internal/rag"
	"github.com/lakshitcodes/DocuMed/internal/service"
)

// AskHandler handles HTTP requests for research questions.
type AskHandler struct {
	research service.ResearchService
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(research service.ResearchService) *AskHandler {
	return &AskHandler{
		research: research,
	}
}

// AskRequest represents the HTTP request payload for research questions.
//
// swagger:model AskRequest
type AskRequest struct {
	Question string `json:"question"`
	// Number of chunks to retrieve; 0 uses the configured default.
	K int `json:"k,omitempty"`
}

// AskResponse represents the HTTP response payload for research questions.
//
// swagger:model AskResponse
type AskResponse struct {
	// The structured Markdown analysis generated by the model
	Analysis string `json:"analysis"`

	// Papers behind the retrieved context, deduplicated, cited papers first
	Papers []PaperResponse `json:"papers"`

	// Analysis split into its headed sections
	Sections []SectionResponse `json:"sections"`

	// Indexed is false when no paper has been indexed yet.
	Indexed bool `json:"indexed"`
}

// PaperResponse is a paper reference in the HTTP response.
//
// swagger:model PaperResponse
type PaperResponse struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
	Date   string `json:"date"`
}

// SectionResponse is one section of the analysis.
//
// swagger:model SectionResponse
type SectionResponse struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// ServeHTTP handles HTTP requests for research questions.
//
// swagger:route POST /api/ask askQuestion
//
// # Ask a research question
//
// Retrieves the most relevant indexed paper chunks and asks the LLM for a
// structured analysis citing them.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Analysis with cited papers
//	  schema:
//	    "$ref": "#/definitions/AskResponse"
//	'400':
//	  description: Bad request (empty question)
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'502':
//	  description: External service error (LLM or embedding service unavailable)
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.research.Ask(ctx, service.AskRequest{
		Question: req.Question,
		K:        req.K,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to answer question")
		return
	}

	writeJSON(ctx, w, http.StatusOK, toAskResponse(resp))
}

func toAskResponse(resp rag.AskResponse) AskResponse {
	out := AskResponse{
		Analysis: resp.Analysis,
		Papers:   toPaperResponses(resp.Papers),
		Sections: make([]SectionResponse, len(resp.Sections)),
		Indexed:  resp.Indexed,
	}
	for i, s := range resp.Sections {
		out.Sections[i] = SectionResponse{Heading: s.Heading, Body: s.Body}
	}
	return out
}

func toPaperResponses(refs []paper.Ref) []PaperResponse {
	out := make([]PaperResponse, len(refs))
	for i, ref := range refs {
		out[i] = PaperResponse{
			Title:  ref.Title,
			URL:    ref.URL,
			Source: ref.Source,
			Date:   ref.Date,
		}
	}
	return out
}
