package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lakshitcodes/DocuMed/internal/handlers"
	"github.com/lakshitcodes/DocuMed/internal/service"
	"github.com/lakshitcodes/DocuMed/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Research    service.ResearchService
	VectorStore vectorstore.VectorStore
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.Research)
	updateHandler := handlers.NewUpdateHandler(deps.Research)
	papersHandler := handlers.NewPapersHandler(deps.Research)
	statusHandler := handlers.NewStatusHandler(deps.Research)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Method(http.MethodPost, "/update", updateHandler)
		r.Get("/papers", papersHandler.List)
		r.Get("/papers/export.xlsx", papersHandler.Export)
		r.Get("/snapshots", papersHandler.Snapshots)
		r.Method(http.MethodGet, "/status", statusHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
