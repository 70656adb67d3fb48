// Package app wires the configured components into a running application
// shared by the API server and the command line.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lakshitcodes/DocuMed/internal/chunker"
	"github.com/lakshitcodes/DocuMed/internal/config"
	"github.com/lakshitcodes/DocuMed/internal/extractor"
	"github.com/lakshitcodes/DocuMed/internal/fetcher"
	"github.com/lakshitcodes/DocuMed/internal/harvest"
	"github.com/lakshitcodes/DocuMed/internal/indexer"
	"github.com/lakshitcodes/DocuMed/internal/llm"
	"github.com/lakshitcodes/DocuMed/internal/rag"
	"github.com/lakshitcodes/DocuMed/internal/service"
	"github.com/lakshitcodes/DocuMed/internal/snapshot"
	"github.com/lakshitcodes/DocuMed/internal/storage"
	"github.com/lakshitcodes/DocuMed/internal/updater"
	"github.com/lakshitcodes/DocuMed/internal/vectorindex"
	"github.com/lakshitcodes/DocuMed/internal/vectorstore"
)

// App holds the wired components.
type App struct {
	Config      *config.Config
	VectorStore vectorstore.VectorStore
	Index       *vectorindex.Index
	Embedder    *llm.EmbeddingsClient
	Snapshots   *snapshot.Store
	Runs        *storage.RunRepo
	Updater     *updater.Updater
	Research    service.ResearchService

	closers []func() error
}

// New opens storage and the vector backend and builds every component.
// Callers must Close the returned App.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.closers = append(a.closers, db.Close)

	if err := storage.Migrate(db); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	if err := a.openVectorStore(ctx, db); err != nil {
		_ = a.Close()
		return nil, err
	}

	c, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("%w: %w", config.ErrConfiguration, err)
	}

	a.Embedder = llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize)
	a.Index = vectorindex.New(a.VectorStore, a.Embedder)
	pipeline := indexer.NewPipeline(c, a.Index, cfg.EmbeddingModelName)

	a.Snapshots = snapshot.NewStore(cfg.BackupDir)
	f := fetcher.New(fetcher.Config{
		Timeout:           cfg.FetchTimeout,
		RequestsPerSecond: cfg.FetchRatePerSecond,
	})
	coordinator := harvest.New(f, extractor.NewRegistry(), a.Snapshots,
		harvest.WithConcurrency(cfg.FetchConcurrency))

	state, err := updater.OpenStateFile(cfg.UpdateStatePath)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Runs = storage.NewRunRepo(db)
	a.Updater = updater.New(coordinator, pipeline, a.Runs, cfg.Sources, state, cfg.UpdateInterval)

	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	engine := rag.NewEngine(a.Index, llmClient, rag.WithDefaultK(cfg.RetrievalK))
	a.Research = service.NewResearchService(engine, a.Updater, a.Snapshots, a.Runs, a.Index)

	slog.Info("Application initialized",
		"vector_backend", cfg.VectorBackend,
		"sources", len(cfg.Sources),
		"update_interval", cfg.UpdateInterval.String(),
	)
	return a, nil
}

func (a *App) openVectorStore(ctx context.Context, db *sql.DB) error {
	cfg := a.Config
	switch cfg.VectorBackend {
	case config.BackendQdrant:
		store, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantCollection)
		if err != nil {
			return fmt.Errorf("failed to create Qdrant client: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		if err := store.EnsureCollection(ctx, cfg.EmbeddingVectorSize); err != nil {
			return fmt.Errorf("failed to ensure Qdrant collection: %w", err)
		}
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingVectorSize)
		a.VectorStore = store
	default:
		a.VectorStore = vectorstore.NewSQLiteStore(storage.NewEntryRepo(db))
		slog.Info("SQLite vector store ready", "path", cfg.DBPath)
	}
	return nil
}

// CheckEmbeddings embeds a probe text and verifies the vector size.
func (a *App) CheckEmbeddings(ctx context.Context) error {
	vecs, err := a.Embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		return fmt.Errorf("failed to validate embedding client: %w", err)
	}
	if len(vecs) == 0 || len(vecs[0]) != a.Config.EmbeddingVectorSize {
		return fmt.Errorf("%w: embedding vector size mismatch, expected %d", config.ErrConfiguration, a.Config.EmbeddingVectorSize)
	}
	return nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
