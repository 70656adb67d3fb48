// Package cli implements the documed command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lakshitcodes/DocuMed/internal/app"
	"github.com/lakshitcodes/DocuMed/internal/config"
	"github.com/lakshitcodes/DocuMed/internal/service"
	"github.com/lakshitcodes/DocuMed/internal/updater"
)

// UpdateRunner performs one synchronous harvest and index run.
type UpdateRunner interface {
	Run(ctx context.Context) (*updater.Report, error)
}

var (
	researchService service.ResearchService
	updateRunner    UpdateRunner
	application     *app.App
)

var rootCmd = &cobra.Command{
	Use:   "documed",
	Short: "Harvest medical research papers and ask questions about them",
	Long: `DocuMed harvests recent papers from PubMed, bioRxiv, medRxiv, Nature,
Google Scholar, ClinicalTrials.gov and arXiv, indexes them for semantic
search and answers research questions with a structured analysis.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
}

// SetServices injects the services used by the commands. When unset, they
// are built from the environment on first use.
func SetServices(research service.ResearchService, updates UpdateRunner) {
	researchService = research
	updateRunner = updates
}

// Execute runs the root command and closes any opened resources.
func Execute(ctx context.Context) error {
	defer func() {
		if application != nil {
			_ = application.Close()
			application = nil
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func setupServices(cmd *cobra.Command, _ []string) error {
	if researchService != nil && updateRunner != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// Logs go to stderr so command output stays clean.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	application = a
	SetServices(a.Research, a.Updater)
	return nil
}
