package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lakshitcodes/DocuMed/internal/updater"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Harvest all sources and re-index",
	Long: `Fetches every configured source, writes today's snapshot and indexes
the harvested papers. Sources that fail are reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: runHarvest,
}

func init() {
	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, _ []string) error {
	report, err := updateRunner.Run(cmd.Context())
	if report != nil {
		printReport(cmd, report)
	}
	return err
}

func printReport(cmd *cobra.Command, report *updater.Report) {
	out := cmd.OutOrStdout()
	ok := color.New(color.FgGreen)
	failed := color.New(color.FgRed)
	heading := color.New(color.Bold)

	heading.Fprintln(out, "Sources:")
	for _, s := range report.Run.Sources {
		if s.Error != "" {
			failed.Fprintf(out, "  ✗ %s (%s): %s\n", s.Name, s.Type, s.Error)
			continue
		}
		ok.Fprintf(out, "  ✓ %s (%s): %d papers\n", s.Name, s.Type, s.Count)
	}

	cmd.Println()
	cmd.Printf("Papers harvested: %d\n", report.Run.RecordCount)
	cmd.Printf("Chunks indexed:   %d\n", report.Run.ChunkCount)
	if report.Run.SnapshotPath != "" {
		cmd.Printf("Snapshot:         %s\n", report.Run.SnapshotPath)
	}
}
