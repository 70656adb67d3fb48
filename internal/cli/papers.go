package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	papersDate string
	papersXLSX string
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "List harvested papers",
	Long: `Lists the papers of one snapshot, the latest by default. With --xlsx the
snapshot is written as a spreadsheet instead.`,
	Args: cobra.NoArgs,
	RunE: runPapers,
}

func init() {
	papersCmd.Flags().StringVarP(&papersDate, "date", "d", "", "snapshot date (YYYYMMDD), latest when empty")
	papersCmd.Flags().StringVar(&papersXLSX, "xlsx", "", "write the snapshot to this XLSX file")
	rootCmd.AddCommand(papersCmd)
}

func runPapers(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if papersXLSX != "" {
		f, err := os.Create(papersXLSX)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", papersXLSX, err)
		}
		date, err := researchService.ExportXLSX(ctx, papersDate, f)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(papersXLSX)
			return fmt.Errorf("export failed: %w", err)
		}
		cmd.Printf("Wrote snapshot %s to %s\n", date, papersXLSX)
		return nil
	}

	list, err := researchService.ListPapers(ctx, papersDate)
	if err != nil {
		return fmt.Errorf("failed to list papers: %w", err)
	}
	if list.Date == "" {
		cmd.Println("No papers harvested yet. Run 'documed harvest' first.")
		return nil
	}

	bold := color.New(color.Bold)
	bold.Fprintf(cmd.OutOrStdout(), "Snapshot %s: %d papers\n", list.Date, len(list.Papers))
	for i, p := range list.Papers {
		cmd.Printf("  [%d] %s\n", i+1, p.Title)
		cmd.Printf("      %s, %s  %s\n", p.Source, p.Date, p.URL)
	}
	return nil
}
