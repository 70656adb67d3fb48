package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lakshitcodes/DocuMed/internal/rag"
	"github.com/lakshitcodes/DocuMed/internal/service"
)

var (
	askK    int
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a research question",
	Long: `Retrieves the most relevant indexed paper chunks and asks the LLM for a
structured analysis, followed by the papers it was grounded on.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVar(&askK, "k", 0, "number of chunks to retrieve (0 uses RETRIEVAL_K)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	resp, err := researchService.Ask(cmd.Context(), service.AskRequest{Question: args[0], K: askK})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
	printAnswer(cmd, resp)
	return nil
}

func printAnswer(cmd *cobra.Command, resp rag.AskResponse) {
	out := cmd.OutOrStdout()
	if !resp.Indexed {
		color.New(color.FgYellow).Fprintln(out, resp.Analysis)
		return
	}

	cmd.Println(resp.Analysis)
	if len(resp.Papers) == 0 {
		return
	}

	cmd.Println()
	color.New(color.FgCyan, color.Bold).Fprintln(out, "Papers:")
	for i, p := range resp.Papers {
		cmd.Printf("  [%d] %s\n", i+1, p.Title)
		cmd.Printf("      %s, %s\n", p.Source, p.Date)
		if p.URL != "" {
			cmd.Printf("      %s\n", p.URL)
		}
	}
}
