package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const timeRounding = 10 * time.Millisecond

var pipelineFormat string

var pipelineCmd = &cobra.Command{
	Use:   "pipeline [query...]",
	Short: "Run the full research pipeline on a query",
	Long: `Runs Research, Fact-Check, Business Analyst, and Writing in sequence,
threading each agent's findings into the next. The final agent produces a
document in the requested format.

Example:
  studymate pipeline "the commercial viability of vertical farming" --format summary`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.close()

		result, err := a.orchestrator.RunStandardPipeline(cmd.Context(), query, pipelineFormat)
		if err != nil {
			return err
		}

		for _, resp := range result.Responses[:len(result.Responses)-1] {
			fmt.Printf("── %s ──\n", resp.AgentName)
			fmt.Println(firstLines(resp.Content, 3))
			if resp.ConfidenceScore != nil {
				fmt.Printf("   confidence: %.0f%%\n", *resp.ConfidenceScore)
			}
			fmt.Println()
		}

		final := result.Responses[len(result.Responses)-1]
		printResponse(final)

		fmt.Printf("\nRun %s: %d agents, %d tokens, $%.6f, %s\n",
			result.RunID, len(result.Responses), result.TotalTokens, result.TotalCostUSD,
			result.FinishedAt.Sub(result.StartedAt).Round(timeRounding))
		return nil
	},
}

func init() {
	pipelineCmd.Flags().StringVar(&pipelineFormat, "format", "report", "final document format (report, email, summary)")
}

// firstLines returns up to n lines of text as a preview.
func firstLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
		lines = append(lines, "...")
	}
	return strings.Join(lines, "\n")
}
