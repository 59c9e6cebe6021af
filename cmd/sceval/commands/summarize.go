package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YassineDev91/smart-contract-eval/internal/analyst"
	"github.com/YassineDev91/smart-contract-eval/internal/report"
)

var flagModel string

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Ask an LLM for an assessment of the report",
	Long:  `Sends a compact digest of the report (pass/fail counts and truncated error excerpts, never the raw AST dumps) to an OpenAI chat model and prints the returned JSON assessment.`,
	RunE:  runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVar(&flagModel, "model", "", "Chat model to use (default gpt-4o-mini)")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	apiKey := cfg.Analyst.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set analyst.api_key in .sceval.yml or the OPENAI_API_KEY environment variable")
	}

	r, err := report.Load(resolveReportPath(cfg))
	if err != nil {
		return err
	}
	if len(r) == 0 {
		return fmt.Errorf("report is empty, run `sceval analyze` first")
	}

	model := flagModel
	if model == "" {
		model = cfg.Analyst.Model
	}

	ctx, cancel := contextWithInterrupt()
	defer cancel()

	sp := report.NewSpinner(os.Stderr)
	sp.Start("Waiting for the analyst model...")
	summary, err := analyst.NewClient(apiKey, model).Summarize(ctx, r)
	sp.Stop()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), summary)
	return nil
}
