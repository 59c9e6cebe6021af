package commands

import (
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagFormat  string
	flagOutput  string
	flagReport  string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "sceval",
	Short: "Batch analysis of AI-generated Solidity contracts",
	Long:  `Sceval runs solc and slither over a directory tree of LLM-generated Solidity contracts and aggregates every result into a single JSON report for comparison across models.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file or directory (default: .sceval.yml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "terminal", "Output format (terminal, json, markdown, html)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().StringVar(&flagReport, "report", "", "Report file path (default: analysis_reports/full_analysis_report.json)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

// Execute runs the root command.
func Execute() error {
	checkPathHint()
	return rootCmd.Execute()
}
