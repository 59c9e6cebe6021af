package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YassineDev91/smart-contract-eval/internal/report"
	"github.com/YassineDev91/smart-contract-eval/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse the report interactively in the terminal",
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	r, err := report.Load(resolveReportPath(cfg))
	if err != nil {
		return err
	}
	if len(r) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Report is empty — nothing to view.")
		return nil
	}
	return tui.Run(r)
}
