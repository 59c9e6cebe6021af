package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YassineDev91/smart-contract-eval/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <model/contract>",
	Short: "Print one entry from the report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	r, err := report.Load(resolveReportPath(cfg))
	if err != nil {
		return err
	}

	entry, ok := r[args[0]]
	if !ok {
		return fmt.Errorf("no entry %q in the report", args[0])
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(entry)
}
