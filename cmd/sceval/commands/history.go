package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/YassineDev91/smart-contract-eval/internal/config"
	"github.com/YassineDev91/smart-contract-eval/internal/history"
	"github.com/YassineDev91/smart-contract-eval/internal/state"
	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded analysis runs",
	Long:  `Lists past batch runs, newest first: from the configured SQL history database when one is set in .sceval.yml, otherwise from the local run log.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	ctx, cancel := contextWithInterrupt()
	defer cancel()

	runs, source, err := loadRuns(ctx, cfg)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if strings.ToLower(flagFormat) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "STARTED\tROOT\tTARGETS\tSOLC\tSLITHER\tDURATION\n")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d/%d\t%d/%d\t%s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Root,
			run.Targets,
			run.SolcPassed, run.Targets,
			run.SlitherPassed, run.Targets,
			run.Duration().Round(time.Second))
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d runs (%s)\n", len(runs), source)

	return nil
}

func loadRuns(ctx context.Context, cfg config.Config) ([]types.RunSummary, string, error) {
	if cfg.History.Driver != "" || cfg.History.DSN != "" {
		db, err := history.Open(ctx, cfg.History.Driver, cfg.History.DSN)
		if err != nil {
			return nil, "", err
		}
		defer db.Close()
		runs, err := db.Recent(ctx, flagLimit)
		return runs, cfg.History.Driver, err
	}

	store := state.New(state.DefaultPath())
	if err := store.Load(); err != nil {
		return nil, "", err
	}
	return store.Recent(flagLimit), "local run log", nil
}
