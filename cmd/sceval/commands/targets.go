package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/YassineDev91/smart-contract-eval/internal/runner"
)

var targetsCmd = &cobra.Command{
	Use:   "targets [root]",
	Short: "List the contracts a batch would analyze",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTargets,
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}

type targetInfo struct {
	Key      string `json:"key"`
	Model    string `json:"model"`
	Contract string `json:"contract"`
	Path     string `json:"path"`
}

func runTargets(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	root := resolveRoot(args, cfg)

	td := &runner.TargetDiscovery{IgnorePatterns: cfg.Ignore}
	targets, err := td.Discover(root)
	if err != nil {
		return fmt.Errorf("discovering contracts in %s: %w", root, err)
	}

	w := cmd.OutOrStdout()

	if strings.ToLower(flagFormat) == "json" {
		infos := make([]targetInfo, len(targets))
		for i, t := range targets {
			infos[i] = targetInfo{Key: t.Key(), Model: t.Model, Contract: t.Contract, Path: t.Path}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "KEY\tFILE\n")
	fmt.Fprintf(tw, "---\t----\n")
	for _, t := range targets {
		fmt.Fprintf(tw, "%s\t%s\n", t.Key(), t.RelPath)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d contracts in %s\n", len(targets), root)

	return nil
}
