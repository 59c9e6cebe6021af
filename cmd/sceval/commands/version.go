package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YassineDev91/smart-contract-eval/internal/update"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

// repo is the GitHub slug used for release checks.
const repo = "YassineDev91/smart-contract-eval"

var flagCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sceval %s (commit: %s)\n", Version, Commit)
		if !flagCheck {
			return
		}
		r := update.CheckLatest(Version, repo)
		switch {
		case r == nil:
			// dev build or unreachable releases API; stay quiet
		case r.NeedsUpdate():
			fmt.Fprintf(cmd.OutOrStdout(), "update available: %s -> %s\n  %s\n", r.Current, r.Latest, r.UpdateURL)
		default:
			fmt.Fprintln(cmd.OutOrStdout(), "sceval is up to date")
		}
	},
}

func init() {
	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}
