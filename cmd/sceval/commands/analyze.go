package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/YassineDev91/smart-contract-eval/internal/config"
	"github.com/YassineDev91/smart-contract-eval/internal/history"
	"github.com/YassineDev91/smart-contract-eval/internal/report"
	"github.com/YassineDev91/smart-contract-eval/internal/runner"
	"github.com/YassineDev91/smart-contract-eval/internal/state"
	"github.com/YassineDev91/smart-contract-eval/internal/storage"
	"github.com/YassineDev91/smart-contract-eval/internal/tools"
	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

// DefaultRoot is the contracts directory used when neither the argument,
// a flag, nor the config names one.
const DefaultRoot = "contracts-evaluation"

var (
	flagTimeout time.Duration
	flagChanged bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [root]",
	Short: "Run solc and slither over every contract and write the report",
	Long: `Walks the contracts directory (one subdirectory per model), runs
solc --ast-compact-json --optimize and slither --json - on every .sol file in
order, and writes the aggregated results to the report file. Tool failures are
recorded per contract and never stop the batch.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Per-tool timeout, e.g. 90s (0 disables)")
	analyzeCmd.Flags().BoolVar(&flagChanged, "changed", false, "Only analyze git-changed contracts (staged, unstaged, untracked)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	root := resolveRoot(args, cfg)
	reportPath := resolveReportPath(cfg)
	timeout, err := resolveTimeout(cmd, cfg)
	if err != nil {
		return err
	}

	td := &runner.TargetDiscovery{IgnorePatterns: cfg.Ignore}
	targets, err := td.Discover(root)
	if err != nil {
		return fmt.Errorf("discovering contracts in %s: %w", root, err)
	}
	if flagChanged {
		targets = filterChanged(root, targets)
	}

	ctx, cancel := contextWithInterrupt()
	defer cancel()

	started := time.Now().UTC()
	r := &runner.Runner{
		Solc:     &tools.Solc{Timeout: timeout},
		Slither:  &tools.Slither{Timeout: timeout},
		Progress: cmd.OutOrStdout(),
	}
	result, err := r.Run(ctx, targets)
	if err != nil {
		return err
	}

	if err := report.Write(reportPath, result); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Full report written to %s\n", reportPath)

	stats := result.Stats()
	recordRun(ctx, cfg, types.RunSummary{
		ID:            uuid.NewString(),
		Root:          root,
		ReportPath:    reportPath,
		Targets:       stats.Targets,
		SolcPassed:    stats.SolcPassed,
		SlitherPassed: stats.SlitherPassed,
		StartedAt:     started,
		FinishedAt:    time.Now().UTC(),
	})
	return nil
}

// filterChanged keeps only targets whose relative path git reports as
// modified or untracked. Outside a repository nothing matches.
func filterChanged(root string, targets []*runner.Target) []*runner.Target {
	changed, err := runner.GitChangedFiles(root)
	if err != nil || len(changed) == 0 {
		return nil
	}
	set := make(map[string]bool, len(changed))
	for _, f := range changed {
		set[filepath.ToSlash(f)] = true
	}
	var kept []*runner.Target
	for _, t := range targets {
		if set[t.RelPath] {
			kept = append(kept, t)
		}
	}
	return kept
}

// recordRun persists the run summary after the report has been written.
// Every backend is best-effort: failures warn on stderr and never undo
// the report.
func recordRun(ctx context.Context, cfg config.Config, run types.RunSummary) {
	store := state.New(state.DefaultPath())
	if err := store.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: loading run log: %v\n", err)
	} else {
		store.Append(run)
		if err := store.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: saving run log: %v\n", err)
		}
	}

	if cfg.History.Driver != "" || cfg.History.DSN != "" {
		if db, err := history.Open(ctx, cfg.History.Driver, cfg.History.DSN); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			if err := db.Record(ctx, run); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
			db.Close()
		}
	}

	if cfg.Storage.Endpoint != "" {
		uploadReport(ctx, cfg.Storage, run)
	}
}

func uploadReport(ctx context.Context, sc config.Storage, run types.RunSummary) {
	client, err := storage.New(ctx, storage.Options{
		Endpoint:  sc.Endpoint,
		AccessKey: sc.AccessKey,
		SecretKey: sc.SecretKey,
		Bucket:    sc.Bucket,
		Region:    sc.Region,
		UseSSL:    sc.UseSSL,
		Prefix:    sc.Prefix,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return
	}
	key, err := client.UploadReport(ctx, run.ID, run.ReportPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "report uploaded to %s/%s\n", sc.Bucket, key)
}

// loadConfig resolves the active configuration: --config wins, otherwise
// the working directory is searched. A broken config warns and falls back
// to defaults.
func loadConfig() config.Config {
	dir := flagConfig
	if dir == "" {
		dir = "."
	}
	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return cfg
}

func resolveRoot(args []string, cfg config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	if cfg.Root != "" {
		return cfg.Root
	}
	return DefaultRoot
}

func resolveReportPath(cfg config.Config) string {
	if rootCmd.PersistentFlags().Changed("report") {
		return flagReport
	}
	if cfg.Report != "" {
		return cfg.Report
	}
	return report.DefaultPath()
}

func resolveTimeout(cmd *cobra.Command, cfg config.Config) (time.Duration, error) {
	if cmd.Flags().Changed("timeout") {
		return flagTimeout, nil
	}
	return cfg.TimeoutDuration()
}

func contextWithInterrupt() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}
