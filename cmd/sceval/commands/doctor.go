package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/YassineDev91/smart-contract-eval/internal/config"
	"github.com/YassineDev91/smart-contract-eval/internal/runner"
	"github.com/YassineDev91/smart-contract-eval/internal/tools"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [root]",
	Short: "Check that the environment is ready for a batch run",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	name   string
	ok     bool
	detail string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	root := resolveRoot(args, cfg)
	reportPath := resolveReportPath(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	checks := []checkResult{
		checkTool(ctx, tools.SolcBin),
		checkTool(ctx, tools.SlitherBin),
		checkContracts(root, cfg),
		checkReportDir(reportPath),
		checkConfigFile(),
	}

	color := func(code, text string) string {
		if flagNoColor {
			return text
		}
		return code + text + "\033[0m"
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	failed := 0
	for _, c := range checks {
		mark := color("\033[32m", "✔")
		if !c.ok {
			mark = color("\033[31m", "✖")
			failed++
		}
		fmt.Fprintf(w, "  %s %-11s %s\n", mark, c.name, c.detail)
	}
	fmt.Fprintln(w)

	if failed > 0 {
		return fmt.Errorf("%d problems found", failed)
	}
	fmt.Fprintln(w, "Ready to run `sceval analyze`.")
	return nil
}

func checkTool(ctx context.Context, bin string) checkResult {
	path, err := exec.LookPath(bin)
	if err != nil {
		return checkResult{name: bin, ok: false, detail: "not found on PATH"}
	}
	version, err := tools.Version(ctx, bin)
	if err != nil {
		return checkResult{name: bin, ok: true, detail: path}
	}
	return checkResult{name: bin, ok: true, detail: version}
}

func checkContracts(root string, cfg config.Config) checkResult {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return checkResult{name: "contracts", ok: false, detail: fmt.Sprintf("%s is not a directory", root)}
	}
	td := &runner.TargetDiscovery{IgnorePatterns: cfg.Ignore}
	targets, err := td.Discover(root)
	if err != nil {
		return checkResult{name: "contracts", ok: false, detail: err.Error()}
	}
	return checkResult{name: "contracts", ok: true, detail: fmt.Sprintf("%s (%d contracts)", root, len(targets))}
}

// checkReportDir verifies the report directory can be created and written.
// It creates the directory as a side effect, the same one analyze would.
func checkReportDir(reportPath string) checkResult {
	dir := filepath.Dir(reportPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return checkResult{name: "report dir", ok: false, detail: err.Error()}
	}
	probe := filepath.Join(dir, ".sceval-doctor")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return checkResult{name: "report dir", ok: false, detail: fmt.Sprintf("%s is not writable", dir)}
	}
	_ = os.Remove(probe)
	return checkResult{name: "report dir", ok: true, detail: dir + " writable"}
}

func checkConfigFile() checkResult {
	dir := flagConfig
	if dir == "" {
		dir = "."
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for _, name := range []string{".sceval.yml", ".sceval.yaml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, err := config.Load(dir); err != nil {
			return checkResult{name: "config", ok: false, detail: err.Error()}
		}
		return checkResult{name: "config", ok: true, detail: path}
	}
	return checkResult{name: "config", ok: true, detail: "no config file (defaults apply)"}
}
