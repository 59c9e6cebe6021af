package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	flagHook   bool
	flagCIOnly bool
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize sceval configuration files",
	Long:  `Scaffolds .sceval.yml, .scevalignore, and a GitHub Actions workflow for batch contract analysis.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&flagHook, "hook", false, "Create a git pre-commit hook that analyzes changed contracts")
	initCmd.Flags().BoolVar(&flagCIOnly, "ci", false, "Only generate GitHub Actions workflow (skip config files)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if flagHook {
		return initHook(dir)
	}

	if flagCIOnly {
		return initCIOnly(dir)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	files := []struct {
		path    string
		content string
	}{
		{
			path:    filepath.Join(dir, ".sceval.yml"),
			content: configTemplate,
		},
		{
			path:    filepath.Join(dir, ".scevalignore"),
			content: ignoreTemplate,
		},
		{
			path:    filepath.Join(dir, ".github", "workflows", "sceval.yml"),
			content: workflowTemplate,
		},
	}

	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil {
			fmt.Printf("  skip %s (already exists)\n", f.path)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", f.path, err)
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
		fmt.Printf("  create %s\n", f.path)
	}

	return nil
}

func initHook(dir string) error {
	gitDir := filepath.Join(dir, ".git")
	if _, err := os.Stat(gitDir); os.IsNotExist(err) {
		return fmt.Errorf("no .git directory found in %s (is this a git repository?)", dir)
	}

	hookPath := filepath.Join(gitDir, "hooks", "pre-commit")
	if _, err := os.Stat(hookPath); err == nil {
		fmt.Printf("  skip %s (already exists)\n", hookPath)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(hookPath), 0755); err != nil {
		return fmt.Errorf("creating hooks directory: %w", err)
	}
	if err := os.WriteFile(hookPath, []byte(preCommitTemplate), 0755); err != nil {
		return fmt.Errorf("writing pre-commit hook: %w", err)
	}
	fmt.Printf("  create %s\n", hookPath)
	return nil
}

func initCIOnly(dir string) error {
	wfPath := filepath.Join(dir, ".github", "workflows", "sceval.yml")
	if _, err := os.Stat(wfPath); err == nil {
		fmt.Printf("  skip %s (already exists)\n", wfPath)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(wfPath), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", wfPath, err)
	}
	if err := os.WriteFile(wfPath, []byte(workflowTemplate), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", wfPath, err)
	}
	fmt.Printf("  create %s\n", wfPath)
	return nil
}

const configTemplate = `# sceval configuration
# https://github.com/YassineDev91/smart-contract-eval

# Contracts directory walked by sceval analyze
# root: contracts-evaluation

# Report destination
# report: analysis_reports/full_analysis_report.json

# Per-tool timeout, Go duration syntax (unset disables)
# timeout: 90s

# Contract patterns to skip during discovery
ignore:
  - "*.t.sol"
  - "node_modules/"
  - ".git/"

# Run history database (optional)
# history:
#   driver: mysql            # or postgres
#   dsn: user:pass@tcp(localhost:3306)/sceval?parseTime=true

# Report upload to S3-compatible storage (optional)
# storage:
#   endpoint: localhost:9000
#   access_key: minioadmin
#   secret_key: minioadmin
#   bucket: sceval-reports
#   use_ssl: false

# LLM report summarizer (optional)
# analyst:
#   model: gpt-4o-mini
#   api_key: sk-...

# Report web server
# serve:
#   addr: ":8591"
#   allowed_origins:
#     - "https://dashboard.example.com"
`

const ignoreTemplate = `# sceval ignore patterns
# Contracts matching these patterns are skipped during discovery

# Vendored and generated sources
node_modules/
lib/
cache/
out/

# Foundry test and script contracts
*.t.sol
*.s.sol

# Build artifacts
artifacts/
build/
`

const preCommitTemplate = `#!/bin/sh
# sceval pre-commit hook
echo "Analyzing changed contracts..."
sceval analyze --changed
exit $?
`

const workflowTemplate = `name: Contract Analysis

on:
  push:
    branches: [main]
  pull_request:
    branches: [main]

jobs:
  sceval:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4

      - uses: actions/setup-go@v5
        with:
          go-version: stable

      - name: Install solc
        run: |
          sudo add-apt-repository -y ppa:ethereum/ethereum
          sudo apt-get update
          sudo apt-get install -y solc

      - name: Install slither
        run: pip install slither-analyzer

      - name: Install sceval
        run: go install github.com/YassineDev91/smart-contract-eval/cmd/sceval@latest

      - name: Run batch analysis
        run: sceval analyze

      - name: Render summary
        if: always()
        run: sceval render --format markdown >> "$GITHUB_STEP_SUMMARY"

      - name: Upload report
        if: always()
        uses: actions/upload-artifact@v4
        with:
          name: analysis-report
          path: analysis_reports/full_analysis_report.json
`
