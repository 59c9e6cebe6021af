// Package sceval provides a public API for batch analysis of
// AI-generated Solidity contracts with solc and slither.
//
// This is the library entry point. For the CLI tool, see cmd/sceval/.
package sceval

import (
	"context"
	"fmt"

	"github.com/YassineDev91/smart-contract-eval/internal/report"
	"github.com/YassineDev91/smart-contract-eval/internal/runner"
	"github.com/YassineDev91/smart-contract-eval/internal/tools"
	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

// Re-export core types from internal packages so consumers don't need to
// import them directly.
type (
	Report         = types.Report
	ContractResult = types.ContractResult
	SolcResult     = types.SolcResult
	SlitherResult  = types.SlitherResult
	RunSummary     = types.RunSummary
	Target         = runner.Target
)

// Analyze walks root for Solidity contracts laid out as
// <model>/<contract>.sol, runs solc and slither on each one in lexical
// order, and returns the aggregated report keyed by "model/contract".
//
// Tool failures (missing binary, compile errors, slither findings) are
// recorded per contract and never abort the batch. The returned error is
// non-nil only for discovery failures or context cancellation.
func Analyze(ctx context.Context, root string, opts ...Option) (Report, error) {
	cfg := applyOpts(opts)
	targets, err := discover(root, cfg)
	if err != nil {
		return nil, err
	}
	r := &runner.Runner{
		Solc:     &tools.Solc{Timeout: cfg.timeout},
		Slither:  &tools.Slither{Timeout: cfg.timeout},
		Progress: cfg.progress,
	}
	return r.Run(ctx, targets)
}

// Targets lists the contracts Analyze would process, without invoking
// any tools. Files directly under root have no model directory and are
// excluded.
func Targets(root string, opts ...Option) ([]*Target, error) {
	cfg := applyOpts(opts)
	return discover(root, cfg)
}

// WriteReport marshals the report with two-space indentation and writes
// it to path, creating the parent directory if needed. An existing file
// at path is replaced.
func WriteReport(path string, r Report) error {
	return report.Write(path, r)
}

// LoadReport reads a previously written report from path.
func LoadReport(path string) (Report, error) {
	return report.Load(path)
}

// DefaultReportPath returns analysis_reports/full_analysis_report.json,
// the location Analyze consumers write to by convention.
func DefaultReportPath() string {
	return report.DefaultPath()
}

func discover(root string, cfg *analyzeConfig) ([]*Target, error) {
	td := &runner.TargetDiscovery{IgnorePatterns: cfg.ignorePatterns}
	targets, err := td.Discover(root)
	if err != nil {
		return nil, fmt.Errorf("discover contracts in %s: %w", root, err)
	}
	return targets, nil
}
