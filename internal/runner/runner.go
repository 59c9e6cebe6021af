// Package runner drives a batch of contract analyses and aggregates the
// results into a report keyed by model/contract.
package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

// CompilerCheck produces the compilation half of a contract record.
type CompilerCheck interface {
	Check(ctx context.Context, path string) types.SolcResult
}

// AnalyzerCheck produces the static-analysis half of a contract record.
type AnalyzerCheck interface {
	Check(ctx context.Context, path string) types.SlitherResult
}

// Runner processes targets strictly in order, one tool invocation at a
// time. Tool failures are recorded in the report and never stop the batch.
type Runner struct {
	Solc     CompilerCheck
	Slither  AnalyzerCheck
	Progress io.Writer // one line per target; nil silences progress
}

// Run analyzes every target and returns the aggregated report. Targets
// sharing a key overwrite each other, last one wins. The only error is
// context cancellation, and a canceled run returns no report.
func (r *Runner) Run(ctx context.Context, targets []*Target) (types.Report, error) {
	report := make(types.Report, len(targets))
	for _, t := range targets {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if r.Progress != nil {
			fmt.Fprintf(r.Progress, "Analyzing %s...\n", t.Key())
		}
		report[t.Key()] = types.ContractResult{
			Solc:    r.Solc.Check(ctx, t.Path),
			Slither: r.Slither.Check(ctx, t.Path),
		}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return report, nil
}
