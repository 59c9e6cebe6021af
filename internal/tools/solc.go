package tools

import (
	"context"
	"time"

	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

// Solc invokes the Solidity compiler in AST mode. The zero value runs
// without a per-call timeout.
type Solc struct {
	Timeout time.Duration
}

// Check compiles one contract with `solc --ast-compact-json --optimize`.
// It never returns an error: every outcome, including a failed launch,
// becomes a record. When the compiler ran, Output carries stdout on exit 0
// and stderr otherwise, even when that stream is empty. When it did not
// run, Output stays unset and Error explains why.
func (c *Solc) Check(ctx context.Context, path string) types.SolcResult {
	stdout, stderr, err := run(ctx, c.Timeout, SolcBin, "--ast-compact-json", "--optimize", path)
	switch {
	case err == nil:
		return types.SolcResult{File: path, Success: true, Output: &stdout}
	case exited(err):
		return types.SolcResult{File: path, Success: false, Output: &stderr}
	default:
		return types.SolcResult{File: path, Success: false, Error: err.Error()}
	}
}
