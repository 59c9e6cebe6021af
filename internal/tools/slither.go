package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

// Slither invokes the slither static analyzer with JSON output on stdout.
// The zero value runs without a per-call timeout.
type Slither struct {
	Timeout time.Duration
}

// Check analyzes one contract with `slither <path> --json -`. Slither
// reports findings through a nonzero exit, so Success tracks the exit code
// while Output still carries the parsed payload. The payload is read from
// stdout, falling back to stderr when stdout is empty; no output at all
// yields an empty object. A payload that is not valid JSON, like a launch
// failure, becomes an error record without Output.
func (c *Slither) Check(ctx context.Context, path string) types.SlitherResult {
	stdout, stderr, err := run(ctx, c.Timeout, SlitherBin, path, "--json", "-")
	if err != nil && !exited(err) {
		return types.SlitherResult{File: path, Success: false, Error: err.Error()}
	}

	res := types.SlitherResult{File: path, Success: err == nil}
	raw := stdout
	if raw == "" {
		raw = stderr
	}
	if raw == "" {
		res.Output = map[string]any{}
		return res
	}

	var payload any
	if jsonErr := json.Unmarshal([]byte(raw), &payload); jsonErr != nil {
		return types.SlitherResult{File: path, Success: false, Error: jsonErr.Error()}
	}
	res.Output = payload
	return res
}
