package analyst

import (
	"fmt"
	"sort"
	"strings"

	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

// excerptLimit caps how much raw tool output reaches the model per record.
const excerptLimit = 240

// SystemPrompt provides strict directions and schema for JSON output.
func SystemPrompt() string {
	return `You are a senior smart contract security auditor reviewing batch analysis results for AI-generated Solidity contracts. You must produce one valid JSON object only (no markdown, no commentary). Do not include code fences.

Requirements:
- Output must be a single JSON object.
- Judge compilation failures and static-analysis findings per model, comparing models against each other.
- Keep every string concise; notable is a list of the most important observations.
- Never invent findings that are not supported by the digest you were given.

Schema (example with empty values):
{
  "verdict": "<string>",
  "counts": {"contracts": 0, "compiled": 0, "slither_clean": 0},
  "models": [
    {"name": "<string>", "assessment": "<string>"}
  ],
  "notable": ["<string>"],
  "advice": "<string>"
}`
}

// UserPrompt builds a compact digest of the report for the model: one
// status line per contract plus a trimmed excerpt of any failure output.
func UserPrompt(r types.Report) string {
	stats := r.Stats()

	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "Batch results: %d contracts, %d compiled, %d slither-clean.\n\n",
		stats.Targets, stats.SolcPassed, stats.SlitherPassed)

	for _, key := range keys {
		res := r[key]
		fmt.Fprintf(&b, "%s: solc=%s slither=%s\n", key, res.Solc.Status(), res.Slither.Status())
		if detail := solcDetail(res.Solc); detail != "" {
			fmt.Fprintf(&b, "  solc: %s\n", detail)
		}
		if res.Slither.Error != "" {
			fmt.Fprintf(&b, "  slither: %s\n", excerpt(res.Slither.Error))
		}
	}

	b.WriteString("\nRespond with the JSON per schema.")
	return b.String()
}

func solcDetail(res types.SolcResult) string {
	if res.Success {
		return ""
	}
	if res.Error != "" {
		return excerpt(res.Error)
	}
	if res.Output != nil {
		return excerpt(*res.Output)
	}
	return ""
}

func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > excerptLimit {
		return s[:excerptLimit] + "..."
	}
	return s
}
