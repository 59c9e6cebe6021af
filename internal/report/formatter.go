package report

import (
	"io"
	"sort"
	"strings"

	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

// ToolVersion is the sceval version stamped into rendered reports.
var ToolVersion = "dev"

// Formatter is the interface for rendering a report.
type Formatter interface {
	Format(w io.Writer, r types.Report) error
}

// row is one contract entry, split back out of its report key.
type row struct {
	key      string
	contract string
	result   types.ContractResult
}

type modelGroup struct {
	model string
	rows  []row
}

// groupByModel splits the report into per-model groups, both the groups
// and the rows inside them sorted for stable rendering.
func groupByModel(r types.Report) []modelGroup {
	grouped := make(map[string][]row)
	for key, res := range r {
		model, contract, ok := types.SplitKey(key)
		if !ok {
			model, contract = "", key
		}
		grouped[model] = append(grouped[model], row{key: key, contract: contract, result: res})
	}

	result := make([]modelGroup, 0, len(grouped))
	for model, rows := range grouped {
		sort.Slice(rows, func(i, j int) bool { return rows[i].contract < rows[j].contract })
		result = append(result, modelGroup{model: model, rows: rows})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].model < result[j].model })
	return result
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
