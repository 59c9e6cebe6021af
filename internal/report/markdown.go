package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

// MarkdownFormatter renders a report as GitHub-flavored markdown,
// designed for GitHub Actions Job Summaries and PR comments.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, r types.Report) error {
	if len(r) == 0 {
		fmt.Fprintf(w, "### :shield: Contract Analysis — No contracts analyzed\n")
		return nil
	}

	stats := r.Stats()
	groups := groupByModel(r)

	fmt.Fprintf(w, "### :shield: Contract Analysis — %d contracts\n\n", stats.Targets)
	fmt.Fprintf(w, "> **%d models** · %d/%d compiled · %d/%d slither-clean\n\n",
		len(groups), stats.SolcPassed, stats.Targets, stats.SlitherPassed, stats.Targets)

	for _, group := range groups {
		f.printModelTable(w, group)
	}

	fmt.Fprintf(w, "---\n")
	fmt.Fprintf(w, "*Generated by [sceval](https://github.com/YassineDev91/smart-contract-eval) %s*\n", ToolVersion)
	return nil
}

func (f *MarkdownFormatter) printModelTable(w io.Writer, group modelGroup) {
	failures := 0
	for _, item := range group.rows {
		if !item.result.Solc.Success || !item.result.Slither.Success {
			failures++
		}
	}

	// Models with failures start expanded
	open := ""
	if failures > 0 {
		open = " open"
	}
	fmt.Fprintf(w, "<details%s>\n", open)
	fmt.Fprintf(w, "<summary><strong>%s</strong> (%d contracts, %d with issues)</summary>\n\n",
		group.model, len(group.rows), failures)

	fmt.Fprintf(w, "| Contract | Solc | Slither |\n")
	fmt.Fprintf(w, "|----------|------|---------|\n")
	for _, item := range group.rows {
		fmt.Fprintf(w, "| `%s` | %s | %s |\n",
			item.contract,
			statusBadge(item.result.Solc.Status(), item.result.Solc.Error),
			statusBadge(item.result.Slither.Status(), item.result.Slither.Error))
	}

	fmt.Fprintf(w, "\n</details>\n\n")
}

func statusBadge(status, errMsg string) string {
	switch status {
	case "compiled", "clean":
		return ":white_check_mark: " + status
	case "findings":
		return ":warning: findings"
	default:
		badge := ":x: " + status
		if errMsg != "" {
			badge += fmt.Sprintf("<br><code>%s</code>", escapeMarkdown(truncate(errMsg, 60)))
		}
		return badge
	}
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
