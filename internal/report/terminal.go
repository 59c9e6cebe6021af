package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

// ANSI color codes
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

const (
	barWidth      = 40
	lineWidth     = 72
	contractWidth = 28
)

// TerminalFormatter renders a report as a per-model dashboard.
type TerminalFormatter struct {
	NoColor bool
	Verbose bool
}

func (f *TerminalFormatter) color(code, text string) string {
	if f.NoColor {
		return text
	}
	return code + text + reset
}

func (f *TerminalFormatter) Format(w io.Writer, r types.Report) error {
	if !f.NoColor {
		if os.Getenv("NO_COLOR") != "" {
			f.NoColor = true
		}
	}

	groups := groupByModel(r)
	f.printHeader(w, r, groups)

	if len(r) == 0 {
		fmt.Fprintf(w, "\n  No contracts analyzed.\n")
	} else {
		f.printDashboard(w, groups)
		for _, group := range groups {
			f.printModelSection(w, group)
		}
	}

	f.printFooter(w, r)
	return nil
}

func (f *TerminalFormatter) separator() string {
	return strings.Repeat("─", lineWidth)
}

func (f *TerminalFormatter) sectionHeader(title string) string {
	prefix := "── " + title + " "
	displayLen := utf8.RuneCountInString(prefix)
	remaining := max(lineWidth-displayLen, 0)
	return prefix + strings.Repeat("─", remaining)
}

func (f *TerminalFormatter) printHeader(w io.Writer, r types.Report, groups []modelGroup) {
	sep := f.separator()
	fmt.Fprintf(w, "\n%s\n", f.color(dim, sep))
	fmt.Fprintf(w, "  %s\n", f.color(bold, "SCEVAL ANALYSIS REPORT"))
	fmt.Fprintf(w, "  %d contracts  ·  %d models\n", len(r), len(groups))
	fmt.Fprintf(w, "%s\n", f.color(dim, sep))
}

func (f *TerminalFormatter) printDashboard(w io.Writer, groups []modelGroup) {
	fmt.Fprintln(w)
	for _, group := range groups {
		compiled, clean := 0, 0
		for _, row := range group.rows {
			if row.result.Solc.Success {
				compiled++
			}
			if row.result.Slither.Success {
				clean++
			}
		}
		label := fmt.Sprintf("  %-12s", group.model)
		bar := f.renderBar(compiled, len(group.rows), barWidth)
		fmt.Fprintf(w, "%s %s solc %d/%d · clean %d/%d\n",
			f.color(bold, label), bar, compiled, len(group.rows), clean, len(group.rows))
	}
}

func (f *TerminalFormatter) printModelSection(w io.Writer, group modelGroup) {
	title := fmt.Sprintf("%s (%d)", group.model, len(group.rows))
	fmt.Fprintf(w, "\n%s\n\n", f.color(bold, f.sectionHeader(title)))

	for _, item := range group.rows {
		f.printContractRow(w, item)
	}
}

func (f *TerminalFormatter) printContractRow(w io.Writer, item row) {
	icon := f.color(cyan, "✔")
	if !item.result.Solc.Success || !item.result.Slither.Success {
		icon = f.color(red+bold, "✖")
	}

	contract := fmt.Sprintf("%-*s", contractWidth, truncate(item.contract, contractWidth))
	solc := f.statusCell("solc", item.result.Solc.Status())
	slither := f.statusCell("slither", item.result.Slither.Status())
	fmt.Fprintf(w, "  %s %s %s  %s\n", icon, f.color(bold, contract), solc, slither)

	if f.Verbose {
		if msg := item.result.Solc.Error; msg != "" {
			fmt.Fprintf(w, "      %s solc: %s\n", f.color(dim, "│"), truncate(msg, 60))
		}
		if msg := item.result.Slither.Error; msg != "" {
			fmt.Fprintf(w, "      %s slither: %s\n", f.color(dim, "│"), truncate(msg, 60))
		}
	}
}

func (f *TerminalFormatter) statusCell(tool, status string) string {
	cell := fmt.Sprintf("%s %-8s", tool, status)
	switch status {
	case "compiled", "clean":
		return cell
	case "findings":
		return f.color(yellow, cell)
	default:
		return f.color(red, cell)
	}
}

func (f *TerminalFormatter) printFooter(w io.Writer, r types.Report) {
	stats := r.Stats()
	sep := f.separator()
	fmt.Fprintf(w, "\n%s\n", f.color(dim, sep))
	fmt.Fprintf(w, "  %d contracts · %d compiled · %d slither-clean\n",
		stats.Targets, stats.SolcPassed, stats.SlitherPassed)
	fmt.Fprintf(w, "%s\n", f.color(dim, sep))
}

func (f *TerminalFormatter) renderBar(passed, total, width int) string {
	if total == 0 {
		return f.color(dim, strings.Repeat("░", width))
	}
	filled := passed * width / total
	if filled == 0 && passed > 0 {
		filled = 1
	}
	// Keep one empty block visible unless everything passed
	if filled == width && passed < total {
		filled = width - 1
	}
	empty := width - filled

	return f.color(cyan, strings.Repeat("█", filled)) +
		f.color(dim, strings.Repeat("░", empty))
}
