package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YassineDev91/smart-contract-eval/internal/report"
)

var flagVerbose bool

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Format an existing report for humans",
	Long:  `Reads the report file and renders it as a terminal dashboard, a Markdown summary, or a standalone HTML page.`,
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Show error details per contract")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	r, err := report.Load(resolveReportPath(cfg))
	if err != nil {
		return err
	}

	report.ToolVersion = Version

	var formatter report.Formatter
	switch strings.ToLower(flagFormat) {
	case "markdown", "md":
		formatter = &report.MarkdownFormatter{}
	case "html":
		formatter = &report.HTMLFormatter{}
	case "terminal", "":
		formatter = &report.TerminalFormatter{NoColor: flagNoColor, Verbose: flagVerbose}
	default:
		return fmt.Errorf("unknown format %q (use terminal, markdown, or html)", flagFormat)
	}

	w := cmd.OutOrStdout()
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	return formatter.Format(w, r)
}
