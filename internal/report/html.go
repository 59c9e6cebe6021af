package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

const htmlHeader = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Contract Analysis Report</title>
<style>
body { font-family: -apple-system, sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; color: #1f2328; }
table { border-collapse: collapse; width: 100%; margin: 0.5rem 0 1rem; }
th, td { border: 1px solid #d1d9e0; padding: 6px 13px; text-align: left; }
th { background: #f6f8fa; }
code { background: #f6f8fa; padding: 0.2em 0.4em; border-radius: 6px; font-size: 85%; }
details { margin: 0.75rem 0; }
summary { cursor: pointer; }
blockquote { color: #59636e; border-left: 0.25em solid #d1d9e0; margin: 0; padding: 0 1em; }
</style>
</head>
<body>
`

const htmlFooter = `</body>
</html>
`

// HTMLFormatter renders the markdown report into a standalone HTML page.
type HTMLFormatter struct{}

func (f *HTMLFormatter) Format(w io.Writer, r types.Report) error {
	var md bytes.Buffer
	if err := (&MarkdownFormatter{}).Format(&md, r); err != nil {
		return err
	}

	// GFM gives us the status tables, unsafe keeps the <details> blocks
	converter := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	var body bytes.Buffer
	if err := converter.Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("render report html: %w", err)
	}

	if _, err := io.WriteString(w, htmlHeader); err != nil {
		return err
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return err
	}
	_, err := io.WriteString(w, htmlFooter)
	return err
}
