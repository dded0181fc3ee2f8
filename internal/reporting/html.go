package reporting

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	// The feedback embeds <details> blocks; student text in them is escaped
	// before rendering.
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.75rem; }
td:last-child { text-align: right; }
code { background: #f4f4f4; padding: 0 0.25rem; }
</style>
</head>
<body>
%s</body>
</html>
`

// RenderHTML converts a markdown document into a standalone HTML page.
func RenderHTML(title, md string) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return fmt.Appendf(nil, htmlPage, html.EscapeString(title), body.String()), nil
}
