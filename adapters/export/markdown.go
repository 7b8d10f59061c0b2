package export

import (
	"io"

	"github.com/nao1215/markdown"

	"gofarma/domain/report"
)

// MarkdownExporter writes a titled markdown document with the report table.
type MarkdownExporter struct{}

func (MarkdownExporter) ContentType() string { return "text/markdown; charset=utf-8" }
func (MarkdownExporter) Extension() string   { return ".md" }

func (MarkdownExporter) Export(w io.Writer, t *report.Table, opts Options) error {
	md := markdown.NewMarkdown(w)
	md.H2(t.Title)
	md.PlainText("")
	if opts.Generated != "" {
		md.PlainText("Generado: " + opts.Generated)
		md.PlainText("")
	}

	if t.Empty() {
		md.PlainText(emptyText)
		return md.Build()
	}

	md.Table(markdown.TableSet{
		Header: headerLabels(t),
		Rows:   bodyText(t),
	})
	return md.Build()
}
