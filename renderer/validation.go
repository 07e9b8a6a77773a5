package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/moneymarket"
	md "github.com/nao1215/markdown"
)

// ValidationMarkdown renders the outcome of a document validation.
func ValidationMarkdown(d *moneymarket.Document, errs []*moneymarket.ValidationError) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Document validation")
	if len(errs) == 0 {
		doc.PlainText(fmt.Sprintf("Version %s, updated at %s: %d instruments, no error.", d.Version, d.UpdatedAt, len(d.Items)))
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Item", "Field", "Error"},
	}
	for _, e := range errs {
		item := "document"
		if e.Item >= 0 {
			item = fmt.Sprintf("%d %s", e.Item, e.Ticker)
		}
		table.Rows = append(table.Rows, []string{item, e.Field, e.Reason})
	}
	doc.Table(table)
	return doc.String()
}
