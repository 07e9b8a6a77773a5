package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/moneymarket"
	"github.com/etnz/moneymarket/date"
	md "github.com/nao1215/markdown"
)

// InstrumentsMarkdown renders enriched instruments, in the given order, as
// of a date.
func InstrumentsMarkdown(asOf date.Date, records []moneymarket.EnrichedInstrument) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("LECAPs as of %s", asOf))
	if len(records) == 0 {
		doc.PlainText("No instrument.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{
			"Ticker", "Issue", "Maturity", "Days", "TEM", "Value at maturity",
			"Price", "Commission", "Markup", "Net price", "TIR TEM", "TIR TEA", "Quote",
		},
	}
	for _, e := range records {
		table.Rows = append(table.Rows, []string{
			e.Ticker,
			day(e.Issue),
			day(e.Maturity),
			days(e.DaysToMaturity),
			fmt.Sprintf("%.5f", e.MonthlyRate),
			price(e.ProjectedValue),
			fmt.Sprintf("%s (%s)", optionalPrice(e.BasePrice), e.Source),
			percent(e.Params.CommissionPct),
			fmt.Sprintf("%s + %s", percent(e.Params.MarkupPct), price(e.Params.MarkupAmount)),
			optionalPrice(e.NetPrice),
			optionalPercent(e.PeriodYield),
			optionalPercent(e.AnnualYield),
			quoteStatus(e),
		})
	}
	doc.Table(table)
	return doc.String()
}
