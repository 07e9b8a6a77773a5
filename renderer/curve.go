package renderer

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/etnz/moneymarket"
	md "github.com/nao1215/markdown"
)

// CurveMarkdown renders the yield curve: its points, the best instruments,
// and the fitted curve when there is one.
func CurveMarkdown(points []moneymarket.CurvePoint, top []moneymarket.EnrichedInstrument, curve moneymarket.Curve, fitted bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Yield curve")

	if len(top) > 0 {
		doc.H2("Best yields")
		tickers := make([]string, 0, len(top))
		for _, e := range top {
			tickers = append(tickers, fmt.Sprintf("%s %s", md.Bold(e.Ticker), optionalPercent(e.AnnualYield)))
		}
		doc.OrderedList(tickers...)
	}

	if fitted {
		doc.H2("Fit")
		doc.PlainText(fmt.Sprintf("TEA = %s + %s × ln(days), R² = %.4f over %d instruments.",
			percent(curve.Alpha), percent(curve.Beta), curve.RSquared, curve.N))
	}

	doc.H2("Points")
	if len(points) == 0 {
		doc.PlainText("No priced instrument.")
		return doc.String()
	}
	header := []string{"Ticker", "Days", "TEA"}
	alignment := []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight}
	if fitted {
		header = append(header, "Curve", "Spread")
		alignment = append(alignment, md.AlignRight, md.AlignRight)
	}
	table := md.TableSet{Alignment: alignment, Header: header}

	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b moneymarket.CurvePoint) int { return a.Days - b.Days })
	for _, p := range sorted {
		row := []string{p.Ticker, days(p.Days), percent(p.Yield)}
		if fitted {
			row = append(row, percent(curve.At(p.Days)), percent(curve.Spread(p)))
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)
	return doc.String()
}
