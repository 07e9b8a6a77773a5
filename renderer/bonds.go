package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/moneymarket"
	md "github.com/nao1215/markdown"
)

// BondsMarkdown renders enriched bonds, in the given order.
func BondsMarkdown(records []moneymarket.EnrichedBond) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Bonds")
	if len(records) == 0 {
		doc.PlainText("No bond.")
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
		},
		Header: []string{
			"Ticker", "Type", "Maturity", "Days", "Clean price", "Accrued",
			"Commission", "Dirty price", "Yield", "TEM", "TEA",
		},
	}
	for _, e := range records {
		if !e.Valid() {
			table.Rows = append(table.Rows, []string{
				e.Ticker, e.Type, day(e.Maturity), None, price(e.CleanPrice), price(e.AccruedInterest),
				None, None, None, None, e.Invalid,
			})
			continue
		}
		table.Rows = append(table.Rows, []string{
			e.Ticker,
			e.Type,
			day(e.Maturity),
			days(e.DaysToMaturity),
			price(e.CleanPrice),
			price(e.AccruedInterest),
			fmt.Sprintf("%g bp (%s)", e.CommissionBp, price(e.Commission)),
			price(e.DirtyPrice),
			percent(e.YieldToMaturity),
			percent(e.MonthlyEffective),
			percent(e.AnnualEffective),
		})
	}
	doc.Table(table)
	return doc.String()
}

// BondBookMarkdown renders the raw bonds of a book with their ids, for editing.
func BondBookMarkdown(bonds []moneymarket.Bond) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Bond book")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"ID", "Ticker", "Type", "Maturity", "Clean price", "Commission"},
	}
	for _, b := range bonds {
		table.Rows = append(table.Rows, []string{
			b.ID, b.Ticker, b.Type, b.Maturity, fmt.Sprintf("%g", b.CleanPrice), fmt.Sprintf("%g bp", b.CommissionBp),
		})
	}
	doc.Table(table)
	return doc.String()
}
