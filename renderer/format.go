// Package renderer renders valuations as markdown.
package renderer

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/etnz/moneymarket"
	"github.com/etnz/moneymarket/date"
	"github.com/shopspring/decimal"
)

// Currency of the rendered amounts.
const Currency = money.ARS

// None is rendered for absent values.
const None = "-"

var hundred = decimal.NewFromInt(100)

// price formats an amount in Currency.
func price(v float64) string {
	if !isFinite(v) {
		return None
	}
	return money.NewFromFloat(v, Currency).Display()
}

func optionalPrice(o moneymarket.Optional[float64]) string {
	if v, ok := o.Get(); ok {
		return price(v)
	}
	return None
}

// percent formats a rate, 0.0123 is "1.23%".
func percent(v float64) string {
	if !isFinite(v) {
		return None
	}
	return decimal.NewFromFloat(v).Mul(hundred).StringFixed(2) + "%"
}

func optionalPercent(o moneymarket.Optional[float64]) string {
	if v, ok := o.Get(); ok {
		return percent(v)
	}
	return None
}

// days formats a day count with its length in 30 days months: "183 (6.1)".
func days(n int) string {
	months := decimal.NewFromInt(int64(n)).Div(decimal.NewFromInt(30)).StringFixed(1)
	return fmt.Sprintf("%d (%s)", n, months)
}

func isFinite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }

func day(d date.Date) string {
	if d.IsZero() {
		return None
	}
	return d.String()
}

// quoteStatus is the freshness column of an instrument.
func quoteStatus(e moneymarket.EnrichedInstrument) string {
	switch {
	case !e.Valid():
		return e.Invalid
	case e.Stale:
		return "stale"
	default:
		return "ok"
	}
}
