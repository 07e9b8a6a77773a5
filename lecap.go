package moneymarket

import (
	"fmt"
	"math"

	"github.com/etnz/moneymarket/date"
)

// Par is the redemption value of a discount instrument, prices are quoted per
// Par nominal.
const Par = 100.0

// Instrument is a discount-to-par instrument (a LECAP): it pays its issue
// value capitalized at a monthly rate, once, at maturity.
//
// Dates are kept as written in the source document and parsed by Evaluate.
type Instrument struct {
	Ticker      string  `json:"ticker"`
	Issue       string  `json:"emision"`
	Maturity    string  `json:"vencimiento"`
	MonthlyRate float64 `json:"tem"`
	Overrides   Params  `json:"overrides,omitzero"`
	Quotes      *Quotes `json:"precios"`
}

// EnrichedInstrument is the valuation of an Instrument.
type EnrichedInstrument struct {
	Ticker      string
	Issue       date.Date
	Maturity    date.Date
	MonthlyRate float64
	Overrides   Params
	Quotes      Quotes

	Params         EffectiveParams
	Settlement     date.Date
	DaysToMaturity int     // calendar days from settlement to maturity
	Days360        int     // 30E/360 days from issue to maturity
	Months         int     // whole 30 days months in Days360
	MonthFraction  float64 // remaining fraction of a month in Days360
	ProjectedValue float64 // redemption value at maturity per Par nominal

	BasePrice   Optional[float64]
	Source      PriceSource
	Stale       bool
	NetPrice    Optional[float64] // base price with commission and markups
	PeriodYield Optional[float64] // TEM: effective rate for 30 days
	AnnualYield Optional[float64] // TEA: effective rate for 360 days

	Invalid string // empty when the record is valid
}

// Symbol returns the ticker.
func (inst Instrument) Symbol() string { return inst.Ticker }

// Evaluate values the instrument at v.AsOf.
//
// A settlement on or after maturity does not stop the computation: the record
// is marked InvalidExpired and only its yields are absent.
func (inst Instrument) Evaluate(v Valuation) (EnrichedInstrument, error) {
	issue, err := date.Parse(inst.Issue)
	if err != nil {
		return EnrichedInstrument{}, fmt.Errorf("issue date: %w", err)
	}
	maturity, err := date.Parse(inst.Maturity)
	if err != nil {
		return EnrichedInstrument{}, fmt.Errorf("maturity date: %w", err)
	}
	p, err := Resolve(inst.Overrides, v.Params)
	if err != nil {
		return EnrichedInstrument{}, err
	}

	e := EnrichedInstrument{
		Ticker:      inst.Ticker,
		Issue:       issue,
		Maturity:    maturity,
		MonthlyRate: inst.MonthlyRate,
		Overrides:   inst.Overrides,
		Params:      p,
	}
	if inst.Quotes != nil {
		e.Quotes = *inst.Quotes
	}

	e.Settlement = v.AsOf.Add(p.TPlus)
	e.DaysToMaturity = date.DaysBetween(e.Settlement, maturity)
	if e.DaysToMaturity <= 0 {
		e.Invalid = InvalidExpired
	}

	e.Days360 = date.Days360(issue, maturity)
	// floor division, a maturity before issue must not round toward zero.
	e.Months = int(math.Floor(float64(e.Days360) / 30))
	e.MonthFraction = float64(e.Days360-e.Months*30) / 30
	e.ProjectedValue = Par * math.Pow(1+inst.MonthlyRate, float64(e.Months)+e.MonthFraction)

	sel := SelectPrice(e.Quotes, v.now())
	e.BasePrice, e.Source, e.Stale = sel.Price, sel.Source, sel.Stale

	// a zero base price is selected and reported, but it is no price to buy at.
	if base, ok := e.BasePrice.Get(); ok && base != 0 {
		net := base*(1+p.CommissionPct)*(1+p.MarkupPct) + p.MarkupAmount
		e.NetPrice = Some(net)
		if net > 0 && e.DaysToMaturity > 0 {
			growth := e.ProjectedValue / net
			days := float64(e.DaysToMaturity)
			e.PeriodYield = Some(math.Pow(growth, 30/days) - 1)
			e.AnnualYield = Some(math.Pow(growth, 360/days) - 1)
		}
	}
	return e, nil
}

// Malformed returns a record for an instrument Evaluate rejected.
func (inst Instrument) Malformed(err error) EnrichedInstrument {
	e := EnrichedInstrument{
		Ticker:      inst.Ticker,
		MonthlyRate: inst.MonthlyRate,
		Overrides:   inst.Overrides,
		Source:      SourceNone,
		Stale:       true,
		Invalid:     InvalidMalformed,
	}
	if inst.Quotes != nil {
		e.Quotes = *inst.Quotes
	}
	// keep whichever date is readable, it still sorts the record in the right place.
	if d, err := date.Parse(inst.Issue); err == nil {
		e.Issue = d
	}
	if d, err := date.Parse(inst.Maturity); err == nil {
		e.Maturity = d
	}
	return e
}

// Valid reports whether the record has no invalid marker.
func (e EnrichedInstrument) Valid() bool { return e.Invalid == "" }

// MarshalJSON writes the record with the keys of the source document, absent
// values are null.
func (e EnrichedInstrument) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("ticker", e.Ticker)
	w.Optional("emision", dateOrNil(e.Issue))
	w.Optional("vencimiento", dateOrNil(e.Maturity))
	w.Append("tem", e.MonthlyRate)
	w.Optional("overrides", e.Overrides)
	w.Append("precios", e.Quotes)
	w.Append("t_plus", e.Params.TPlus)
	w.Append("comision_pct", e.Params.CommissionPct)
	w.Append("dm_pct", e.Params.MarkupPct)
	w.Append("dm_monto", e.Params.MarkupAmount)
	w.Optional("fecha_liquidacion", dateOrNil(e.Settlement))
	w.Append("dias_al_vto", e.DaysToMaturity)
	w.Append("vigencia_360", e.Days360)
	w.Append("fv", e.ProjectedValue)
	w.Append("precio_base", e.BasePrice)
	w.Append("precio_src", e.Source)
	w.Append("stale", e.Stale)
	w.Append("precio_neto", e.NetPrice)
	w.Append("tir_em", e.PeriodYield)
	w.Append("tir_ea", e.AnnualYield)
	w.Optional("invalid", e.Invalid)
	return w.MarshalJSON()
}

// dateOrNil maps the zero date to nil so that Optional skips it.
func dateOrNil(d date.Date) any {
	if d.IsZero() {
		return nil
	}
	return d
}
