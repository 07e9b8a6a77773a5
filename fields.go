package moneymarket

import "github.com/etnz/moneymarket/date"

func optionalCell(o Optional[float64]) (Cell, bool) {
	v, ok := o.Get()
	return Num(v), ok
}

func dayCellOf(d date.Date) (Cell, bool) { return Day(d), !d.IsZero() }

// AnnualYieldField sorts instruments by annual yield (TEA).
var AnnualYieldField = Field[EnrichedInstrument]{
	Name: "tir_ea", Kind: Yield,
	Value: func(e EnrichedInstrument) (Cell, bool) { return optionalCell(e.AnnualYield) },
}

// InstrumentFields are the sortable columns of enriched instruments, named
// after their document keys. The first one is the default ranking: best
// annual yield first.
var InstrumentFields = []Field[EnrichedInstrument]{
	AnnualYieldField,
	{Name: "tir_em", Kind: Yield, Value: func(e EnrichedInstrument) (Cell, bool) { return optionalCell(e.PeriodYield) }},
	{Name: "tem", Kind: Yield, Value: func(e EnrichedInstrument) (Cell, bool) { return Num(e.MonthlyRate), true }},
	{Name: "ticker", Kind: Natural, Value: func(e EnrichedInstrument) (Cell, bool) { return Text(e.Ticker), true }},
	{Name: "emision", Kind: Chronological, Value: func(e EnrichedInstrument) (Cell, bool) { return dayCellOf(e.Issue) }},
	{Name: "vencimiento", Kind: Chronological, Value: func(e EnrichedInstrument) (Cell, bool) { return dayCellOf(e.Maturity) }},
	{Name: "dias_al_vto", Kind: Natural, Value: func(e EnrichedInstrument) (Cell, bool) {
		return Num(float64(e.DaysToMaturity)), e.Invalid != InvalidMalformed
	}},
	{Name: "fv", Kind: Natural, Value: func(e EnrichedInstrument) (Cell, bool) {
		return Num(e.ProjectedValue), e.Invalid != InvalidMalformed
	}},
	{Name: "precio_base", Kind: Natural, Value: func(e EnrichedInstrument) (Cell, bool) { return optionalCell(e.BasePrice) }},
	{Name: "precio_neto", Kind: Natural, Value: func(e EnrichedInstrument) (Cell, bool) { return optionalCell(e.NetPrice) }},
}

// BondFields are the sortable columns of enriched bonds. The first one is the
// default ranking: earliest maturity first.
var BondFields = []Field[EnrichedBond]{
	{Name: "vencimiento", Kind: Chronological, Value: func(e EnrichedBond) (Cell, bool) { return dayCellOf(e.Maturity) }},
	{Name: "ticker", Kind: Natural, Value: func(e EnrichedBond) (Cell, bool) { return Text(e.Ticker), true }},
	{Name: "tipo", Kind: Natural, Value: func(e EnrichedBond) (Cell, bool) { return Text(e.Type), true }},
	{Name: "dias_al_vto", Kind: Natural, Value: func(e EnrichedBond) (Cell, bool) { return Num(float64(e.DaysToMaturity)), e.Valid() }},
	{Name: "precio_limpio", Kind: Natural, Value: func(e EnrichedBond) (Cell, bool) { return Num(e.CleanPrice), true }},
	{Name: "interes_devengado", Kind: Natural, Value: func(e EnrichedBond) (Cell, bool) { return Num(e.AccruedInterest), true }},
	{Name: "comision_bp", Kind: Natural, Value: func(e EnrichedBond) (Cell, bool) { return Num(e.CommissionBp), true }},
	{Name: "precio_sucio", Kind: Natural, Value: func(e EnrichedBond) (Cell, bool) { return Num(e.DirtyPrice), e.Valid() }},
	{Name: "rendimiento_vto", Kind: Yield, Value: func(e EnrichedBond) (Cell, bool) { return Num(e.YieldToMaturity), e.Valid() }},
	{Name: "tem", Kind: Yield, Value: func(e EnrichedBond) (Cell, bool) { return Num(e.MonthlyEffective), e.Valid() }},
	{Name: "tea", Kind: Yield, Value: func(e EnrichedBond) (Cell, bool) { return Num(e.AnnualEffective), e.Valid() }},
}

// FieldNames returns the names of fields, for usage messages.
func FieldNames[T any](fields []Field[T]) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

// Valid keeps instruments without an invalid marker.
func Valid(e EnrichedInstrument) bool { return e.Valid() }

// Fresh keeps instruments whose quote is not stale.
func Fresh(e EnrichedInstrument) bool { return !e.Stale }

// Priced keeps instruments with an annual yield.
func Priced(e EnrichedInstrument) bool { return e.AnnualYield.Present() }

// MaturingIn keeps instruments maturing within r.
func MaturingIn(r date.Range) func(EnrichedInstrument) bool {
	return func(e EnrichedInstrument) bool { return !e.Maturity.IsZero() && r.Contains(e.Maturity) }
}
