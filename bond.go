package moneymarket

import (
	"fmt"
	"math"

	"github.com/etnz/moneymarket/date"
)

// Bond is a coupon bearing instrument quoted at a clean price. It carries its
// own settlement date and is valued from its dirty price.
type Bond struct {
	ID              string  `json:"id,omitempty"`
	Ticker          string  `json:"ticker"`
	Type            string  `json:"tipo"`
	Settlement      string  `json:"fecha_liquidacion"`
	Maturity        string  `json:"vencimiento"`
	FaceValue       float64 `json:"valor_nominal"`
	CleanPrice      float64 `json:"precio_limpio"`
	AccruedInterest float64 `json:"interes_devengado"`
	CommissionBp    float64 `json:"comision_bp"`
	QuoteSource     string  `json:"fuente_cotizacion,omitempty"`
}

// EnrichedBond is the valuation of a Bond.
type EnrichedBond struct {
	ID              string
	Ticker          string
	Type            string
	Settlement      date.Date
	Maturity        date.Date
	FaceValue       float64
	CleanPrice      float64
	AccruedInterest float64
	CommissionBp    float64
	QuoteSource     string

	Commission       float64 // commission amount
	DirtyPrice       float64 // clean price + accrued interest + commission
	DaysToMaturity   int     // calendar days, at least 1
	YieldToMaturity  float64 // simple yield, face / dirty - 1
	MonthlyEffective float64 // TEM
	AnnualEffective  float64 // TEA, TEM compounded 12 times

	Invalid string // only set on malformed records
}

// Symbol returns the ticker.
func (b Bond) Symbol() string { return b.Ticker }

// Evaluate values the bond. The valuation context is not used: a bond
// carries its own settlement date and costs.
//
// Days to maturity are floored at 1, a same day or past due settlement is
// valued as if one day remained.
func (b Bond) Evaluate(Valuation) (EnrichedBond, error) {
	settlement, err := date.Parse(b.Settlement)
	if err != nil {
		return EnrichedBond{}, fmt.Errorf("settlement date: %w", err)
	}
	maturity, err := date.Parse(b.Maturity)
	if err != nil {
		return EnrichedBond{}, fmt.Errorf("maturity date: %w", err)
	}

	e := b.copy()
	e.Settlement, e.Maturity = settlement, maturity
	e.Commission = b.CleanPrice * (b.CommissionBp / 10000)
	e.DirtyPrice = b.CleanPrice + b.AccruedInterest + e.Commission
	e.DaysToMaturity = max(1, date.DaysBetween(settlement, maturity))
	if e.DirtyPrice > 0 {
		growth := b.FaceValue / e.DirtyPrice
		e.YieldToMaturity = growth - 1
		e.MonthlyEffective = math.Pow(growth, 30/float64(e.DaysToMaturity)) - 1
	}
	e.AnnualEffective = math.Pow(1+e.MonthlyEffective, 12) - 1
	return e, nil
}

// Malformed returns a record for a bond Evaluate rejected.
func (b Bond) Malformed(error) EnrichedBond {
	e := b.copy()
	if d, err := date.Parse(b.Settlement); err == nil {
		e.Settlement = d
	}
	if d, err := date.Parse(b.Maturity); err == nil {
		e.Maturity = d
	}
	e.Invalid = InvalidMalformed
	return e
}

func (b Bond) copy() EnrichedBond {
	return EnrichedBond{
		ID:              b.ID,
		Ticker:          b.Ticker,
		Type:            b.Type,
		FaceValue:       b.FaceValue,
		CleanPrice:      b.CleanPrice,
		AccruedInterest: b.AccruedInterest,
		CommissionBp:    b.CommissionBp,
		QuoteSource:     b.QuoteSource,
	}
}

// Valid reports whether the record has no invalid marker.
func (e EnrichedBond) Valid() bool { return e.Invalid == "" }

// MarshalJSON writes the record with the keys of the source document.
func (e EnrichedBond) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", e.ID)
	w.Append("ticker", e.Ticker)
	w.Append("tipo", e.Type)
	w.Optional("fecha_liquidacion", dateOrNil(e.Settlement))
	w.Optional("vencimiento", dateOrNil(e.Maturity))
	w.Append("valor_nominal", e.FaceValue)
	w.Append("precio_limpio", e.CleanPrice)
	w.Append("interes_devengado", e.AccruedInterest)
	w.Append("comision_bp", e.CommissionBp)
	w.Optional("fuente_cotizacion", e.QuoteSource)
	w.Append("comision", e.Commission)
	w.Append("precio_sucio", e.DirtyPrice)
	w.Append("dias_al_vto", e.DaysToMaturity)
	w.Append("rendimiento_vto", e.YieldToMaturity)
	w.Append("tem", e.MonthlyEffective)
	w.Append("tea", e.AnnualEffective)
	w.Optional("invalid", e.Invalid)
	return w.MarshalJSON()
}
