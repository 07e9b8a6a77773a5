package moneymarket

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// CurvePoint is an instrument on the yield curve.
type CurvePoint struct {
	Ticker string
	Days   int     // days to maturity
	Yield  float64 // annual yield (TEA)
}

// CurvePoints returns the points of the valid records that have an annual
// yield, in the order of records.
func CurvePoints(records []EnrichedInstrument) []CurvePoint {
	var points []CurvePoint
	for e := range Filter(records, All(Valid, Priced)) {
		points = append(points, CurvePoint{Ticker: e.Ticker, Days: e.DaysToMaturity, Yield: e.AnnualYield.Or(0)})
	}
	return points
}

// Top returns at most n records with the best annual yields, best first.
func Top(records []EnrichedInstrument, n int) []EnrichedInstrument {
	var priced []EnrichedInstrument
	for e := range Filter(records, Priced) {
		priced = append(priced, e)
	}
	sorted := Sort(priced, AnnualYieldField, false)
	return sorted[:min(n, len(sorted))]
}

// Curve is the least squares fit of the annual yield on the logarithm of the
// days to maturity: Yield = Alpha + Beta * ln(Days).
type Curve struct {
	Alpha, Beta float64
	RSquared    float64
	N           int // number of points fitted
}

// FitCurve fits the points, skipping those without a finite yield. It needs at
// least two distinct maturities, ok is false otherwise.
func FitCurve(points []CurvePoint) (c Curve, ok bool) {
	x := make([]float64, 0, len(points))
	y := make([]float64, 0, len(points))
	distinct := map[int]bool{}
	for _, p := range points {
		if p.Days <= 0 || math.IsInf(p.Yield, 0) || math.IsNaN(p.Yield) {
			continue
		}
		x = append(x, math.Log(float64(p.Days)))
		y = append(y, p.Yield)
		distinct[p.Days] = true
	}
	if len(distinct) < 2 {
		return Curve{}, false
	}
	c.Alpha, c.Beta = stat.LinearRegression(x, y, nil, false)
	c.RSquared = stat.RSquared(x, y, nil, c.Alpha, c.Beta)
	c.N = len(x)
	return c, true
}

// At returns the fitted yield for days to maturity.
func (c Curve) At(days int) float64 { return c.Alpha + c.Beta*math.Log(float64(days)) }

// Spread returns how much p yields above the curve, positive spreads are
// cheap instruments.
func (c Curve) Spread(p CurvePoint) float64 { return p.Yield - c.At(p.Days) }
