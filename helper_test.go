package moneymarket

import (
	"math"
	"time"

	"github.com/etnz/moneymarket/date"
)

// testNow is the wall clock of the tests.
var testNow = time.Date(2024, time.July, 15, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// near compares floats with an absolute precision.
func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// optionalTime is spelled once for cmp options.
type optionalTime = Optional[time.Time]

// P is a helper to build a present float Optional.
func P(v float64) Optional[float64] { return Some(v) }

// lecap returns the reference instrument: issued 2024-01-15, matures
// 2025-01-15 at 4% a month, last traded at 118.50 one hour ago.
func lecap() Instrument {
	return Instrument{
		Ticker:      "S15E5",
		Issue:       "2024-01-15",
		Maturity:    "2025-01-15",
		MonthlyRate: 0.04,
		Quotes: &Quotes{
			Last: P(118.50),
			Time: Some(testNow.Add(-time.Hour)),
		},
	}
}

// valuation returns the reference valuation: T+1 as of 2024-07-15, no costs.
func valuation() Valuation {
	return Valuation{
		Params: Params{TPlus: Some(1)},
		AsOf:   date.MustParse("2024-07-15"),
		Clock:  fixedClock,
	}
}
