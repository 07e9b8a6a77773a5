package moneymarket

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/etnz/moneymarket/date"
	"github.com/google/go-cmp/cmp"
)

func batch() []Instrument {
	bad := lecap()
	bad.Ticker = "BAD"
	bad.Maturity = "2025-13-01"

	var items []Instrument
	for i := range 20 {
		inst := lecap()
		inst.Ticker = fmt.Sprintf("S%02d", i)
		inst.Maturity = date.MustParse("2024-08-01").Add(15 * i).String()
		items = append(items, inst)
	}
	return append(items[:5:5], append([]Instrument{bad}, items[5:]...)...)
}

func TestEvaluateAllIsolatesFailures(t *testing.T) {
	items := batch()
	got, err := EvaluateAll[EnrichedInstrument](items, valuation())
	if err == nil {
		t.Fatalf("EvaluateAll() error = nil, want the BAD failure")
	}
	if !strings.Contains(err.Error(), "BAD") {
		t.Errorf("EvaluateAll() error = %v, want it to name BAD", err)
	}
	var fe *date.FormatError
	if !errors.As(err, &fe) {
		t.Errorf("EvaluateAll() error = %v, want a *date.FormatError inside", err)
	}
	if len(got) != len(items) {
		t.Fatalf("len(EvaluateAll()) = %d, want %d", len(got), len(items))
	}
	for i, e := range got {
		if e.Ticker != items[i].Ticker {
			t.Errorf("record %d is %q, want %q: order must be kept", i, e.Ticker, items[i].Ticker)
		}
	}
	if got[5].Invalid != InvalidMalformed {
		t.Errorf("BAD Invalid = %q, want %q", got[5].Invalid, InvalidMalformed)
	}
	if got[5].Issue != date.MustParse("2024-01-15") {
		t.Errorf("BAD Issue = %v, the readable date should be kept", got[5].Issue)
	}
	if !got[6].Valid() || !got[6].AnnualYield.Present() {
		t.Errorf("the record after BAD should be valued: %+v", got[6])
	}
}

func TestEvaluateAllParallel(t *testing.T) {
	items := batch()
	seq, seqErr := EvaluateAll[EnrichedInstrument](items, valuation())
	par, parErr := EvaluateAll[EnrichedInstrument](items, valuation(), Parallel(4))
	if seqErr.Error() != parErr.Error() {
		t.Errorf("errors differ:\n%v\n%v", seqErr, parErr)
	}
	opts := cmp.AllowUnexported(Optional[float64]{}, Optional[int]{}, optionalTime{}, date.Date{})
	if diff := cmp.Diff(seq, par, opts); diff != "" {
		t.Errorf("parallel batch differs (-sequential +parallel):\n%s", diff)
	}
}

func TestEvaluateAllBonds(t *testing.T) {
	good := testBond()
	bad := testBond()
	bad.Ticker, bad.Maturity = "BAD", ""
	got, err := EvaluateAll[EnrichedBond]([]Bond{good, bad}, Valuation{})
	if err == nil {
		t.Errorf("EvaluateAll() error = nil, want the BAD failure")
	}
	if len(got) != 2 || !got[0].Valid() || got[1].Invalid != InvalidMalformed {
		t.Errorf("EvaluateAll() = %+v", got)
	}
}

func TestEvaluateAllEmpty(t *testing.T) {
	got, err := EvaluateAll[EnrichedInstrument]([]Instrument{}, valuation(), Parallel(2))
	if err != nil || len(got) != 0 {
		t.Errorf("EvaluateAll(empty) = %v, %v", got, err)
	}
}
