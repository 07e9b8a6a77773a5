package moneymarket

import (
	"errors"
	"fmt"
	"time"

	"github.com/etnz/moneymarket/date"
	"golang.org/x/sync/errgroup"
)

// Invalid markers of enriched records.
const (
	InvalidExpired   = "expired-or-illiquid" // settlement on or after maturity
	InvalidMalformed = "malformed"           // the record could not be evaluated
)

// Valuation is the context shared by every instrument of a batch.
type Valuation struct {
	Params Params    // global parameters
	AsOf   date.Date // reference date for settlement
	// Clock reads the wall clock for quote staleness, time.Now when nil.
	// It never influences prices or yields.
	Clock func() time.Time
}

func (v Valuation) now() time.Time {
	if v.Clock == nil {
		return time.Now()
	}
	return v.Clock()
}

// FinancialInstrument is implemented by each instrument family. R is the
// enriched record the family produces.
type FinancialInstrument[R any] interface {
	// Symbol returns the ticker.
	Symbol() string
	// Evaluate computes the enriched record. It has no side effect.
	Evaluate(v Valuation) (R, error)
	// Malformed returns a record marked InvalidMalformed that carries whatever
	// raw fields could be copied, to stand in for a record Evaluate rejected.
	Malformed(err error) R
}

type batchOptions struct {
	workers int
}

// BatchOption configures EvaluateAll.
type BatchOption func(*batchOptions)

// Parallel evaluates the batch with up to n concurrent workers.
func Parallel(n int) BatchOption {
	return func(o *batchOptions) { o.workers = n }
}

// EvaluateAll evaluates every item in order. An item that fails is replaced
// by its Malformed record so that one bad record does not blank the batch;
// the failures are returned joined, each prefixed by the item's symbol.
func EvaluateAll[R any, I FinancialInstrument[R]](items []I, v Valuation, opts ...BatchOption) ([]R, error) {
	var o batchOptions
	for _, opt := range opts {
		opt(&o)
	}
	res := make([]R, len(items))
	errs := make([]error, len(items))
	eval := func(i int) {
		r, err := items[i].Evaluate(v)
		if err != nil {
			errs[i] = fmt.Errorf("%s: %w", items[i].Symbol(), err)
			r = items[i].Malformed(err)
		}
		res[i] = r
	}

	if o.workers <= 1 {
		for i := range items {
			eval(i)
		}
		return res, errors.Join(errs...)
	}

	var g errgroup.Group
	g.SetLimit(o.workers)
	for i := range items {
		g.Go(func() error {
			eval(i)
			return nil
		})
	}
	// workers report failures through errs, never through the group.
	_ = g.Wait()
	return res, errors.Join(errs...)
}
