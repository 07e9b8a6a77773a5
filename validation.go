package moneymarket

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/moneymarket/date"
)

// ValidationError is one violation found by Document.Validate.
type ValidationError struct {
	Item   int    // index of the instrument, -1 for the document itself
	Ticker string // ticker of the instrument, if any
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Item < 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	if e.Ticker == "" {
		return fmt.Sprintf("item %d: %s: %s", e.Item, e.Field, e.Reason)
	}
	return fmt.Sprintf("item %d (%s): %s: %s", e.Item, e.Ticker, e.Field, e.Reason)
}

// Validate checks the document envelope and every instrument and returns all
// violations joined, or nil. Instruments are only checked once the envelope
// is valid.
func (d *Document) Validate() error {
	var errs []error
	fail := func(field, reason string) {
		errs = append(errs, &ValidationError{Item: -1, Field: field, Reason: reason})
	}

	if !strings.HasPrefix(d.Version, VersionPrefix) {
		fail("version", fmt.Sprintf("missing or does not start with %q", VersionPrefix))
	}
	if _, err := time.Parse(time.RFC3339, d.UpdatedAt); err != nil {
		fail("updated_at", "missing or not an RFC 3339 timestamp")
	}
	if d.Params == nil {
		fail("params", "missing")
	} else {
		if !d.Params.TPlus.Present() {
			fail("params.t_plus", "must be a number")
		}
		if !d.Params.CommissionPct.Present() {
			fail("params.comision_pct", "must be a number")
		}
	}
	if d.Items == nil {
		fail("items", "must be an array")
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for i, item := range d.Items {
		failItem := func(field, reason string) {
			errs = append(errs, &ValidationError{Item: i, Ticker: item.Ticker, Field: field, Reason: reason})
		}
		if item.Ticker == "" {
			failItem("ticker", "missing")
		}
		if _, err := date.Parse(item.Issue); err != nil {
			failItem("emision", "invalid date")
		}
		if _, err := date.Parse(item.Maturity); err != nil {
			failItem("vencimiento", "invalid date")
		}
		if item.MonthlyRate <= 0 {
			failItem("tem", "must be a positive number")
		}
		if item.Quotes == nil {
			failItem("precios", "missing")
		}
	}
	return errors.Join(errs...)
}

// ValidationErrors unwraps the violations joined by Validate.
func ValidationErrors(err error) []*ValidationError {
	if err == nil {
		return nil
	}
	var list []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		list = joined.Unwrap()
	} else {
		list = []error{err}
	}
	res := make([]*ValidationError, 0, len(list))
	for _, e := range list {
		var ve *ValidationError
		if errors.As(e, &ve) {
			res = append(res, ve)
		}
	}
	return res
}
