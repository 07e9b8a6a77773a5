package moneymarket

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/etnz/moneymarket/date"
)

// this file contains the document formats exchanged with the surrounding
// application. They are the formats of the original web application, kept as is.

// VersionPrefix prefixes the version tag of every instrument document.
const VersionPrefix = "lecaps.v"

// CurrentVersion is the version written by EncodeDocument for a new document.
const CurrentVersion = VersionPrefix + "1"

// Document is the instrument document: the global parameters and the
// instruments they apply to.
type Document struct {
	Version   string       `json:"version"`
	UpdatedAt string       `json:"updated_at"` // RFC 3339
	Params    *Params      `json:"params"`
	Items     []Instrument `json:"items"`
}

// Valuation returns the valuation context of the document at asOf.
func (d *Document) Valuation(asOf date.Date) Valuation {
	v := Valuation{AsOf: asOf}
	if d.Params != nil {
		v.Params = *d.Params
	}
	return v
}

// Evaluate values every instrument of the document, see EvaluateAll.
func (d *Document) Evaluate(v Valuation, opts ...BatchOption) ([]EnrichedInstrument, error) {
	return EvaluateAll[EnrichedInstrument](d.Items, v, opts...)
}

// Touch returns a copy of the document stamped with at, and with a version
// if it had none.
func (d Document) Touch(at time.Time) Document {
	if d.Version == "" {
		d.Version = CurrentVersion
	}
	d.UpdatedAt = at.UTC().Format(time.RFC3339)
	d.Items = slices.Clone(d.Items)
	return d
}

// DecodeDocument reads an instrument document from r. It does not validate
// it, see Document.Validate.
func DecodeDocument(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("cannot decode instrument document: %w", err)
	}
	return &d, nil
}

// EncodeDocument writes d to w, indented.
func EncodeDocument(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("cannot encode instrument document: %w", err)
	}
	return nil
}

// DecodeBonds reads a bonds file: a JSON array of bonds.
func DecodeBonds(r io.Reader) ([]Bond, error) {
	var bonds []Bond
	if err := json.NewDecoder(r).Decode(&bonds); err != nil {
		return nil, fmt.Errorf("cannot decode bonds: %w", err)
	}
	return bonds, nil
}

// EncodeBonds writes the raw bonds to w, indented. Computed values are
// never written, a bonds file only holds inputs.
func EncodeBonds(w io.Writer, bonds []Bond) error {
	if bonds == nil {
		bonds = []Bond{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bonds); err != nil {
		return fmt.Errorf("cannot encode bonds: %w", err)
	}
	return nil
}

// Raw returns the inputs of an enriched bond.
func (e EnrichedBond) Raw() Bond {
	b := Bond{
		ID:              e.ID,
		Ticker:          e.Ticker,
		Type:            e.Type,
		FaceValue:       e.FaceValue,
		CleanPrice:      e.CleanPrice,
		AccruedInterest: e.AccruedInterest,
		CommissionBp:    e.CommissionBp,
		QuoteSource:     e.QuoteSource,
	}
	if !e.Settlement.IsZero() {
		b.Settlement = e.Settlement.String()
	}
	if !e.Maturity.IsZero() {
		b.Maturity = e.Maturity.String()
	}
	return b
}
