package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/etnz/moneymarket"
	"github.com/etnz/moneymarket/date"
	"github.com/google/subcommands"
)

type exportCmd struct {
	date     string
	bonds    bool
	enriched bool
	output   string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the document, or its enriched records, as JSON" }
func (*exportCmd) Usage() string {
	return `mm export [-bonds] [-enriched [-d <date>]] [-o <file>]

  Writes the instrument document in its canonical form, stamped with the
  current time, or the bonds file with -bonds.

  With -enriched, values every record instead and writes the enriched records
  as a JSON array, in document order. Records that could not be valued are
  exported marked "malformed".
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Valuation date of the enriched instruments")
	f.BoolVar(&c.bonds, "bonds", false, "Export the bonds instead of the instruments")
	f.BoolVar(&c.enriched, "enriched", false, "Export the enriched records instead of the inputs")
	f.StringVar(&c.output, "o", "", "Output file, stdout by default")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var w io.Writer = stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	if err := c.export(w); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *exportCmd) export(w io.Writer) error {
	switch {
	case c.bonds && !c.enriched:
		book, err := DecodeBondBook()
		if err != nil {
			return err
		}
		return moneymarket.EncodeBonds(w, book.Bonds())

	case c.bonds:
		book, err := DecodeBondBook()
		if err != nil {
			return err
		}
		records, err := moneymarket.EvaluateAll[moneymarket.EnrichedBond](book.Bonds(), moneymarket.Valuation{}, batchOptions()...)
		logBatch(err)
		if records == nil {
			records = []moneymarket.EnrichedBond{}
		}
		return encodeRecords(w, records)
	}

	doc, err := DecodeDocument()
	if err != nil {
		return err
	}
	if !c.enriched {
		touched := doc.Touch(time.Now())
		return moneymarket.EncodeDocument(w, &touched)
	}

	asOf, err := date.ParseRelative(c.date, date.Today())
	if err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	records, err := doc.Evaluate(doc.Valuation(asOf), batchOptions()...)
	logBatch(err)
	if records == nil {
		records = []moneymarket.EnrichedInstrument{}
	}
	return encodeRecords(w, records)
}

// encodeRecords writes records as an indented JSON array.
func encodeRecords(w io.Writer, records any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("cannot encode records: %w", err)
	}
	return nil
}
