package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/moneymarket"
	"github.com/etnz/moneymarket/date"
	"github.com/etnz/moneymarket/renderer"
	"github.com/google/subcommands"
)

// selection holds the flags shared by subcommands listing instruments.
type selection struct {
	date   string
	sort   string
	valid  bool
	fresh  bool
	priced bool
	from   string
	to     string
}

func (s *selection) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.date, "d", "0d", "Valuation date, settlement is T+n after it. See the user manual for supported date formats.")
	f.StringVar(&s.sort, "sort", "", "Comma separated sort fields, selecting a field twice reverses it. One of: "+strings.Join(moneymarket.FieldNames(moneymarket.InstrumentFields), ", "))
	f.BoolVar(&s.valid, "valid", false, "Only list valid instruments")
	f.BoolVar(&s.fresh, "fresh", false, "Only list instruments with a fresh quote")
	f.BoolVar(&s.priced, "priced", false, "Only list instruments with a yield")
	f.StringVar(&s.from, "from", "", "Only list instruments maturing on or after this date")
	f.StringVar(&s.to, "to", "", "Only list instruments maturing on or before this date")
}

// evaluate decodes the document and returns its instruments evaluated,
// filtered and sorted according to the flags.
func (s *selection) evaluate() (date.Date, []moneymarket.EnrichedInstrument, error) {
	today := date.Today()
	asOf, err := date.ParseRelative(s.date, today)
	if err != nil {
		return asOf, nil, fmt.Errorf("invalid date: %w", err)
	}
	var maturity date.Range
	if s.from != "" {
		if maturity.From, err = date.ParseRelative(s.from, today); err != nil {
			return asOf, nil, fmt.Errorf("invalid -from date: %w", err)
		}
	}
	if s.to != "" {
		if maturity.To, err = date.ParseRelative(s.to, today); err != nil {
			return asOf, nil, fmt.Errorf("invalid -to date: %w", err)
		}
	}
	ranking, err := moneymarket.ParseRanking(s.sort, moneymarket.InstrumentFields...)
	if err != nil {
		return asOf, nil, err
	}

	doc, err := DecodeDocument()
	if err != nil {
		return asOf, nil, err
	}
	records, err := doc.Evaluate(doc.Valuation(asOf), batchOptions()...)
	logBatch(err)

	var keep []func(moneymarket.EnrichedInstrument) bool
	if maturity != (date.Range{}) {
		keep = append(keep, moneymarket.MaturingIn(maturity))
	}
	if s.valid {
		keep = append(keep, moneymarket.Valid)
	}
	if s.fresh {
		keep = append(keep, moneymarket.Fresh)
	}
	if s.priced {
		keep = append(keep, moneymarket.Priced)
	}
	selected := slices.Collect(moneymarket.Filter(records, moneymarket.All(keep...)))

	logger.Info().Int("records", len(records)).Int("selected", len(selected)).
		Str("sort", ranking.Key()).Bool("ascending", ranking.Ascending()).Msg("ranking")
	return asOf, ranking.Apply(selected), nil
}

type rankCmd struct {
	selection
	json bool
}

func (*rankCmd) Name() string     { return "rank" }
func (*rankCmd) Synopsis() string { return "rank the instruments of the document by yield" }
func (*rankCmd) Usage() string {
	return `mm rank [-d <date>] [-sort <fields>] [-valid] [-fresh] [-priced] [-from <date>] [-to <date>] [-json]

  Values every instrument of the document and lists them, best annual yield
  first by default.

Usage Examples:
# Best yields among the instruments with a fresh quote.
$ mm rank -fresh -priced

# By maturity, latest first.
$ mm rank -sort vencimiento,vencimiento
`
}

func (c *rankCmd) SetFlags(f *flag.FlagSet) {
	c.selection.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "Print the enriched records as JSON")
}

func (c *rankCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf, records, err := c.evaluate()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		if records == nil {
			records = []moneymarket.EnrichedInstrument{}
		}
		if err := encodeRecords(stdout, records); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.InstrumentsMarkdown(asOf, records))
	return subcommands.ExitSuccess
}
