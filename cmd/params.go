package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/etnz/moneymarket"
	"github.com/google/subcommands"
)

type paramsCmd struct {
	ticker       string
	tPlus        int
	commission   float64
	markupPct    float64
	markupAmount float64
	unset        string
}

func (*paramsCmd) Name() string     { return "params" }
func (*paramsCmd) Synopsis() string { return "show or edit the valuation parameters" }
func (*paramsCmd) Usage() string {
	return `mm params [-ticker <ticker>] [-t-plus <days>] [-comision <pct>] [-dm-pct <pct>] [-dm-monto <amount>] [-unset <names>]

  Without an edit flag, prints the global parameters of the document, or the
  overrides of an instrument with -ticker.

  With edit flags, sets the given parameters and saves the document. An
  override set to 0 is kept: it is an explicit zero, not a fallback to the
  global value. Use -unset to remove overrides.

Usage Examples:
# Settle T+1 with a 0.5% commission.
$ mm params -t-plus 1 -comision 0.005

# S31O5 is bought without commission.
$ mm params -ticker S31O5 -comision 0
`
}

func (c *paramsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Edit the overrides of this instrument instead of the global parameters")
	f.IntVar(&c.tPlus, "t-plus", 0, "Settlement lag in days (t_plus)")
	f.Float64Var(&c.commission, "comision", 0, "Commission rate, 0.005 is 0.5% (comision_pct)")
	f.Float64Var(&c.markupPct, "dm-pct", 0, "Markup rate (dm_pct)")
	f.Float64Var(&c.markupAmount, "dm-monto", 0, "Markup amount per 100 nominal (dm_monto)")
	f.StringVar(&c.unset, "unset", "", "Comma separated parameters to remove: t_plus, comision_pct, dm_pct, dm_monto")
}

func (c *paramsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := DecodeDocument()
	if err != nil {
		fmt.Fprintf(stderr, "Error decoding document %q: %v\n", cfg.Document, err)
		return subcommands.ExitFailure
	}

	var target *moneymarket.Params
	if c.ticker == "" {
		if doc.Params == nil {
			doc.Params = &moneymarket.Params{}
		}
		target = doc.Params
	} else {
		i := slices.IndexFunc(doc.Items, func(inst moneymarket.Instrument) bool { return inst.Ticker == c.ticker })
		if i < 0 {
			fmt.Fprintf(stderr, "Error: no instrument %q in the document\n", c.ticker)
			return subcommands.ExitFailure
		}
		target = &doc.Items[i].Overrides
	}

	edited := false
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "t-plus":
			target.TPlus = moneymarket.Some(c.tPlus)
		case "comision":
			target.CommissionPct = moneymarket.Some(c.commission)
		case "dm-pct":
			target.MarkupPct = moneymarket.Some(c.markupPct)
		case "dm-monto":
			target.MarkupAmount = moneymarket.Some(c.markupAmount)
		default:
			return
		}
		edited = true
	})
	for _, name := range strings.Split(c.unset, ",") {
		switch strings.TrimSpace(name) {
		case "":
			continue
		case "t_plus":
			target.TPlus = moneymarket.None[int]()
		case "comision_pct":
			target.CommissionPct = moneymarket.None[float64]()
		case "dm_pct":
			target.MarkupPct = moneymarket.None[float64]()
		case "dm_monto":
			target.MarkupAmount = moneymarket.None[float64]()
		default:
			fmt.Fprintf(stderr, "Error: unknown parameter %q\n", name)
			return subcommands.ExitUsageError
		}
		edited = true
	}

	if edited {
		touched := doc.Touch(time.Now())
		if err := EncodeDocument(&touched); err != nil {
			fmt.Fprintf(stderr, "Error saving document %q: %v\n", cfg.Document, err)
			return subcommands.ExitFailure
		}
		logger.Info().Str("document", cfg.Document).Str("ticker", c.ticker).Msg("parameters saved")
	}

	if err := encodeRecords(stdout, target); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
