package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/moneymarket"
	"github.com/etnz/moneymarket/renderer"
	"github.com/google/subcommands"
)

type curveCmd struct {
	selection
	top int
}

func (*curveCmd) Name() string     { return "curve" }
func (*curveCmd) Synopsis() string { return "fit the yield curve of the document instruments" }
func (*curveCmd) Usage() string {
	return `mm curve [-d <date>] [-top <n>] [-fresh] [-from <date>] [-to <date>]

  Values every instrument of the document and fits their annual yields
  against ln(days to maturity). Each instrument is listed with its spread to
  the fitted curve. At least two distinct maturities are needed to fit it.
`
}

func (c *curveCmd) SetFlags(f *flag.FlagSet) {
	c.selection.SetFlags(f)
	f.IntVar(&c.top, "top", 3, "Number of best yields to highlight, 0 for none")
}

func (c *curveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.top < 0 {
		fmt.Fprintln(stderr, "Error: -top must not be negative")
		return subcommands.ExitUsageError
	}
	_, records, err := c.evaluate()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	points := moneymarket.CurvePoints(records)
	curve, fitted := moneymarket.FitCurve(points)
	if !fitted {
		logger.Warn().Int("points", len(points)).Msg("not enough distinct maturities to fit a curve")
	}
	printMarkdown(renderer.CurveMarkdown(points, moneymarket.Top(records, c.top), curve, fitted))
	return subcommands.ExitSuccess
}
