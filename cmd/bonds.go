package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/moneymarket"
	"github.com/etnz/moneymarket/date"
	"github.com/etnz/moneymarket/renderer"
	"github.com/google/subcommands"
)

type bondsCmd struct {
	sort string
	ids  bool
}

func (*bondsCmd) Name() string     { return "bonds" }
func (*bondsCmd) Synopsis() string { return "value and rank the bonds" }
func (*bondsCmd) Usage() string {
	return `mm bonds [-sort <fields>] [-ids]

  Values every bond of the bonds file from its clean price, accrued interest
  and commission, and lists them, earliest maturity first by default.
  With -ids, lists the bonds as stored, with the ids to use with update-bond
  and remove-bond.
`
}

func (c *bondsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sort, "sort", "", "Comma separated sort fields, selecting a field twice reverses it. One of: "+strings.Join(moneymarket.FieldNames(moneymarket.BondFields), ", "))
	f.BoolVar(&c.ids, "ids", false, "List the stored bonds with their ids")
}

func (c *bondsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ranking, err := moneymarket.ParseRanking(c.sort, moneymarket.BondFields...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	book, err := DecodeBondBook()
	if err != nil {
		fmt.Fprintf(stderr, "Error decoding bonds %q: %v\n", cfg.Bonds, err)
		return subcommands.ExitFailure
	}
	if n := book.AssignIDs(); n > 0 {
		if err := EncodeBondBook(book); err != nil {
			fmt.Fprintf(stderr, "Error saving bonds %q: %v\n", cfg.Bonds, err)
			return subcommands.ExitFailure
		}
		logger.Info().Int("bonds", n).Str("file", cfg.Bonds).Msg("assigned ids")
	}

	if c.ids {
		printMarkdown(renderer.BondBookMarkdown(book.Bonds()))
		return subcommands.ExitSuccess
	}

	records, err := moneymarket.EvaluateAll[moneymarket.EnrichedBond](book.Bonds(), moneymarket.Valuation{}, batchOptions()...)
	logBatch(err)
	printMarkdown(renderer.BondsMarkdown(ranking.Apply(records)))
	return subcommands.ExitSuccess
}

// bondFlags are the editable fields of a bond.
type bondFlags struct {
	ticker      string
	typ         string
	settlement  string
	maturity    string
	faceValue   float64
	cleanPrice  float64
	accrued     float64
	commission  float64
	quoteSource string
}

func (b *bondFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&b.ticker, "ticker", "", "Bond ticker")
	f.StringVar(&b.typ, "type", "", "Bond type (tipo)")
	f.StringVar(&b.settlement, "settlement", "", "Settlement date (fecha_liquidacion)")
	f.StringVar(&b.maturity, "maturity", "", "Maturity date (vencimiento)")
	f.Float64Var(&b.faceValue, "face", 100, "Face value (valor_nominal)")
	f.Float64Var(&b.cleanPrice, "clean", 0, "Clean price (precio_limpio)")
	f.Float64Var(&b.accrued, "accrued", 0, "Accrued interest (interes_devengado)")
	f.Float64Var(&b.commission, "commission", 0, "Commission in basis points (comision_bp)")
	f.StringVar(&b.quoteSource, "source", "", "Quote source (fuente_cotizacion)")
}

// apply copies the flags set on the command line into bond.
func (b *bondFlags) apply(f *flag.FlagSet, bond *moneymarket.Bond) {
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "ticker":
			bond.Ticker = b.ticker
		case "type":
			bond.Type = b.typ
		case "settlement":
			bond.Settlement = b.settlement
		case "maturity":
			bond.Maturity = b.maturity
		case "face":
			bond.FaceValue = b.faceValue
		case "clean":
			bond.CleanPrice = b.cleanPrice
		case "accrued":
			bond.AccruedInterest = b.accrued
		case "commission":
			bond.CommissionBp = b.commission
		case "source":
			bond.QuoteSource = b.quoteSource
		}
	})
}

// checkBond reports the bond fields that would make it malformed.
func checkBond(bond moneymarket.Bond) error {
	if bond.Ticker == "" {
		return fmt.Errorf("missing ticker")
	}
	if _, err := date.Parse(bond.Settlement); err != nil {
		return fmt.Errorf("settlement date: %w", err)
	}
	if _, err := date.Parse(bond.Maturity); err != nil {
		return fmt.Errorf("maturity date: %w", err)
	}
	return nil
}

type addBondCmd struct {
	bondFlags
	id string
}

func (*addBondCmd) Name() string     { return "add-bond" }
func (*addBondCmd) Synopsis() string { return "add a bond to the bonds file" }
func (*addBondCmd) Usage() string {
	return `mm add-bond -ticker <ticker> -settlement <date> -maturity <date> -clean <price> [-accrued <interest>] [-commission <bp>] [-face <value>] [-type <type>] [-source <source>] [-id <id>]

  Adds a bond to the bonds file. A random id is assigned unless -id is given.
`
}

func (c *addBondCmd) SetFlags(f *flag.FlagSet) {
	c.bondFlags.SetFlags(f)
	f.StringVar(&c.id, "id", "", "Bond id, random by default")
}

func (c *addBondCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bond := moneymarket.Bond{ID: c.id, FaceValue: c.faceValue}
	c.apply(f, &bond)
	if err := checkBond(bond); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	book, err := DecodeBondBook()
	if err != nil {
		fmt.Fprintf(stderr, "Error decoding bonds %q: %v\n", cfg.Bonds, err)
		return subcommands.ExitFailure
	}
	bond, err = book.Add(bond)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeBondBook(book); err != nil {
		fmt.Fprintf(stderr, "Error saving bonds %q: %v\n", cfg.Bonds, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Added bond %s with id %s\n", bond.Ticker, bond.ID)
	return subcommands.ExitSuccess
}

type updateBondCmd struct {
	bondFlags
	id string
}

func (*updateBondCmd) Name() string     { return "update-bond" }
func (*updateBondCmd) Synopsis() string { return "update a bond of the bonds file" }
func (*updateBondCmd) Usage() string {
	return `mm update-bond -id <id> [-ticker <ticker>] [-settlement <date>] [-maturity <date>] [-clean <price>] [-accrued <interest>] [-commission <bp>] [-face <value>] [-type <type>] [-source <source>]

  Updates the fields given on the command line, the others are kept.
  See 'mm bonds -ids' for the ids.
`
}

func (c *updateBondCmd) SetFlags(f *flag.FlagSet) {
	c.bondFlags.SetFlags(f)
	f.StringVar(&c.id, "id", "", "Id of the bond to update (required)")
}

func (c *updateBondCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	book, err := DecodeBondBook()
	if err != nil {
		fmt.Fprintf(stderr, "Error decoding bonds %q: %v\n", cfg.Bonds, err)
		return subcommands.ExitFailure
	}
	bond, err := book.Get(c.id)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	c.apply(f, &bond)
	if err := checkBond(bond); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := book.Update(c.id, bond); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeBondBook(book); err != nil {
		fmt.Fprintf(stderr, "Error saving bonds %q: %v\n", cfg.Bonds, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Updated bond %s (%s)\n", bond.Ticker, c.id)
	return subcommands.ExitSuccess
}

type removeBondCmd struct {
	id string
}

func (*removeBondCmd) Name() string     { return "remove-bond" }
func (*removeBondCmd) Synopsis() string { return "remove a bond from the bonds file" }
func (*removeBondCmd) Usage() string {
	return `mm remove-bond -id <id>

  Removes a bond. See 'mm bonds -ids' for the ids.
`
}

func (c *removeBondCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the bond to remove (required)")
}

func (c *removeBondCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	book, err := DecodeBondBook()
	if err != nil {
		fmt.Fprintf(stderr, "Error decoding bonds %q: %v\n", cfg.Bonds, err)
		return subcommands.ExitFailure
	}
	if err := book.Remove(c.id); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeBondBook(book); err != nil {
		fmt.Fprintf(stderr, "Error saving bonds %q: %v\n", cfg.Bonds, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Removed bond %s\n", c.id)
	return subcommands.ExitSuccess
}
