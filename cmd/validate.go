package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/moneymarket"
	"github.com/etnz/moneymarket/renderer"
	"github.com/google/subcommands"
)

type validateCmd struct{}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check the instrument document" }
func (*validateCmd) Usage() string {
	return `mm validate

  Checks the instrument document envelope (version, updated_at, params and
  items) and then every instrument. Exits with a failure status when the
  document has errors.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {}

func (c *validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := DecodeDocument()
	if err != nil {
		fmt.Fprintf(stderr, "Error decoding document %q: %v\n", cfg.Document, err)
		return subcommands.ExitFailure
	}

	errs := moneymarket.ValidationErrors(doc.Validate())
	printMarkdown(renderer.ValidationMarkdown(doc, errs))
	if len(errs) > 0 {
		logger.Info().Int("errors", len(errs)).Str("document", cfg.Document).Msg("invalid document")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
