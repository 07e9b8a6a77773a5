package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/etnz/moneymarket"
	"github.com/google/subcommands"
)

type quotesCmd struct {
	feed    string
	mapping string
	cache   time.Duration
	dryRun  bool
}

func (*quotesCmd) Name() string     { return "quotes" }
func (*quotesCmd) Synopsis() string { return "import quotes from a JSON feed into the document" }
func (*quotesCmd) Usage() string {
	return `mm quotes -feed <file|url> [-map <mapping>] [-cache <duration>] [-n]

  Reads a JSON feed, from a file or an http(s) URL, and replaces the quotes
  of every instrument it prices.
  The mapping locates the quotes of an instrument in the feed, as comma
  separated field=JSONPath pairs where {ticker} stands for the ticker.
  Fields are last, bid, close and time (RFC 3339 or unix seconds).

Usage Examples:
$ mm quotes -feed byma.json -map 'last=$.{ticker}.ultimo,bid=$.{ticker}.compra,time=$.{ticker}.hora'
`
}

func (c *quotesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.feed, "feed", "", "JSON feed file or http(s) URL (required)")
	f.StringVar(&c.mapping, "map", cfg.QuoteMapping, "Quote mapping. Env: "+EnvQuoteMapping)
	f.DurationVar(&c.cache, "cache", 0, "Keep fetched feeds on disk for this long, 0 to disable")
	f.BoolVar(&c.dryRun, "n", false, "Print the updated document instead of saving it")
}

func (c *quotesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.feed == "" || c.mapping == "" {
		fmt.Fprintln(stderr, "Error: -feed and -map are required.")
		return subcommands.ExitUsageError
	}
	mapping, err := moneymarket.ParseQuoteMapping(c.mapping)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	feed, err := loadFeed(ctx, feedClient(c.cache), c.feed)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading feed: %v\n", err)
		return subcommands.ExitFailure
	}

	doc, err := DecodeDocument()
	if err != nil {
		fmt.Fprintf(stderr, "Error decoding document %q: %v\n", cfg.Document, err)
		return subcommands.ExitFailure
	}
	updated, n, err := doc.ImportQuotes(feed, mapping)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	updated = updated.Touch(time.Now())
	logger.Info().Int("updated", n).Int("instruments", len(doc.Items)).Str("feed", c.feed).Msg("quotes imported")

	if c.dryRun {
		if err := moneymarket.EncodeDocument(stdout, &updated); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	if err := EncodeDocument(&updated); err != nil {
		fmt.Fprintf(stderr, "Error saving document %q: %v\n", cfg.Document, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Updated the quotes of %d of %d instruments in %s\n", n, len(doc.Items), cfg.Document)
	return subcommands.ExitSuccess
}
