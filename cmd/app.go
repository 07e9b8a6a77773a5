// Package cmd implements the CLI application to value money market
// instruments.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/moneymarket"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var cfg = LoadConfig()

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Commands are the subcommands of the application, by group.
var Commands = map[string][]subcommands.Command{
	"instruments": {&rankCmd{}, &curveCmd{}, &exportCmd{}},
	"document":    {&validateCmd{}, &paramsCmd{}, &quotesCmd{}},
	"bonds":       {&bondsCmd{}, &addBondCmd{}, &updateBondCmd{}, &removeBondCmd{}},
	"help":        {&topicCmd{}},
}

// Register declares the global flags on f and the subcommands on c.
// A main package will call Register(), parse the flags, call Setup() and
// Execute() the user-selected subcommand.
func Register(c *subcommands.Commander, f *flag.FlagSet) {
	cfg.SetFlags(f)
	for group, cmds := range Commands {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// Setup applies the parsed global flags.
func Setup() {
	logger = NewLogger(cfg.LogLevel, cfg.PrettyLog, stderr)
	logger.Debug().Str("document", cfg.Document).Str("bonds", cfg.Bonds).Int("workers", cfg.Workers).Msg("configuration")
}

// batchOptions returns the evaluation options of the configuration.
func batchOptions() []moneymarket.BatchOption {
	if cfg.Workers > 1 {
		return []moneymarket.BatchOption{moneymarket.Parallel(cfg.Workers)}
	}
	return nil
}

// DecodeDocument reads the instrument document of the configuration.
func DecodeDocument() (*moneymarket.Document, error) {
	f, err := os.Open(cfg.Document)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return moneymarket.DecodeDocument(f)
}

// EncodeDocument writes d to the instrument document of the configuration.
func EncodeDocument(d *moneymarket.Document) error {
	return writeFile(cfg.Document, func(w io.Writer) error { return moneymarket.EncodeDocument(w, d) })
}

// DecodeBondBook reads the bonds file of the configuration. A missing file
// is an empty book.
func DecodeBondBook() (*moneymarket.BondBook, error) {
	f, err := os.Open(cfg.Bonds)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Str("file", cfg.Bonds).Msg("bonds file does not exist, using an empty book instead")
		return moneymarket.NewBondBook(nil), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	bonds, err := moneymarket.DecodeBonds(f)
	if err != nil {
		return nil, err
	}
	return moneymarket.NewBondBook(bonds), nil
}

// EncodeBondBook writes the book to the bonds file of the configuration.
func EncodeBondBook(b *moneymarket.BondBook) error {
	return writeFile(cfg.Bonds, func(w io.Writer) error { return moneymarket.EncodeBonds(w, b.Bonds()) })
}

// writeFile encodes into a temporary file next to name and renames it into
// place, name is left untouched when encode fails.
func writeFile(name string, encode func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name()) // no-op once renamed

	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(f.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(f.Name(), name)
}

// printMarkdown renders md for the terminal, or prints it as is with -raw or
// when rendering fails.
func printMarkdown(md string) {
	if cfg.Raw {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		logger.Debug().Err(err).Msg("cannot render markdown")
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// logBatch logs the records a batch evaluation could not value.
func logBatch(err error) {
	if err == nil {
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			logger.Warn().Err(e).Msg("record marked malformed")
		}
		return
	}
	logger.Warn().Err(err).Msg("record marked malformed")
}
