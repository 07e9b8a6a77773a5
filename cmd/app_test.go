package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/moneymarket"
	"github.com/google/subcommands"
)

// setup points the configuration to copies of the test documents, and
// captures the output. It returns the configuration in use.
func setup(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	copyFile(t, "../testdata/lecaps.json", filepath.Join(dir, "lecaps.json"))
	copyFile(t, "../testdata/bonds.json", filepath.Join(dir, "bonds.json"))

	saved, savedOut, savedErr, savedLogger := cfg, stdout, stderr, logger
	t.Cleanup(func() { cfg, stdout, stderr, logger = saved, savedOut, savedErr, savedLogger })

	cfg = Config{
		Document: filepath.Join(dir, "lecaps.json"),
		Bonds:    filepath.Join(dir, "bonds.json"),
		Workers:  1,
		Raw:      true,
	}
	return &cfg
}

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

// run executes a fresh subcommand with args and returns its status, stdout
// and stderr.
func run(t *testing.T, c subcommands.Command, args ...string) (subcommands.ExitStatus, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	stdout, stderr = &out, &errOut

	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s %v: %v", c.Name(), args, err)
	}
	status := c.Execute(context.Background(), f)
	return status, out.String(), errOut.String()
}

func readDocument(t *testing.T) *moneymarket.Document {
	t.Helper()
	doc, err := DecodeDocument()
	if err != nil {
		t.Fatalf("DecodeDocument() error = %v", err)
	}
	return doc
}

func readBonds(t *testing.T) []moneymarket.Bond {
	t.Helper()
	book, err := DecodeBondBook()
	if err != nil {
		t.Fatalf("DecodeBondBook() error = %v", err)
	}
	return book.Bonds()
}

// records decodes a JSON array of objects.
func records(t *testing.T, out string) []map[string]any {
	t.Helper()
	var res []map[string]any
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out, err)
	}
	return res
}

func tickers(recs []map[string]any) []string {
	var res []string
	for _, r := range recs {
		res = append(res, r["ticker"].(string))
	}
	return res
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvDocument, "other.json")
	t.Setenv(EnvWorkers, "4")
	t.Setenv(EnvPrettyLog, "false")
	t.Setenv(EnvBonds, "")

	c := LoadConfig()
	if c.Document != "other.json" {
		t.Errorf("Document = %q, want other.json", c.Document)
	}
	if c.Bonds != "bonds.json" {
		t.Errorf("Bonds = %q, want the default bonds.json", c.Bonds)
	}
	if c.Workers != 4 || c.PrettyLog {
		t.Errorf("Workers, PrettyLog = %d, %v, want 4, false", c.Workers, c.PrettyLog)
	}

	f := flag.NewFlagSet("mm", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse([]string{"-document", "flag.json", "-workers", "2"}); err != nil {
		t.Fatal(err)
	}
	if c.Document != "flag.json" || c.Workers != 2 {
		t.Errorf("flags did not override the environment: %+v", c)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("info", false, &buf)
	l.Debug().Msg("hidden")
	l.Info().Str("ticker", "S15E5").Msg("shown")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line %q is not a single JSON object: %v", buf.String(), err)
	}
	if entry["message"] != "shown" || entry["ticker"] != "S15E5" || entry["level"] != "info" {
		t.Errorf("unexpected log entry %v", entry)
	}
}

func TestMissingBondsFile(t *testing.T) {
	c := setup(t)
	c.Bonds = filepath.Join(t.TempDir(), "none.json")
	if got := readBonds(t); len(got) != 0 {
		t.Errorf("missing bonds file read %d bonds, want none", len(got))
	}
}

func TestCompletion(t *testing.T) {
	global := flag.NewFlagSet("mm", flag.ContinueOnError)
	c := Config{}
	c.SetFlags(global)

	comp := Completion(global)
	for _, cmds := range Commands {
		for _, cmd := range cmds {
			if comp.Sub[cmd.Name()] == nil {
				t.Errorf("no completion for %q", cmd.Name())
			}
		}
	}
	if comp.Flags["document"] == nil {
		t.Error("no completion for the -document flag")
	}
	if comp.Sub["rank"].Flags["sort"] == nil {
		t.Error("no completion for rank -sort")
	}
}

func TestWriteFileKeepsOriginalOnError(t *testing.T) {
	c := setup(t)
	before, err := os.ReadFile(c.Document)
	if err != nil {
		t.Fatal(err)
	}

	failure := errors.New("encoding failed")
	if err := writeFile(c.Document, func(w io.Writer) error {
		io.WriteString(w, `{"version":`)
		return failure
	}); !errors.Is(err, failure) {
		t.Fatalf("writeFile() error = %v, want %v", err, failure)
	}
	after, err := os.ReadFile(c.Document)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Errorf("a failed write changed the document")
	}
	entries, err := os.ReadDir(filepath.Dir(c.Document))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("a failed write left files behind: %v", entries)
	}

	// a successful write replaces the content.
	d := readDocument(t)
	d.UpdatedAt = "2024-07-16T12:00:00Z"
	if err := EncodeDocument(d); err != nil {
		t.Fatalf("EncodeDocument() error = %v", err)
	}
	if got := readDocument(t).UpdatedAt; got != d.UpdatedAt {
		t.Errorf("UpdatedAt = %q, want %q", got, d.UpdatedAt)
	}
}
