package renderer

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/etnz/moneymarket"
	"github.com/etnz/moneymarket/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// tables parses src as GitHub flavored markdown and returns the number of
// body rows of each table, and the text of every table cell.
func tables(t *testing.T, src string) (rows []int, cells []string) {
	t.Helper()
	source := []byte(src)
	gm := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := gm.Parser().Parse(text.NewReader(source))
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case east.KindTable:
			rows = append(rows, 0)
		case east.KindTableRow:
			rows[len(rows)-1]++
		case east.KindTableCell:
			cells = append(cells, string(n.Text(source)))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking markdown: %v", err)
	}
	return rows, cells
}

func contains(cells []string, want string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) == want {
			return true
		}
	}
	return false
}

var asOf = date.MustParse("2024-07-15")

func enriched(t *testing.T) []moneymarket.EnrichedInstrument {
	t.Helper()
	now := time.Date(2024, time.July, 15, 15, 0, 0, 0, time.UTC)
	items := []moneymarket.Instrument{
		{Ticker: "S15E5", Issue: "2024-01-15", Maturity: "2025-01-15", MonthlyRate: 0.04,
			Quotes: &moneymarket.Quotes{Last: moneymarket.Some(118.5), Time: moneymarket.Some(now.Add(-time.Hour))}},
		{Ticker: "S28F5", Issue: "2024-02-28", Maturity: "2025-02-28", MonthlyRate: 0.035},
		{Ticker: "BAD", Issue: "2024-13-01", Maturity: "2025-02-28", MonthlyRate: 0.035},
	}
	v := moneymarket.Valuation{
		Params: moneymarket.Params{TPlus: moneymarket.Some(1)},
		AsOf:   asOf,
		Clock:  func() time.Time { return now },
	}
	records, err := moneymarket.EvaluateAll[moneymarket.EnrichedInstrument](items, v)
	if err == nil {
		t.Fatalf("EvaluateAll() expected an error for BAD")
	}
	return records
}

func TestInstrumentsMarkdown(t *testing.T) {
	out := InstrumentsMarkdown(asOf, enriched(t))
	if !strings.Contains(out, "# LECAPs as of 2024-07-15") {
		t.Errorf("missing title in:\n%s", out)
	}
	rows, cells := tables(t, out)
	if len(rows) != 1 || rows[0] != 3 {
		t.Fatalf("tables rows = %v, want [3]", rows)
	}
	for _, want := range []string{"S15E5", "S28F5", "BAD", "183 (6.1)", "ok", "malformed"} {
		if !contains(cells, want) {
			t.Errorf("no cell %q in %q", want, cells)
		}
	}
	// S28F5 has no price: its yields are absent
	if !contains(cells, None) {
		t.Errorf("no absent cell in %q", cells)
	}
}

func TestInstrumentsMarkdownInfiniteYield(t *testing.T) {
	// a price of a thousandth two days before maturity compounds to +Inf.
	inst := moneymarket.Instrument{Ticker: "S18L4", Issue: "2024-01-18", Maturity: "2024-07-18", MonthlyRate: 0.04,
		Quotes: &moneymarket.Quotes{Last: moneymarket.Some(0.001)}}
	e, err := inst.Evaluate(moneymarket.Valuation{Params: moneymarket.Params{TPlus: moneymarket.Some(1)}, AsOf: asOf})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if tea, _ := e.AnnualYield.Get(); !math.IsInf(tea, 1) {
		t.Fatalf("AnnualYield = %v, want +Inf", e.AnnualYield)
	}

	out := InstrumentsMarkdown(asOf, []moneymarket.EnrichedInstrument{e})
	rows, cells := tables(t, out)
	if len(rows) != 1 || rows[0] != 1 {
		t.Fatalf("tables rows = %v, want [1]", rows)
	}
	if !contains(cells, None) {
		t.Errorf("infinite yield not rendered as %q: %q", None, cells)
	}
}

func TestInstrumentsMarkdownEmpty(t *testing.T) {
	out := InstrumentsMarkdown(asOf, nil)
	if rows, _ := tables(t, out); len(rows) != 0 {
		t.Errorf("empty list rendered %d tables", len(rows))
	}
	if !strings.Contains(out, "No instrument.") {
		t.Errorf("missing empty notice in:\n%s", out)
	}
}

func TestBondsMarkdown(t *testing.T) {
	bonds := []moneymarket.Bond{
		{Ticker: "AL30", Type: "bono", Settlement: "2024-07-16", Maturity: "2024-10-14",
			FaceValue: 100, CleanPrice: 95, AccruedInterest: 1.5, CommissionBp: 50},
		{Ticker: "GD35", Type: "bono", Settlement: "2024-07-16", Maturity: "not a date"},
	}
	records, _ := moneymarket.EvaluateAll[moneymarket.EnrichedBond](bonds, moneymarket.Valuation{})
	rows, cells := tables(t, BondsMarkdown(records))
	if len(rows) != 1 || rows[0] != 2 {
		t.Fatalf("tables rows = %v, want [2]", rows)
	}
	for _, want := range []string{"AL30", "GD35", "90 (3.0)", "malformed", "50 bp (" + price(0.475) + ")"} {
		if !contains(cells, want) {
			t.Errorf("no cell %q in %q", want, cells)
		}
	}
}

func TestCurveMarkdown(t *testing.T) {
	points := []moneymarket.CurvePoint{
		{Ticker: "B", Days: 90, Yield: 0.1 + 0.05*math.Log(90)},
		{Ticker: "A", Days: 30, Yield: 0.1 + 0.05*math.Log(30)},
		{Ticker: "C", Days: 180, Yield: 0.1 + 0.05*math.Log(180)},
	}
	c, ok := moneymarket.FitCurve(points)
	if !ok {
		t.Fatal("FitCurve() ok = false")
	}
	out := CurveMarkdown(points, nil, c, ok)
	rows, cells := tables(t, out)
	if len(rows) != 1 || rows[0] != 3 {
		t.Fatalf("tables rows = %v, want [3]", rows)
	}
	// points are listed by days
	if a, b := strings.Index(out, "| A"), strings.Index(out, "| B"); a < 0 || b < 0 || a > b {
		t.Errorf("points not sorted by days:\n%s", out)
	}
	if !contains(cells, "0.00%") {
		t.Errorf("exact fit should have a null spread, cells: %q", cells)
	}
	if !strings.Contains(out, "R² = 1.0000") {
		t.Errorf("missing fit summary in:\n%s", out)
	}

	out = CurveMarkdown(points[:1], nil, moneymarket.Curve{}, false)
	if strings.Contains(out, "Spread") || strings.Contains(out, "## Fit") {
		t.Errorf("unfitted curve rendered fit columns:\n%s", out)
	}
}

func TestValidationMarkdown(t *testing.T) {
	d := &moneymarket.Document{Version: "lecaps.v1", UpdatedAt: "2024-07-15T12:00:00Z",
		Params: &moneymarket.Params{TPlus: moneymarket.Some(1), CommissionPct: moneymarket.Some(0.0)},
		Items:  []moneymarket.Instrument{{Ticker: "S15E5", Issue: "2024-01-15", Maturity: "2025-01-15", MonthlyRate: 0}},
	}
	errs := moneymarket.ValidationErrors(d.Validate())
	if len(errs) == 0 {
		t.Fatal("Validate() found no error")
	}
	rows, cells := tables(t, ValidationMarkdown(d, errs))
	if len(rows) != 1 || rows[0] != len(errs) {
		t.Fatalf("tables rows = %v, want [%d]", rows, len(errs))
	}
	if !contains(cells, "0 S15E5") {
		t.Errorf("no item cell in %q", cells)
	}

	if out := ValidationMarkdown(d, nil); !strings.Contains(out, "no error") {
		t.Errorf("valid document rendered:\n%s", out)
	}
}

func TestPercent(t *testing.T) {
	for _, tc := range []struct {
		v    float64
		want string
	}{
		{0.0123, "1.23%"},
		{0, "0.00%"},
		{-0.5, "-50.00%"},
		{1.234567, "123.46%"},
		{math.Inf(1), None},
		{math.NaN(), None},
	} {
		if got := percent(tc.v); got != tc.want {
			t.Errorf("percent(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}
