package moneymarket

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/etnz/moneymarket/date"
)

// Kind classifies a sortable field. It decides the default direction of a
// newly selected field.
type Kind int

const (
	Natural       Kind = iota // ascending by default
	Chronological             // dates, ascending by default
	Yield                     // rates, best first: descending by default
)

// Cell is a sortable value: a number, a text or a date.
type Cell struct {
	kind cellKind
	num  float64
	text string
	day  date.Date
}

type cellKind int

const (
	numCell cellKind = iota
	textCell
	dayCell
)

// Num returns a numeric cell.
func Num(f float64) Cell { return Cell{kind: numCell, num: f} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{kind: textCell, text: s} }

// Day returns a date cell, it compares chronologically.
func Day(d date.Date) Cell { return Cell{kind: dayCell, day: d} }

// Compare orders two cells of the same field.
func (c Cell) Compare(d Cell) int {
	if c.kind != d.kind {
		return cmp.Compare(c.kind, d.kind)
	}
	switch c.kind {
	case textCell:
		return cmp.Compare(c.text, d.text)
	case dayCell:
		return c.day.Compare(d.day)
	default:
		return cmp.Compare(c.num, d.num)
	}
}

// Field is a sortable column of records of type T.
type Field[T any] struct {
	Name string
	Kind Kind
	// Value returns the cell of a record, ok is false when the record has no value.
	Value func(T) (c Cell, ok bool)
}

// DefaultAscending is the direction used when the field is newly selected.
func (f Field[T]) DefaultAscending() bool { return f.Kind != Yield }

// Sort returns a copy of records stably sorted by field.
//
// Records without a value come last, in both directions.
func Sort[T any](records []T, field Field[T], ascending bool) []T {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b T) int {
		va, oka := field.Value(a)
		vb, okb := field.Value(b)
		switch {
		case !oka && !okb:
			return 0
		case !oka:
			return 1
		case !okb:
			return -1
		}
		c := va.Compare(vb)
		if !ascending {
			c = -c
		}
		return c
	})
	return sorted
}

// Filter returns the records for which keep is true. The sequence is lazy and
// can be ranged over several times.
func Filter[T any](records []T, keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, r := range records {
			if keep(r) && !yield(r) {
				return
			}
		}
	}
}

// All returns a predicate that holds when every predicate holds.
func All[T any](predicates ...func(T) bool) func(T) bool {
	return func(r T) bool {
		for _, p := range predicates {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Ranking is the sort state of a table: a selected field and a direction.
type Ranking[T any] struct {
	fields    []Field[T]
	current   Field[T]
	ascending bool
}

// NewRanking returns a ranking over fields, sorted by the first one in its
// default direction.
func NewRanking[T any](fields ...Field[T]) *Ranking[T] {
	r := &Ranking[T]{fields: fields}
	if len(fields) > 0 {
		r.current = fields[0]
		r.ascending = fields[0].DefaultAscending()
	}
	return r
}

// Select picks the sort field by name. Selecting the current field toggles
// the direction; selecting another field uses its default direction.
func (r *Ranking[T]) Select(name string) error {
	if name == r.current.Name && r.current.Value != nil {
		r.ascending = !r.ascending
		return nil
	}
	for _, f := range r.fields {
		if f.Name == name {
			r.current, r.ascending = f, f.DefaultAscending()
			return nil
		}
	}
	return fmt.Errorf("unknown sort field %q", name)
}

// ParseRanking returns a ranking over fields sorted by a comma separated list
// of field names. The names are selected in order starting from no selection:
// a field first picked takes its default direction, picking it again reverses
// it. An empty list is the default ranking of NewRanking.
func ParseRanking[T any](names string, fields ...Field[T]) (*Ranking[T], error) {
	r := NewRanking(fields...)
	selected := false
	for _, name := range strings.Split(names, ",") {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		if !selected {
			r.current, selected = Field[T]{}, true
		}
		if err := r.Select(name); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Key returns the name of the selected field.
func (r *Ranking[T]) Key() string { return r.current.Name }

// Ascending reports the current direction.
func (r *Ranking[T]) Ascending() bool { return r.ascending }

// Apply returns a sorted copy of records.
func (r *Ranking[T]) Apply(records []T) []T {
	if r.current.Value == nil {
		return slices.Clone(records)
	}
	return Sort(records, r.current, r.ascending)
}
