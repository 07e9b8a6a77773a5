package moneymarket

import (
	"fmt"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// QuoteMapping locates the quotes of a ticker in a JSON feed. Each field is a
// JSONPath expression where "{ticker}" stands for the instrument ticker, an
// empty expression is never looked up.
//
// For instance with a feed like {"S31O5": {"last": 101.2, "ts": "..."}}:
//
//	QuoteMapping{Last: "$.{ticker}.last", Time: "$.{ticker}.ts"}
type QuoteMapping struct {
	Last  string
	Bid   string
	Close string
	Time  string
}

// ParseQuoteMapping parses a mapping written as comma separated
// "field=expression" pairs, fields being last, bid, close and time.
func ParseQuoteMapping(s string) (QuoteMapping, error) {
	var m QuoteMapping
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		field, expr, ok := strings.Cut(pair, "=")
		if !ok {
			return m, fmt.Errorf("invalid quote mapping %q: want field=expression", pair)
		}
		switch strings.TrimSpace(field) {
		case "last":
			m.Last = strings.TrimSpace(expr)
		case "bid":
			m.Bid = strings.TrimSpace(expr)
		case "close":
			m.Close = strings.TrimSpace(expr)
		case "time":
			m.Time = strings.TrimSpace(expr)
		default:
			return m, fmt.Errorf("invalid quote mapping %q: unknown field %q", pair, field)
		}
	}
	return m, nil
}

// lookup evaluates expr for ticker in feed. Paths that do not resolve are
// absent values, not errors: a feed rarely quotes every instrument.
func lookup(feed any, expr, ticker string) (any, bool) {
	if expr == "" {
		return nil, false
	}
	path := strings.ReplaceAll(expr, "{ticker}", ticker)
	jval, err := jsonpath.Get(path, feed)
	if err != nil {
		return nil, false
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return nil, false
		}
		jval = jlist[0]
	}
	return jval, jval != nil
}

func lookupPrice(feed any, expr, ticker string) (Optional[float64], error) {
	jval, ok := lookup(feed, expr, ticker)
	if !ok {
		return None[float64](), nil
	}
	val, ok := jval.(float64)
	if !ok {
		return None[float64](), fmt.Errorf("%s: %q is not a number: %v", ticker, expr, jval)
	}
	return Some(val), nil
}

func lookupTime(feed any, expr, ticker string) (Optional[time.Time], error) {
	jval, ok := lookup(feed, expr, ticker)
	if !ok {
		return None[time.Time](), nil
	}
	switch v := jval.(type) {
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return None[time.Time](), fmt.Errorf("%s: %q is not an RFC 3339 time: %w", ticker, expr, err)
		}
		return Some(t), nil
	case float64:
		// unix seconds
		return Some(time.Unix(int64(v), 0).UTC()), nil
	default:
		return None[time.Time](), fmt.Errorf("%s: %q is not a time: %v", ticker, expr, jval)
	}
}

// ExtractQuotes reads the quotes of ticker from feed, a decoded JSON value.
func ExtractQuotes(feed any, ticker string, m QuoteMapping) (q Quotes, err error) {
	if q.Last, err = lookupPrice(feed, m.Last, ticker); err != nil {
		return Quotes{}, err
	}
	if q.Bid, err = lookupPrice(feed, m.Bid, ticker); err != nil {
		return Quotes{}, err
	}
	if q.Close, err = lookupPrice(feed, m.Close, ticker); err != nil {
		return Quotes{}, err
	}
	if q.Time, err = lookupTime(feed, m.Time, ticker); err != nil {
		return Quotes{}, err
	}
	return q, nil
}

func (q Quotes) empty() bool {
	return !q.Last.Present() && !q.Bid.Present() && !q.Close.Present()
}

// ImportQuotes returns a copy of the document where the quotes of every
// instrument found in feed replace the previous ones, and the number of
// instruments updated. Instruments the feed does not price are left as is.
// d is not modified.
func (d *Document) ImportQuotes(feed any, m QuoteMapping) (Document, int, error) {
	res := *d
	res.Items = make([]Instrument, len(d.Items))
	updated := 0
	for i, item := range d.Items {
		q, err := ExtractQuotes(feed, item.Ticker, m)
		if err != nil {
			return Document{}, 0, fmt.Errorf("cannot import quotes: %w", err)
		}
		if !q.empty() {
			item.Quotes = &q
			updated++
		}
		res.Items[i] = item
	}
	return res, updated, nil
}
