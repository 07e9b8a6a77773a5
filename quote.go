package moneymarket

import "time"

// StaleAfter is the age beyond which a quote is stale. The feed is daily, 28
// hours covers one business day plus the weekend gap.
const StaleAfter = 28 * time.Hour

// Quotes is the price bundle of an instrument, every price is optional.
type Quotes struct {
	Last  Optional[float64]   `json:"ultimo,omitzero"`
	Bid   Optional[float64]   `json:"compra,omitzero"`
	Close Optional[float64]   `json:"cierre,omitzero"`
	Time  Optional[time.Time] `json:"hora,omitzero"`
}

// PriceSource tells which quote a price was taken from.
type PriceSource string

const (
	SourceLast  PriceSource = "LAST"
	SourceBid   PriceSource = "BID"
	SourceClose PriceSource = "CLOSE"
	SourceNone  PriceSource = "NONE"
)

// PriceSelection is the outcome of SelectPrice.
type PriceSelection struct {
	Price  Optional[float64]
	Source PriceSource
	Stale  bool
}

// SelectPrice picks the first present price among last, bid and close. An
// explicit zero is present: it is selected and does not fall through.
//
// The quote is stale when it is older than StaleAfter at now, or when it has
// no timestamp at all.
func SelectPrice(q Quotes, now time.Time) PriceSelection {
	sel := PriceSelection{Source: SourceNone, Stale: true}
	switch {
	case q.Last.Present():
		sel.Price, sel.Source = q.Last, SourceLast
	case q.Bid.Present():
		sel.Price, sel.Source = q.Bid, SourceBid
	case q.Close.Present():
		sel.Price, sel.Source = q.Close, SourceClose
	}
	if at, ok := q.Time.Get(); ok {
		sel.Stale = now.Sub(at) > StaleAfter
	}
	return sel
}
