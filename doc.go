// Package moneymarket values short-term fixed-income instruments and ranks
// them by yield.
//
// Two instrument families are supported:
//   - Instrument: a discount-to-par bill (LECAP). Its redemption value is the
//     issue value capitalized at a monthly rate over the 30/360 life of the
//     instrument, its price is selected from a bundle of quotes and loaded
//     with commissions and markups, and its yields are the rates implied by
//     paying that net price at settlement to receive the redemption value.
//   - Bond: a clean-price bond valued from its dirty price (clean price,
//     accrued interest and commission).
//
// Both implement FinancialInstrument, EvaluateAll values a batch of either
// family, isolating failures, and Ranking, Sort and Filter order and select
// the enriched records for presentation.
//
// Valuation is pure: inputs are never modified and the only environment read
// is the wall clock used to flag stale quotes.
//
// The document formats (Document, bonds files) are those of the surrounding
// application and are decoded and encoded as is.
package moneymarket
