package types

import "time"

// ReportVariant selects which of the two report flavors is being generated.
type ReportVariant string

const (
	// VariantUpdate is the intraday report built from live prices and 24h changes.
	VariantUpdate ReportVariant = "UPDATE"
	// VariantClosing is the daily recap built from closing prices and day-over-day changes.
	VariantClosing ReportVariant = "CLOSING"
)

// PriceQuote is one tracked cryptocurrency's snapshot for a single report cycle.
type PriceQuote struct {
	Symbol    string  `json:"symbol"`
	PriceUSD  float64 `json:"price_usd"`
	ChangePct float64 `json:"change_pct"`
	MarketCap float64 `json:"market_cap,omitempty"`
	Volume24h float64 `json:"volume_24h,omitempty"`
}

// YieldPoint is the 10-year Treasury yield with its move since the previous observation.
type YieldPoint struct {
	CurrentYield  float64 `json:"current_yield"`
	PreviousYield float64 `json:"previous_yield"`
	ChangeBps     float64 `json:"change_bps"`
	CurrentDate   string  `json:"current_date,omitempty"`
	PreviousDate  string  `json:"previous_date,omitempty"`
	Source        string  `json:"source,omitempty"`
}

// RateSeries is one short-term rate series with its move since the previous
// observation. Note carries provenance when a value is approximated from
// another series.
type RateSeries struct {
	Name, Label string  `json:"-"`
	Current     float64 `json:"current"`
	Previous    float64 `json:"previous"`
	ChangeBps   float64 `json:"change_bps"`
	Note        string  `json:"note,omitempty"`
}

// Headline is one scraped news headline with its word-list tone.
type Headline struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
	Tone   string `json:"tone"`
}

// Headline tone labels.
const (
	TonePositive = "POSITIVE"
	ToneNegative = "NEGATIVE"
	ToneNeutral  = "NEUTRAL"
)

// Market sentiment labels derived from crypto price changes.
const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentMixed   = "mixed"
)

// MarketSnapshot is everything a single report render needs. Quotes and
// Rates are in configured display order with failed fetches omitted; Yield
// is nil when no source resolved it.
type MarketSnapshot struct {
	Variant     ReportVariant `json:"variant"`
	GeneratedAt time.Time     `json:"generated_at"`
	DataDate    time.Time     `json:"data_date"`
	Quotes      []PriceQuote  `json:"quotes"`
	Yield       *YieldPoint   `json:"yield,omitempty"`
	Rates       []RateSeries  `json:"rates,omitempty"`
	Headlines   []Headline    `json:"headlines,omitempty"`
	Narrative   string        `json:"narrative"`
}

// MarketSentiment classifies the snapshot as bullish, bearish, or mixed by
// counting positive versus negative quote changes. Zero changes count for
// neither side.
func (s *MarketSnapshot) MarketSentiment() string {
	var positive, negative int
	for _, q := range s.Quotes {
		switch {
		case q.ChangePct > 0:
			positive++
		case q.ChangePct < 0:
			negative++
		}
	}
	switch {
	case positive > negative:
		return SentimentBullish
	case negative > positive:
		return SentimentBearish
	default:
		return SentimentMixed
	}
}
