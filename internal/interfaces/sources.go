package interfaces

import (
	"context"

	"market-recap/internal/types"
)

// QuoteSource returns quotes keyed by display symbol. Symbols that failed to
// fetch are omitted from the map, never surfaced as errors.
type QuoteSource interface {
	Quotes(ctx context.Context) map[string]types.PriceQuote
}

type YieldSource interface {
	TreasuryYield(ctx context.Context) (types.YieldPoint, error)
}

// RateSource returns short-term rate series keyed by configured series name.
// Series that could not be resolved are omitted.
type RateSource interface {
	ShortRates(ctx context.Context) map[string]types.RateSeries
}

type HeadlineSource interface {
	TopHeadlines(ctx context.Context) ([]types.Headline, error)
}
