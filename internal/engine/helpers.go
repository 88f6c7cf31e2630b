package engine

import (
	"time"

	"market-recap/internal/store"
	"market-recap/internal/types"
)

// PreviousTradingDay returns the most recent weekday with a market close
// before t. Monday and Sunday both map back to Friday; every other day maps
// to the previous calendar day.
func PreviousTradingDay(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Monday:
		return t.AddDate(0, 0, -3)
	case time.Sunday:
		return t.AddDate(0, 0, -2)
	}
	return t.AddDate(0, 0, -1)
}

// orderQuotes arranges resolved quotes in configured display order.
func orderQuotes(byName map[string]types.PriceQuote, symbols []store.SymbolMapping) []types.PriceQuote {
	quotes := make([]types.PriceQuote, 0, len(byName))
	for _, sym := range symbols {
		if q, ok := byName[sym.Symbol]; ok {
			quotes = append(quotes, q)
		}
	}
	return quotes
}

// orderRates arranges resolved series in configured display order, filling
// labels for sources that only carry series names.
func orderRates(byName map[string]types.RateSeries, specs []store.RateSeriesSpec) []types.RateSeries {
	rates := make([]types.RateSeries, 0, len(byName))
	for _, spec := range specs {
		if r, ok := byName[spec.Name]; ok {
			if r.Label == "" {
				r.Label = spec.Label
			}
			rates = append(rates, r)
		}
	}
	return rates
}
