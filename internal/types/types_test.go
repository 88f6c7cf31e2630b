package types

import "testing"

func TestMarketSentiment(t *testing.T) {
	snap := &MarketSnapshot{Quotes: []PriceQuote{
		{Symbol: "BTC", ChangePct: 2.0},
		{Symbol: "ETH", ChangePct: 0.5},
		{Symbol: "XRP", ChangePct: -1.0},
	}}
	if got := snap.MarketSentiment(); got != SentimentBullish {
		t.Errorf("Expected bullish with majority gainers, got %s", got)
	}

	snap = &MarketSnapshot{Quotes: []PriceQuote{
		{Symbol: "BTC", ChangePct: -2.0},
		{Symbol: "ETH", ChangePct: -0.5},
		{Symbol: "XRP", ChangePct: 1.0},
	}}
	if got := snap.MarketSentiment(); got != SentimentBearish {
		t.Errorf("Expected bearish with majority losers, got %s", got)
	}

	snap = &MarketSnapshot{Quotes: []PriceQuote{
		{Symbol: "BTC", ChangePct: 2.0},
		{Symbol: "ETH", ChangePct: -0.5},
	}}
	if got := snap.MarketSentiment(); got != SentimentMixed {
		t.Errorf("Expected mixed with even split, got %s", got)
	}

	// Flat movers count for neither side
	snap = &MarketSnapshot{Quotes: []PriceQuote{
		{Symbol: "BTC", ChangePct: 0},
		{Symbol: "ETH", ChangePct: 1.0},
	}}
	if got := snap.MarketSentiment(); got != SentimentBullish {
		t.Errorf("Expected bullish when the only mover gained, got %s", got)
	}

	// No quotes at all reads as mixed
	snap = &MarketSnapshot{}
	if got := snap.MarketSentiment(); got != SentimentMixed {
		t.Errorf("Expected mixed without quotes, got %s", got)
	}
}
