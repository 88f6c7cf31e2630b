package rulebased

import (
	"context"

	"market-recap/internal/interfaces"
	"market-recap/internal/logger"
	"market-recap/internal/types"
)

// Narrator produces the canned correlation analysis. It backs reports when
// no LLM provider is configured and is the fallback when a provider call
// fails, so Narrate never returns an error.
type Narrator struct{}

var _ interfaces.Narrator = (*Narrator)(nil)

func NewNarrator() *Narrator {
	return &Narrator{}
}

// Narrate picks the phrase matching the yield direction and crypto
// sentiment. Without both a yield and at least one quote there is nothing to
// correlate, and the unavailable phrase is returned.
func (n *Narrator) Narrate(ctx context.Context, snap *types.MarketSnapshot) (string, error) {
	logger.Debug(ctx, "Generating rule-based correlation analysis")

	if snap.Yield == nil || len(snap.Quotes) == 0 {
		return "📊 Market data analysis unavailable", nil
	}

	sentiment := snap.MarketSentiment()
	if snap.Yield.ChangeBps > 0 {
		if sentiment == types.SentimentBearish {
			return "📉 Rising Treasury yields may be contributing to crypto selling pressure as investors seek safer yields", nil
		}
		return "📈 Despite rising yields, crypto showing resilience - risk appetite remains strong", nil
	}
	if sentiment == types.SentimentBullish {
		return "📈 Falling Treasury yields supporting crypto rally as risk assets become more attractive", nil
	}
	return "📊 Lower yields not translating to crypto gains - other factors driving market sentiment", nil
}
