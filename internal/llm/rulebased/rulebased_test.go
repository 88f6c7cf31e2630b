package rulebased

import (
	"context"
	"testing"

	"market-recap/internal/types"
)

func snapshot(yieldChangeBps float64, changes ...float64) *types.MarketSnapshot {
	snap := &types.MarketSnapshot{
		Yield: &types.YieldPoint{CurrentYield: 4.25, ChangeBps: yieldChangeBps},
	}
	for i, pct := range changes {
		snap.Quotes = append(snap.Quotes, types.PriceQuote{
			Symbol:    []string{"BTC", "ETH", "XRP"}[i%3],
			PriceUSD:  100,
			ChangePct: pct,
		})
	}
	return snap
}

func TestNarrateUnavailable(t *testing.T) {
	ctx := context.Background()
	n := NewNarrator()

	// No yield
	snap := snapshot(5, 1.0)
	snap.Yield = nil
	got, err := n.Narrate(ctx, snap)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "📊 Market data analysis unavailable" {
		t.Errorf("Expected unavailable phrase without yield, got %q", got)
	}

	// No quotes
	got, _ = n.Narrate(ctx, snapshot(5))
	if got != "📊 Market data analysis unavailable" {
		t.Errorf("Expected unavailable phrase without quotes, got %q", got)
	}
}

func TestNarrateRisingYields(t *testing.T) {
	ctx := context.Background()
	n := NewNarrator()

	// Rising yields with bearish crypto
	got, _ := n.Narrate(ctx, snapshot(5, -2.0, -1.0))
	if got != "📉 Rising Treasury yields may be contributing to crypto selling pressure as investors seek safer yields" {
		t.Errorf("Expected selling-pressure phrase, got %q", got)
	}

	// Rising yields with crypto holding up
	got, _ = n.Narrate(ctx, snapshot(5, 2.0, 1.0))
	if got != "📈 Despite rising yields, crypto showing resilience - risk appetite remains strong" {
		t.Errorf("Expected resilience phrase, got %q", got)
	}
}

func TestNarrateFallingYields(t *testing.T) {
	ctx := context.Background()
	n := NewNarrator()

	// Falling yields with bullish crypto
	got, _ := n.Narrate(ctx, snapshot(-5, 2.0, 1.0))
	if got != "📈 Falling Treasury yields supporting crypto rally as risk assets become more attractive" {
		t.Errorf("Expected rally phrase, got %q", got)
	}

	// Falling yields without crypto gains
	got, _ = n.Narrate(ctx, snapshot(-5, -2.0, 1.0, -1.0))
	if got != "📊 Lower yields not translating to crypto gains - other factors driving market sentiment" {
		t.Errorf("Expected decoupled phrase, got %q", got)
	}

	// A flat yield counts as not rising
	got, _ = n.Narrate(ctx, snapshot(0, 2.0))
	if got != "📈 Falling Treasury yields supporting crypto rally as risk assets become more attractive" {
		t.Errorf("Expected rally phrase for flat yield with bullish crypto, got %q", got)
	}
}
