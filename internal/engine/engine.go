package engine

import (
	"context"
	"time"

	"market-recap/internal/interfaces"
	"market-recap/internal/llm/rulebased"
	"market-recap/internal/logger"
	"market-recap/internal/store"
	"market-recap/internal/types"
)

// Sources bundles the data inputs for one report cycle. Alt entries are
// optional fallbacks tried when the primary fails or comes back empty.
type Sources struct {
	Quotes    interfaces.QuoteSource
	Yield     interfaces.YieldSource
	YieldAlt  interfaces.YieldSource
	Rates     interfaces.RateSource
	RatesAlt  interfaces.RateSource
	Headlines interfaces.HeadlineSource
}

// Engine runs the sequential fetch pipeline and assembles the snapshot a
// report is rendered from.
type Engine struct {
	cfg      *store.Config
	variant  types.ReportVariant
	src      Sources
	narrator interfaces.Narrator
	fallback interfaces.Narrator
}

func newEngine(cfg *store.Config, variant types.ReportVariant, src Sources, narrator interfaces.Narrator) *Engine {
	return &Engine{
		cfg:      cfg,
		variant:  variant,
		src:      src,
		narrator: narrator,
		fallback: rulebased.NewNarrator(),
	}
}

// BuildSnapshot fetches quotes, the Treasury yield, short-term rates, and
// optionally headlines, then attaches the narrative. Individual fetch
// failures shrink the snapshot instead of aborting the cycle.
func (e *Engine) BuildSnapshot(ctx context.Context) *types.MarketSnapshot {
	timer := logger.StartOperation(ctx, "build_snapshot", "variant", string(e.variant))
	ctx = timer.GetContext()

	now := time.Now()
	snap := &types.MarketSnapshot{
		Variant:     e.variant,
		GeneratedAt: now,
		DataDate:    now,
	}
	if e.variant == types.VariantClosing {
		snap.DataDate = PreviousTradingDay(now)
	}

	snap.Quotes = e.fetchQuotes(ctx)
	snap.Yield = e.fetchYield(ctx)
	snap.Rates = e.fetchRates(ctx)
	snap.Headlines = e.fetchHeadlines(ctx)
	snap.Narrative = e.narrate(ctx, snap)

	timer.End(
		"quotes", len(snap.Quotes),
		"rates", len(snap.Rates),
		"headlines", len(snap.Headlines),
	)
	return snap
}

func (e *Engine) fetchQuotes(ctx context.Context) []types.PriceQuote {
	logger.Debug(ctx, "Fetching cryptocurrency quotes", "symbols", len(e.cfg.Symbols))

	byName := e.src.Quotes.Quotes(ctx)
	quotes := orderQuotes(byName, e.cfg.Symbols)
	if len(quotes) == 0 {
		logger.Warn(ctx, "No cryptocurrency quotes resolved")
	}
	return quotes
}

func (e *Engine) fetchYield(ctx context.Context) *types.YieldPoint {
	point, err := e.src.Yield.TreasuryYield(ctx)
	if err == nil {
		return &point
	}
	logger.Warn(ctx, "Primary Treasury source failed", "error", err)

	if e.src.YieldAlt == nil {
		logger.Warn(ctx, "No Treasury yield available, section will be omitted")
		return nil
	}

	logger.Info(ctx, "Trying fallback Treasury source")
	point, err = e.src.YieldAlt.TreasuryYield(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Fallback Treasury source failed", err)
		return nil
	}
	return &point
}

func (e *Engine) fetchRates(ctx context.Context) []types.RateSeries {
	byName := e.src.Rates.ShortRates(ctx)
	if len(byName) == 0 && e.src.RatesAlt != nil {
		logger.Info(ctx, "Primary rate source returned nothing, trying fallback")
		byName = e.src.RatesAlt.ShortRates(ctx)
	}

	rates := orderRates(byName, e.cfg.Rates)
	if len(rates) == 0 {
		logger.Warn(ctx, "No short-term rates resolved, section will be omitted")
	}
	return rates
}

func (e *Engine) fetchHeadlines(ctx context.Context) []types.Headline {
	if e.src.Headlines == nil {
		return nil
	}
	headlines, err := e.src.Headlines.TopHeadlines(ctx)
	if err != nil {
		logger.Warn(ctx, "Headline scraping failed, continuing without headlines", "error", err)
		return nil
	}
	return headlines
}

// narrate asks the configured narrator for the correlation analysis and
// falls back to the rule-based phrases on any failure, so the snapshot
// never ships without one.
func (e *Engine) narrate(ctx context.Context, snap *types.MarketSnapshot) string {
	if e.narrator != nil {
		text, err := e.narrator.Narrate(ctx, snap)
		if err == nil && text != "" {
			return text
		}
		if err != nil {
			logger.Warn(ctx, "Narrator failed, falling back to rule-based analysis", "error", err)
		}
	}
	text, _ := e.fallback.Narrate(ctx, snap)
	return text
}
