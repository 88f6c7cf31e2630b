package report

import (
	"strings"
	"testing"
	"time"

	"market-recap/internal/types"
)

func TestGlyph(t *testing.T) {
	if g := Glyph(1.5); g != "🟢" {
		t.Errorf("Expected green glyph for positive delta, got %s", g)
	}

	if g := Glyph(-0.01); g != "🔴" {
		t.Errorf("Expected red glyph for negative delta, got %s", g)
	}

	// A zero delta renders as "+0.00", so it must carry the up marker
	if g := Glyph(0); g != "🟢" {
		t.Errorf("Expected green glyph for zero delta, got %s", g)
	}
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{115843.2, "115,843.20"},
		{1234567.891, "1,234,567.89"},
		{999.999, "1,000.00"},
		{42.5, "42.50"},
		{0, "0.00"},
		{-1234.5, "-1,234.50"},
	}

	for _, c := range cases {
		if got := FormatMoney(c.in); got != c.want {
			t.Errorf("Expected FormatMoney(%v) to be %s, got %s", c.in, c.want, got)
		}
	}
}

func closingSnapshot() *types.MarketSnapshot {
	return &types.MarketSnapshot{
		Variant:     types.VariantClosing,
		GeneratedAt: time.Date(2025, 8, 12, 9, 30, 0, 0, time.UTC),
		DataDate:    time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC),
		Quotes: []types.PriceQuote{
			{Symbol: "BTC", PriceUSD: 117542.1, ChangePct: 3.25},
			{Symbol: "ETH", PriceUSD: 4421.87, ChangePct: 0.85},
			{Symbol: "XRP", PriceUSD: 3.18, ChangePct: -0.42},
		},
		Yield: &types.YieldPoint{CurrentYield: 4.25, PreviousYield: 4.20, ChangeBps: 5},
		Rates: []types.RateSeries{
			{Name: "fed_funds_rate", Label: "Fed Funds Rate", Current: 4.41, Previous: 4.43, ChangeBps: -2, Note: "Approximated from 3M Treasury"},
			{Name: "2_year_treasury", Label: "2 Year Treasury", Current: 3.72, Previous: 3.72, ChangeBps: 0},
		},
		Narrative: "Falling Treasury yields supporting crypto rally as risk assets become more attractive",
	}
}

func TestRenderClosing(t *testing.T) {
	got := Render(closingSnapshot())

	want := "\n🚀 DAILY MARKET RECAP - August 11, 2025 🚀\n" +
		"📊 Based on August 11, 2025 Market Closing Prices\n" +
		"📅 Report Generated: August 12, 2025\n" +
		"\n📈 CRYPTOCURRENCY PERFORMANCE (Day-over-Day):\n" +
		"🟢 BTC: $117,542.10 (+3.25% from previous close)\n" +
		"🟢 ETH: $4,421.87 (+0.85% from previous close)\n" +
		"🔴 XRP: $3.18 (-0.42% from previous close)\n" +
		"\n🏛️ TREASURY YIELD UPDATE (Closing):\n" +
		"📊 10Y Treasury: 4.25% (+5.00bps from previous close)\n" +
		"\n💵 SHORT-TERM RATES (Closing):\n" +
		"🔴 Fed Funds Rate: 4.41% (-2.00bps from previous close) Approximated from 3M Treasury\n" +
		"🟢 2 Year Treasury: 3.72% (+0.00bps from previous close)\n" +
		"\n🔗 MARKET CORRELATION ANALYSIS:\n" +
		"Falling Treasury yields supporting crypto rally as risk assets become more attractive\n" +
		"\n📋 MARKET SUMMARY:\n" +
		"🎯 Overall Sentiment: BULLISH\n" +
		"🌊 Risk Appetite: High\n" +
		"💡 Key Takeaway: Risk-on environment favors crypto\n" +
		"\n#Crypto #Markets #Treasury #Finance #DigitalAssets #TradFi #DeFi #MarketRecap #ClosingPrices\n"

	if got != want {
		t.Errorf("Expected closing report:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderUpdate(t *testing.T) {
	snap := &types.MarketSnapshot{
		Variant:     types.VariantUpdate,
		GeneratedAt: time.Date(2025, 8, 12, 14, 0, 0, 0, time.UTC),
		DataDate:    time.Date(2025, 8, 12, 14, 0, 0, 0, time.UTC),
		Quotes: []types.PriceQuote{
			{Symbol: "BTC", PriceUSD: 118000, ChangePct: -2.1},
			{Symbol: "ETH", PriceUSD: 4400, ChangePct: -1.3},
		},
		Yield:     &types.YieldPoint{CurrentYield: 4.30, PreviousYield: 4.27, ChangeBps: 3},
		Rates:     []types.RateSeries{{Name: "fed_funds_rate", Label: "Fed Funds Rate", Current: 4.33, ChangeBps: 1}},
		Narrative: "Rising Treasury yields may be contributing to crypto selling pressure as investors seek safer yields",
	}

	got := Render(snap)

	if !strings.Contains(got, "🚀 CRYPTO MARKET UPDATE - August 12, 2025 🚀") {
		t.Errorf("Expected update title, got:\n%s", got)
	}

	if !strings.Contains(got, "📈 CRYPTOCURRENCY PERFORMANCE (24h):\n") {
		t.Errorf("Expected 24h performance section, got:\n%s", got)
	}

	// Update lines carry no closing-price suffix
	if !strings.Contains(got, "🔴 BTC: $118,000.00 (-2.10%)\n") {
		t.Errorf("Expected bare update quote line, got:\n%s", got)
	}

	if !strings.Contains(got, "\n🏛️ TREASURY YIELD UPDATE:\n📊 10Y Treasury: 4.30% (+3.00bps)\n") {
		t.Errorf("Expected update yield section, got:\n%s", got)
	}

	if !strings.Contains(got, "\n💵 SHORT-TERM RATES:\n🟢 Fed Funds Rate: 4.33% (+1.00bps)\n") {
		t.Errorf("Expected update rates section, got:\n%s", got)
	}

	if strings.Contains(got, "from previous close") {
		t.Error("Expected no closing-price suffix in update variant")
	}

	if !strings.Contains(got, "🎯 Overall Sentiment: BEARISH\n🌊 Risk Appetite: Low\n💡 Key Takeaway: Risk-off sentiment prevails\n") {
		t.Errorf("Expected bearish summary, got:\n%s", got)
	}

	if !strings.HasSuffix(got, "\n#Crypto #Markets #Treasury #Finance #DigitalAssets #TradFi #DeFi\n") {
		t.Errorf("Expected update hashtags without recap tags, got:\n%s", got)
	}

	if strings.Contains(got, "#MarketRecap") || strings.Contains(got, "#ClosingPrices") {
		t.Error("Expected recap-only hashtags to be absent from update variant")
	}
}

func TestRenderLineFormats(t *testing.T) {
	snap := &types.MarketSnapshot{
		Variant:     types.VariantUpdate,
		GeneratedAt: time.Date(2025, 8, 12, 14, 0, 0, 0, time.UTC),
		DataDate:    time.Date(2025, 8, 12, 14, 0, 0, 0, time.UTC),
		Quotes: []types.PriceQuote{
			{Symbol: "BTC", PriceUSD: 43250.0, ChangePct: 2.45},
			{Symbol: "ETH", PriceUSD: 2650.0, ChangePct: -1.20},
		},
		Yield: &types.YieldPoint{CurrentYield: 4.25, PreviousYield: 4.20, ChangeBps: 5},
	}

	got := Render(snap)

	// Prices carry thousands separators and two decimals, deltas an explicit sign
	if !strings.Contains(got, "🟢 BTC: $43,250.00 (+2.45%)\n") {
		t.Errorf("Expected formatted BTC line, got:\n%s", got)
	}

	if !strings.Contains(got, "🔴 ETH: $2,650.00 (-1.20%)\n") {
		t.Errorf("Expected formatted ETH line, got:\n%s", got)
	}

	if !strings.Contains(got, "4.25% (+5.00bps)") {
		t.Errorf("Expected formatted yield line, got:\n%s", got)
	}
}

func TestRenderOmitsEmptySections(t *testing.T) {
	snap := closingSnapshot()
	snap.Yield = nil
	snap.Rates = nil

	got := Render(snap)

	if strings.Contains(got, "TREASURY YIELD UPDATE") {
		t.Error("Expected Treasury section to be omitted when yield is nil")
	}

	if strings.Contains(got, "SHORT-TERM RATES") {
		t.Error("Expected rates section to be omitted when no series resolved")
	}

	// The correlation header always appears
	if !strings.Contains(got, "\n🔗 MARKET CORRELATION ANALYSIS:\n") {
		t.Errorf("Expected correlation header to remain, got:\n%s", got)
	}
}

func TestRenderHeadlines(t *testing.T) {
	snap := closingSnapshot()
	snap.Headlines = []types.Headline{
		{Title: "Bitcoin ETF inflows surge", URL: "https://example.com/a", Source: "CoinDesk", Tone: types.TonePositive},
		{Title: "Exchange hit by outage", URL: "https://example.com/b", Source: "Cointelegraph", Tone: types.ToneNegative},
		{Title: "Fed minutes due Wednesday", URL: "https://example.com/c", Source: "CoinDesk", Tone: types.ToneNeutral},
	}

	got := Render(snap)

	if !strings.Contains(got, "\n📰 MARKET HEADLINES:\n") {
		t.Errorf("Expected headlines section, got:\n%s", got)
	}

	if !strings.Contains(got, "🟢 Bitcoin ETF inflows surge (CoinDesk)\n") {
		t.Errorf("Expected positive headline line, got:\n%s", got)
	}

	if !strings.Contains(got, "🔴 Exchange hit by outage (Cointelegraph)\n") {
		t.Errorf("Expected negative headline line, got:\n%s", got)
	}

	if !strings.Contains(got, "⚪ Fed minutes due Wednesday (CoinDesk)\n") {
		t.Errorf("Expected neutral headline line, got:\n%s", got)
	}
}

func TestRenderMixedSentiment(t *testing.T) {
	snap := closingSnapshot()
	snap.Quotes = []types.PriceQuote{
		{Symbol: "BTC", PriceUSD: 117542.1, ChangePct: 1.0},
		{Symbol: "ETH", PriceUSD: 4421.87, ChangePct: -1.0},
	}

	got := Render(snap)

	if !strings.Contains(got, "🎯 Overall Sentiment: MIXED\n🌊 Risk Appetite: Mixed\n💡 Key Takeaway: Mixed signals suggest cautious approach\n") {
		t.Errorf("Expected mixed summary, got:\n%s", got)
	}
}
