package report

import (
	"fmt"
	"strings"

	"market-recap/internal/types"
)

// Glyph returns the movement marker for a delta. Zero counts as up so a
// "+0.00" line never carries a down marker.
func Glyph(delta float64) string {
	if delta >= 0 {
		return "🟢"
	}
	return "🔴"
}

// Render produces the complete report text for a snapshot. Section order is
// fixed; sections without data are dropped except the crypto header and the
// correlation analysis, which always appear.
func Render(snap *types.MarketSnapshot) string {
	var b strings.Builder

	writeTitle(&b, snap)
	writeQuotes(&b, snap)
	writeYield(&b, snap)
	writeRates(&b, snap)
	writeHeadlines(&b, snap)
	writeNarrative(&b, snap)
	writeSummary(&b, snap)

	return b.String()
}

func writeTitle(b *strings.Builder, snap *types.MarketSnapshot) {
	if snap.Variant == types.VariantClosing {
		dataDate := snap.DataDate.Format("January 02, 2006")
		fmt.Fprintf(b, "\n🚀 DAILY MARKET RECAP - %s 🚀\n", dataDate)
		fmt.Fprintf(b, "📊 Based on %s Market Closing Prices\n", dataDate)
		fmt.Fprintf(b, "📅 Report Generated: %s\n", snap.GeneratedAt.Format("January 02, 2006"))
		return
	}
	fmt.Fprintf(b, "\n🚀 CRYPTO MARKET UPDATE - %s 🚀\n", snap.GeneratedAt.Format("January 02, 2006"))
}

func writeQuotes(b *strings.Builder, snap *types.MarketSnapshot) {
	suffix := ""
	if snap.Variant == types.VariantClosing {
		b.WriteString("\n📈 CRYPTOCURRENCY PERFORMANCE (Day-over-Day):\n")
		suffix = " from previous close"
	} else {
		b.WriteString("\n📈 CRYPTOCURRENCY PERFORMANCE (24h):\n")
	}
	for _, q := range snap.Quotes {
		fmt.Fprintf(b, "%s %s: $%s (%+.2f%%%s)\n",
			Glyph(q.ChangePct), q.Symbol, FormatMoney(q.PriceUSD), q.ChangePct, suffix)
	}
}

func writeYield(b *strings.Builder, snap *types.MarketSnapshot) {
	if snap.Yield == nil {
		return
	}
	if snap.Variant == types.VariantClosing {
		b.WriteString("\n🏛️ TREASURY YIELD UPDATE (Closing):\n")
		fmt.Fprintf(b, "📊 10Y Treasury: %.2f%% (%+.2fbps from previous close)\n",
			snap.Yield.CurrentYield, snap.Yield.ChangeBps)
		return
	}
	b.WriteString("\n🏛️ TREASURY YIELD UPDATE:\n")
	fmt.Fprintf(b, "📊 10Y Treasury: %.2f%% (%+.2fbps)\n",
		snap.Yield.CurrentYield, snap.Yield.ChangeBps)
}

func writeRates(b *strings.Builder, snap *types.MarketSnapshot) {
	if len(snap.Rates) == 0 {
		return
	}
	if snap.Variant == types.VariantClosing {
		b.WriteString("\n💵 SHORT-TERM RATES (Closing):\n")
		for _, r := range snap.Rates {
			if r.Note != "" {
				fmt.Fprintf(b, "%s %s: %.2f%% (%+.2fbps from previous close) %s\n",
					Glyph(r.ChangeBps), r.Label, r.Current, r.ChangeBps, r.Note)
			} else {
				fmt.Fprintf(b, "%s %s: %.2f%% (%+.2fbps from previous close)\n",
					Glyph(r.ChangeBps), r.Label, r.Current, r.ChangeBps)
			}
		}
		return
	}
	b.WriteString("\n💵 SHORT-TERM RATES:\n")
	for _, r := range snap.Rates {
		fmt.Fprintf(b, "%s %s: %.2f%% (%+.2fbps)\n",
			Glyph(r.ChangeBps), r.Label, r.Current, r.ChangeBps)
	}
}

func writeHeadlines(b *strings.Builder, snap *types.MarketSnapshot) {
	if len(snap.Headlines) == 0 {
		return
	}
	b.WriteString("\n📰 MARKET HEADLINES:\n")
	for _, h := range snap.Headlines {
		fmt.Fprintf(b, "%s %s (%s)\n", toneGlyph(h.Tone), h.Title, h.Source)
	}
}

func toneGlyph(tone string) string {
	switch tone {
	case types.TonePositive:
		return "🟢"
	case types.ToneNegative:
		return "🔴"
	}
	return "⚪"
}

func writeNarrative(b *strings.Builder, snap *types.MarketSnapshot) {
	b.WriteString("\n🔗 MARKET CORRELATION ANALYSIS:\n")
	if snap.Narrative != "" {
		b.WriteString(snap.Narrative)
		b.WriteByte('\n')
	}
}

func writeSummary(b *strings.Builder, snap *types.MarketSnapshot) {
	sentiment := snap.MarketSentiment()
	b.WriteString("\n📋 MARKET SUMMARY:\n")
	fmt.Fprintf(b, "🎯 Overall Sentiment: %s\n", strings.ToUpper(sentiment))
	fmt.Fprintf(b, "🌊 Risk Appetite: %s\n", riskAppetite(sentiment))
	fmt.Fprintf(b, "💡 Key Takeaway: %s\n", keyTakeaway(sentiment))
	b.WriteByte('\n')
	b.WriteString(hashtags(snap.Variant))
	b.WriteByte('\n')
}

func riskAppetite(sentiment string) string {
	switch sentiment {
	case types.SentimentBullish:
		return "High"
	case types.SentimentBearish:
		return "Low"
	}
	return "Mixed"
}

func keyTakeaway(sentiment string) string {
	switch sentiment {
	case types.SentimentBullish:
		return "Risk-on environment favors crypto"
	case types.SentimentBearish:
		return "Risk-off sentiment prevails"
	}
	return "Mixed signals suggest cautious approach"
}

func hashtags(variant types.ReportVariant) string {
	tags := "#Crypto #Markets #Treasury #Finance #DigitalAssets #TradFi #DeFi"
	if variant == types.VariantClosing {
		tags += " #MarketRecap #ClosingPrices"
	}
	return tags
}
