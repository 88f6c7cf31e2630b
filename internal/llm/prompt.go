package llm

import (
	"fmt"
	"strings"

	"market-recap/internal/report"
	"market-recap/internal/types"
)

// MarketPrompt renders the analyst prompt for a snapshot. Every provider
// sends the same prompt so they stay interchangeable behind the Narrator
// interface.
func MarketPrompt(snap *types.MarketSnapshot) string {
	cryptoSummary := make([]string, 0, len(snap.Quotes))
	for _, q := range snap.Quotes {
		cryptoSummary = append(cryptoSummary, fmt.Sprintf("%s: $%s (%+.2f%% %s)",
			q.Symbol, report.FormatMoney(q.PriceUSD), q.ChangePct, direction(q.ChangePct)))
	}

	treasurySummary := ""
	if snap.Yield != nil {
		treasurySummary = fmt.Sprintf("10Y Treasury: %.2f%% (%+.2fbps %s)",
			snap.Yield.CurrentYield, snap.Yield.ChangeBps, direction(snap.Yield.ChangeBps))
	}

	ratesSummary := make([]string, 0, len(snap.Rates))
	for _, r := range snap.Rates {
		ratesSummary = append(ratesSummary, fmt.Sprintf("%s: %.2f%% (%+.2fbps %s)",
			r.Label, r.Current, r.ChangeBps, direction(r.ChangeBps)))
	}

	var b strings.Builder
	b.WriteString("You are a financial market analyst providing insights for a daily market recap report. \n\n")
	b.WriteString("Market Data Summary:\n")
	fmt.Fprintf(&b, "- Cryptocurrencies: %s\n", orNoData(strings.Join(cryptoSummary, ", ")))
	fmt.Fprintf(&b, "- Treasury: %s\n", orNoData(treasurySummary))
	fmt.Fprintf(&b, "- Short-term Rates: %s\n", orNoData(strings.Join(ratesSummary, ", ")))
	if len(snap.Headlines) > 0 {
		titles := make([]string, 0, len(snap.Headlines))
		for _, h := range snap.Headlines {
			titles = append(titles, h.Title)
		}
		fmt.Fprintf(&b, "- Recent Headlines: %s\n", strings.Join(titles, "; "))
	}
	fmt.Fprintf(&b, "- Overall Sentiment: %s\n\n", strings.ToUpper(snap.MarketSentiment()))
	b.WriteString(`Provide a concise, professional market correlation analysis (2-3 sentences) that:
1. Explains the relationship between Treasury yields, interest rates, and cryptocurrency performance
2. Identifies key market dynamics and what they might indicate
3. Uses professional financial language suitable for LinkedIn
4. Is insightful but not overly technical
5. Includes relevant market context

Format your response as plain text without markdown, emojis, or special formatting. Keep it under 200 words.`)
	return b.String()
}

func direction(delta float64) string {
	if delta > 0 {
		return "up"
	}
	return "down"
}

func orNoData(s string) string {
	if s == "" {
		return "No data"
	}
	return s
}
