package news

import (
	"strings"
	"unicode"

	"market-recap/internal/types"
)

// ToneScorer labels headline tone using financial sentiment word lists.
type ToneScorer struct {
	positiveWords map[string]bool
	negativeWords map[string]bool
}

func NewToneScorer() *ToneScorer {
	return &ToneScorer{
		positiveWords: loadPositiveWords(),
		negativeWords: loadNegativeWords(),
	}
}

// Classify counts positive versus negative words in a headline. Balanced or
// empty counts come back neutral.
func (ts *ToneScorer) Classify(text string) string {
	words := tokenize(strings.ToLower(text))

	var positive, negative int
	for _, word := range words {
		if ts.positiveWords[word] {
			positive++
		}
		if ts.negativeWords[word] {
			negative++
		}
	}

	switch {
	case positive > negative:
		return types.TonePositive
	case negative > positive:
		return types.ToneNegative
	default:
		return types.ToneNeutral
	}
}

// tokenize splits text into words
func tokenize(text string) []string {
	var words []string
	var currentWord strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			currentWord.WriteRune(r)
		} else if currentWord.Len() > 0 {
			words = append(words, currentWord.String())
			currentWord.Reset()
		}
	}

	if currentWord.Len() > 0 {
		words = append(words, currentWord.String())
	}

	return words
}

// Word lists based on financial sentiment dictionaries, tilted toward
// crypto and rates coverage.

func loadPositiveWords() map[string]bool {
	words := []string{
		"adoption", "advance", "advances", "approval", "approved", "breakout",
		"bull", "bullish", "climb", "climbs", "gain", "gains", "growth",
		"high", "inflow", "inflows", "jump", "jumps", "momentum", "optimism",
		"outperform", "rally", "rallies", "rebound", "record", "recovery",
		"rise", "rises", "soar", "soars", "strength", "strong", "surge",
		"surges", "upbeat", "upgrade", "uptrend",
	}
	m := make(map[string]bool)
	for _, w := range words {
		m[w] = true
	}
	return m
}

func loadNegativeWords() map[string]bool {
	words := []string{
		"ban", "bear", "bearish", "collapse", "concern", "concerns", "crash",
		"crackdown", "decline", "declines", "dip", "dips", "downgrade",
		"downturn", "drop", "drops", "dump", "fall", "falls", "fear", "fears",
		"fraud", "hack", "hacked", "lawsuit", "liquidation", "liquidations",
		"loss", "losses", "outflow", "outflows", "plunge", "plunges",
		"pressure", "risk", "risks", "selloff", "sink", "sinks", "slide",
		"slides", "slump", "slumps", "tumble", "tumbles", "uncertain",
		"uncertainty", "volatile", "volatility", "warning", "weak", "weakness",
	}
	m := make(map[string]bool)
	for _, w := range words {
		m[w] = true
	}
	return m
}
