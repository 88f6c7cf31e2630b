package llmobs

import (
	"context"

	"market-recap/internal/interfaces"
	"market-recap/internal/logger"
	"market-recap/internal/types"
)

// observableNarrator wraps a Narrator with observability (logging & tracing)
type observableNarrator struct {
	narrator interfaces.Narrator
	provider string
}

// Compile-time interface check
var _ interfaces.Narrator = (*observableNarrator)(nil)

// Wrap wraps a narrator with observability middleware
func Wrap(narrator interfaces.Narrator, provider string) interfaces.Narrator {
	return &observableNarrator{
		narrator: narrator,
		provider: provider,
	}
}

// Narrate generates the analysis text with observability
func (on *observableNarrator) Narrate(ctx context.Context, snap *types.MarketSnapshot) (string, error) {
	ctx, span := logger.StartSpan(ctx, "llm.Narrate")
	defer span.End()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting market analysis",
		"provider", on.provider,
		"variant", string(snap.Variant),
		"quotes", len(snap.Quotes),
	)

	// Call underlying narrator
	text, err := on.narrator.Narrate(ctx, snap)
	if err != nil {
		// Use ErrorWithErrSkip(1) to report the actual caller
		logger.ErrorWithErrSkip(ctx, 1, "Failed to generate market analysis", err,
			"provider", on.provider,
		)
		return "", err
	}

	// Log analysis result - use InfoSkip(1) to report the actual caller
	logger.InfoSkip(ctx, 1, "Market analysis received",
		"provider", on.provider,
		"chars", len(text),
	)

	return text, nil
}
