package engineobs

import (
	"context"
	"time"

	"market-recap/internal/interfaces"
	"market-recap/internal/logger"
	"market-recap/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{
		engine: eng,
	}
}

func (oe *observableEngine) BuildSnapshot(ctx context.Context) *types.MarketSnapshot {
	ctx, span := logger.StartSpan(ctx, "engine.BuildSnapshot")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting report cycle")

	snap := oe.engine.BuildSnapshot(ctx)

	logger.InfoSkip(ctx, 1, "Report cycle completed",
		"variant", string(snap.Variant),
		"quotes", len(snap.Quotes),
		"rates", len(snap.Rates),
		"has_yield", snap.Yield != nil,
		"headlines", len(snap.Headlines),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return snap
}
