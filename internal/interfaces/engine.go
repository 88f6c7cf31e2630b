package interfaces

import (
	"context"

	"market-recap/internal/types"
)

type Engine interface {
	BuildSnapshot(ctx context.Context) *types.MarketSnapshot
}
