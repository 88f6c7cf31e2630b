package interfaces

import (
	"context"

	"market-recap/internal/types"
)

type Narrator interface {
	Narrate(ctx context.Context, snap *types.MarketSnapshot) (string, error)
}
