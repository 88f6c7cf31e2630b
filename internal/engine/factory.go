package engine

import (
	"market-recap/internal/interfaces"
	"market-recap/internal/store"
	"market-recap/internal/types"
)

func New(cfg *store.Config, variant types.ReportVariant, src Sources, narrator interfaces.Narrator) interfaces.Engine {
	return newEngine(cfg, variant, src, narrator)
}
