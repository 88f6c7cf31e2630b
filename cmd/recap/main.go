package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"market-recap/internal/logger"
	"market-recap/internal/report"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	must(initializeSystem())

	ctx := context.Background()
	defer func() { _ = logger.Shutdown(context.Background()) }()

	cfg, err := loadConfig(ctx)
	must(err)

	if len(os.Args) > 1 && os.Args[1] == "--test-treasury" {
		must(runTreasuryProbe(ctx, cfg))
		return
	}

	// The Treasury section is the one piece that cannot be skipped, so the
	// key is resolved before any network call is made.
	avKey, err := resolveAlphaVantageKey()
	must(err)

	narrator := initializeNarrator(ctx, cfg)
	eng := initializeEngine(ctx, cfg, avKey, narrator)

	snap := eng.BuildSnapshot(ctx)
	text := report.Render(snap)

	rule := strings.Repeat("=", 70)
	fmt.Println(rule)
	fmt.Println("📊 COMPLETE MARKET RECAP (Closing Prices)")
	fmt.Println(rule)
	fmt.Println(text)

	path, err := report.Save(ctx, text, cfg.Output.Dir, cfg.Output.RecapPrefix, snap.GeneratedAt)
	must(err)

	logger.Info(ctx, "💾 Recap saved", "path", path)
}
