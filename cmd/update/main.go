package main

import (
	"context"
	"fmt"
	"log"
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

	// The Treasury section is the one piece that cannot be skipped, so the
	// key is resolved before any network call is made.
	avKey, err := resolveAlphaVantageKey()
	must(err)

	eng := initializeEngine(ctx, cfg, avKey)

	snap := eng.BuildSnapshot(ctx)
	text := report.Render(snap)

	rule := strings.Repeat("=", 60)
	fmt.Println(rule)
	fmt.Println("📊 COMPLETE MARKET REPORT")
	fmt.Println(rule)
	fmt.Println(text)

	path, err := report.Save(ctx, text, cfg.Output.Dir, cfg.Output.UpdatePrefix, snap.GeneratedAt)
	must(err)

	logger.Info(ctx, "💾 Update saved", "path", path)
}
