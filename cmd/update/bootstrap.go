package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"market-recap/internal/engine"
	"market-recap/internal/engine/engineobs"
	"market-recap/internal/interfaces"
	"market-recap/internal/llm/llmobs"
	"market-recap/internal/llm/rulebased"
	"market-recap/internal/logger"
	"market-recap/internal/news"
	"market-recap/internal/sources/alphavantage"
	"market-recap/internal/sources/coingecko"
	"market-recap/internal/sources/fred"
	"market-recap/internal/store"
	"market-recap/internal/types"

	"github.com/joho/godotenv"
)

// initializeSystem loads environment variables and initializes the logger
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// resolveAlphaVantageKey reads the Alpha Vantage key from the environment,
// falling back to an interactive prompt. An empty key is an error because
// the Treasury section cannot be built without one.
func resolveAlphaVantageKey() (string, error) {
	if key := os.Getenv("ALPHA_VANTAGE_API_KEY"); key != "" {
		return key, nil
	}

	fmt.Print("Please enter your Alpha Vantage API key: ")
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	if key := strings.TrimSpace(line); key != "" {
		return key, nil
	}

	return "", errors.New("Alpha Vantage API key is required to fetch Treasury data")
}

// initializeEngine wires the live market data sources into the report engine with observability
func initializeEngine(ctx context.Context, cfg *store.Config, avKey string) interfaces.Engine {
	src := engine.Sources{
		Quotes: coingecko.New(cfg, types.VariantUpdate),
		Yield:  alphavantage.New(cfg, avKey),
		Rates:  fred.New(cfg, os.Getenv("FRED_API_KEY")),
	}

	if cfg.News.Enabled {
		src.Headlines = news.NewScraper(cfg)
	}

	// Intraday updates always use the rule-based analyzer; LLM narration is
	// reserved for the closing recap.
	narrator := llmobs.Wrap(rulebased.NewNarrator(), "RULEBASED")

	logger.Info(ctx, "🚀 Building intraday market update", "symbols", len(cfg.Symbols))

	// Wrap with observability middleware
	return engineobs.Wrap(engine.New(cfg, types.VariantUpdate, src, narrator))
}
