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
	"market-recap/internal/llm/claude"
	"market-recap/internal/llm/llmobs"
	"market-recap/internal/llm/openai"
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

// resolveClaudeKey reads the Claude key from the environment, falling back
// to an interactive prompt. The key is optional; an empty answer means the
// recap uses rule-based analysis instead.
func resolveClaudeKey() string {
	if key := os.Getenv("CLAUDE_API_KEY"); key != "" {
		return key
	}

	fmt.Print("Enter your Claude API key (or press Enter to skip): ")
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

// initializeNarrator selects the narration provider with observability
func initializeNarrator(ctx context.Context, cfg *store.Config) interfaces.Narrator {
	switch cfg.LLM.Provider {
	case "CLAUDE":
		if key := resolveClaudeKey(); key != "" {
			logger.Info(ctx, "✅ Claude API key provided - enhanced analysis will be used")
			return llmobs.Wrap(claude.NewNarrator(cfg, key), "CLAUDE")
		}
		logger.Warn(ctx, "⚠️ Continuing without Claude analysis - using rule-based analysis")
	case "OPENAI":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return llmobs.Wrap(openai.NewNarrator(cfg, key), "OPENAI")
		}
		logger.Warn(ctx, "OPENAI_API_KEY not set - using rule-based analysis")
	default:
		logger.Warn(ctx, "No LLM provider configured - using rule-based analysis")
	}

	return llmobs.Wrap(rulebased.NewNarrator(), "RULEBASED")
}

// initializeEngine wires the closing-price sources into the report engine with observability
func initializeEngine(ctx context.Context, cfg *store.Config, avKey string, narrator interfaces.Narrator) interfaces.Engine {
	av := alphavantage.New(cfg, avKey)
	fr := fred.New(cfg, os.Getenv("FRED_API_KEY"))

	// Alpha Vantage leads for the yield and FRED leads for short rates, each
	// covering for the other when a request fails.
	src := engine.Sources{
		Quotes:   coingecko.New(cfg, types.VariantClosing),
		Yield:    av,
		YieldAlt: fr,
		Rates:    fr,
		RatesAlt: av,
	}

	if cfg.News.Enabled {
		src.Headlines = news.NewScraper(cfg)
	}

	logger.Info(ctx, "🚀 Building daily market recap", "symbols", len(cfg.Symbols))

	// Wrap with observability middleware
	return engineobs.Wrap(engine.New(cfg, types.VariantClosing, src, narrator))
}

// runTreasuryProbe performs one raw Alpha Vantage Treasury request and logs
// the response so API issues can be diagnosed without a full report run.
func runTreasuryProbe(ctx context.Context, cfg *store.Config) error {
	avKey, err := resolveAlphaVantageKey()
	if err != nil {
		return err
	}

	logger.Info(ctx, "🧪 Treasury API test mode")
	return alphavantage.New(cfg, avKey).Probe(ctx)
}
