package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"market-recap/internal/logger"
	"market-recap/internal/store"
	"market-recap/internal/types"
)

func TestMain(m *testing.M) {
	_ = logger.InitWithConfig(logger.LogConfig{Level: "ERROR", Format: "text"})
	os.Exit(m.Run())
}

func testConfig() *store.Config {
	cfg := &store.Config{}
	cfg.HTTP.TimeoutSeconds = 5
	cfg.LLM.Model = "gpt-4o-mini"
	cfg.LLM.MaxTokens = 300
	return cfg
}

func testSnapshot() *types.MarketSnapshot {
	return &types.MarketSnapshot{
		Quotes: []types.PriceQuote{{Symbol: "ETH", PriceUSD: 4421.87, ChangePct: -1.2}},
	}
}

func TestNarrate(t *testing.T) {
	var auth, model string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			MaxTokens int `json:"max_tokens"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Expected decodable request body, got %v", err)
		}
		model = body.Model

		if len(body.Messages) != 1 || body.Messages[0].Role != "user" {
			t.Errorf("Expected a single user message, got %v", body.Messages)
		}
		if body.MaxTokens != 300 {
			t.Errorf("Expected max_tokens 300, got %d", body.MaxTokens)
		}

		fmt.Fprint(w, `{"choices":[{"message":{"content":" Risk appetite cooled. "}}]}`)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("OPENAI_API_ENDPOINT", srv.URL)

	got, err := NewNarrator(testConfig(), "test-key").Narrate(context.Background(), testSnapshot())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got != "Risk appetite cooled." {
		t.Errorf("Expected trimmed analysis text, got %q", got)
	}

	if auth != "Bearer test-key" {
		t.Errorf("Expected bearer token header, got %q", auth)
	}

	if model != "gpt-4o-mini" {
		t.Errorf("Expected configured model, got %q", model)
	}
}

func TestNarrateWithoutKey(t *testing.T) {
	_, err := NewNarrator(testConfig(), "").Narrate(context.Background(), testSnapshot())
	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("Expected missing key error, got %v", err)
	}
}

func TestNarrateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("OPENAI_API_ENDPOINT", srv.URL)

	_, err := NewNarrator(testConfig(), "test-key").Narrate(context.Background(), testSnapshot())
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Errorf("Expected no choices error, got %v", err)
	}
}
