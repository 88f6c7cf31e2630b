package claude

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"market-recap/internal/api"
	"market-recap/internal/interfaces"
	"market-recap/internal/llm"
	"market-recap/internal/logger"
	"market-recap/internal/store"
	"market-recap/internal/types"
)

// Narrator generates the market correlation analysis using the Anthropic
// Claude messages API.
type Narrator struct {
	cfg      *store.Config
	key      string
	endpoint string
	api      *api.Client
}

var _ interfaces.Narrator = (*Narrator)(nil)

// NewNarrator creates a Claude-backed narrator. The API key is resolved by
// the caller, which owns the env-or-prompt flow.
func NewNarrator(cfg *store.Config, apiKey string) *Narrator {
	// default messages endpoint (public Anthropic)
	endpoint := "https://api.anthropic.com/v1/messages"
	// If you use a proxy/bedrock/vertex, set endpoint via CLAUDE_API_ENDPOINT env var
	if ep := os.Getenv("CLAUDE_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &Narrator{
		cfg:      cfg,
		key:      apiKey,
		endpoint: endpoint,
		api: api.NewClient(
			api.WithTimeout(time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second),
			api.WithLogging(true),
		),
	}
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Narrate sends the market prompt to Claude and returns the analysis text.
// Any failure is returned to the caller, which falls back to the rule-based
// narrator rather than shipping a report without analysis.
func (n *Narrator) Narrate(ctx context.Context, snap *types.MarketSnapshot) (string, error) {
	ctx, span := logger.StartSpan(ctx, "claude-api-call")
	defer span.End()

	if n.key == "" {
		return "", errors.New("CLAUDE_API_KEY missing")
	}

	body := messagesRequest{
		Model:     n.cfg.LLM.Model,
		MaxTokens: n.cfg.LLM.MaxTokens,
		Messages: []message{
			{Role: "user", Content: llm.MarketPrompt(snap)},
		},
	}
	headers := map[string]string{
		"x-api-key":         n.key,
		"anthropic-version": "2023-06-01",
	}

	resp, err := n.api.POST(ctx, n.endpoint, body, headers)
	if err != nil {
		return "", fmt.Errorf("claude request failed: %w", err)
	}

	var parsed messagesResponse
	if err := resp.ParseJSON(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Content) == 0 {
		return "", errors.New("claude response has no content blocks")
	}

	text := strings.TrimSpace(parsed.Content[0].Text)
	if text == "" {
		return "", errors.New("claude returned empty analysis text")
	}
	return text, nil
}
