package openai

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

type Narrator struct {
	cfg      *store.Config
	key      string
	endpoint string
	api      *api.Client
}

var _ interfaces.Narrator = (*Narrator)(nil)

func NewNarrator(cfg *store.Config, apiKey string) *Narrator {
	endpoint := "https://api.openai.com/v1/chat/completions"
	// Proxies can swap the endpoint via OPENAI_API_ENDPOINT
	if ep := os.Getenv("OPENAI_API_ENDPOINT"); ep != "" {
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

func (n *Narrator) Narrate(ctx context.Context, snap *types.MarketSnapshot) (string, error) {
	ctx, span := logger.StartSpan(ctx, "openai-api-call")
	defer span.End()

	if n.key == "" {
		return "", errors.New("OPENAI_API_KEY missing")
	}

	body := map[string]any{
		"model":      n.cfg.LLM.Model,
		"messages":   []map[string]string{{"role": "user", "content": llm.MarketPrompt(snap)}},
		"max_tokens": n.cfg.LLM.MaxTokens,
	}

	resp, err := n.api.POST(ctx, n.endpoint, body,
		map[string]string{"Authorization": "Bearer " + n.key})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return "", err
	}
	if len(r.Choices) == 0 {
		return "", errors.New("no choices")
	}

	text := strings.TrimSpace(r.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("openai returned empty analysis text")
	}
	return text, nil
}
