package fred

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"market-recap/internal/api"
	"market-recap/internal/interfaces"
	"market-recap/internal/logger"
	"market-recap/internal/store"
	"market-recap/internal/types"
)

// Client fetches rate series from the St. Louis Fed FRED API. It is the
// primary short-term rate source and the fallback 10Y yield source. An empty
// API key disables it without error: rates come back empty and the yield
// call fails so the caller can fall through.
type Client struct {
	cfg *store.Config
	key string
	api *api.Client
}

var (
	_ interfaces.YieldSource = (*Client)(nil)
	_ interfaces.RateSource  = (*Client)(nil)
)

func New(cfg *store.Config, apiKey string) *Client {
	return &Client{
		cfg: cfg,
		key: apiKey,
		api: api.NewClient(
			api.WithBaseURL(cfg.Endpoints.FRED),
			api.WithTimeout(time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second),
			api.WithLogging(true),
		),
	}
}

type observations struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// pair is the two most recent observations of one series.
type pair struct {
	current, previous         float64
	currentDate, previousDate string
}

// ShortRates fetches every configured series sequentially with a pause
// between calls. Without an API key it returns an empty map and issues no
// requests; individual series failures are logged and omitted.
func (c *Client) ShortRates(ctx context.Context) map[string]types.RateSeries {
	rates := make(map[string]types.RateSeries, len(c.cfg.Rates))
	if c.key == "" {
		logger.Warn(ctx, "FRED_API_KEY not set, skipping FRED rates")
		return rates
	}

	for i, spec := range c.cfg.Rates {
		p, err := c.latestPair(ctx, spec.Series)
		if err != nil {
			logger.Warn(ctx, "Failed to fetch FRED series, omitting",
				"series", spec.Series, "name", spec.Name, "error", err)
		} else {
			rates[spec.Name] = types.RateSeries{
				Name:      spec.Name,
				Label:     spec.Label,
				Current:   p.current,
				Previous:  p.previous,
				ChangeBps: (p.current - p.previous) * 100,
			}
			logger.Fetch(ctx, "fred", spec.Name, "current", p.current)
		}
		if i < len(c.cfg.Rates)-1 {
			time.Sleep(time.Duration(c.cfg.RateLimit.FredMS) * time.Millisecond)
		}
	}
	return rates
}

// TreasuryYield resolves the configured maturity through its FRED series.
func (c *Client) TreasuryYield(ctx context.Context) (types.YieldPoint, error) {
	series := seriesForMaturity(c.cfg.Treasury.Maturity)
	p, err := c.latestPair(ctx, series)
	if err != nil {
		return types.YieldPoint{}, err
	}
	point := types.YieldPoint{
		CurrentYield:  p.current,
		PreviousYield: p.previous,
		ChangeBps:     (p.current - p.previous) * 100,
		CurrentDate:   p.currentDate,
		PreviousDate:  p.previousDate,
		Source:        "fred",
	}
	logger.Fetch(ctx, "fred", "treasury_"+c.cfg.Treasury.Maturity,
		"current_yield", point.CurrentYield, "change_bps", point.ChangeBps)
	return point, nil
}

func (c *Client) latestPair(ctx context.Context, series string) (pair, error) {
	if c.key == "" {
		return pair{}, errors.New("FRED_API_KEY is not set")
	}

	url := fmt.Sprintf("/series/observations?series_id=%s&api_key=%s&file_type=json&limit=2&sort_order=desc", series, c.key)
	resp, err := c.api.GET(ctx, url)
	if err != nil {
		return pair{}, err
	}

	var obs observations
	if err := resp.ParseJSON(&obs); err != nil {
		return pair{}, err
	}
	if len(obs.Observations) < 2 {
		return pair{}, fmt.Errorf("series %s: got %d observations, need at least 2", series, len(obs.Observations))
	}

	// sort_order=desc puts the newest observation first. FRED publishes "."
	// for days without a posted value, which fails the parse and skips the series.
	current, err := strconv.ParseFloat(obs.Observations[0].Value, 64)
	if err != nil {
		return pair{}, fmt.Errorf("unparseable value '%s' for %s on %s: %w",
			obs.Observations[0].Value, series, obs.Observations[0].Date, err)
	}
	previous, err := strconv.ParseFloat(obs.Observations[1].Value, 64)
	if err != nil {
		return pair{}, fmt.Errorf("unparseable value '%s' for %s on %s: %w",
			obs.Observations[1].Value, series, obs.Observations[1].Date, err)
	}

	return pair{
		current:      current,
		previous:     previous,
		currentDate:  obs.Observations[0].Date,
		previousDate: obs.Observations[1].Date,
	}, nil
}

func seriesForMaturity(maturity string) string {
	switch maturity {
	case "3month":
		return "DGS3MO"
	case "2year":
		return "DGS2"
	case "5year":
		return "DGS5"
	case "7year":
		return "DGS7"
	case "30year":
		return "DGS30"
	}
	return "DGS10"
}
