package alphavantage

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"market-recap/internal/api"
	"market-recap/internal/interfaces"
	"market-recap/internal/logger"
	"market-recap/internal/store"
	"market-recap/internal/types"
)

// Client fetches Treasury yield curves from the Alpha Vantage API. It serves
// as the primary 10Y yield source and as the fallback short-term rate source
// when FRED is unavailable.
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
			api.WithBaseURL(cfg.Endpoints.AlphaVantage),
			api.WithTimeout(time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second),
			api.WithLogging(true),
		),
	}
}

// payload is the TREASURY_YIELD response shape. Alpha Vantage reports
// problems inside a 200 body, so the soft-failure fields must be checked
// before touching Data.
type payload struct {
	Data []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"data"`
	Note         string `json:"Note"`
	ErrorMessage string `json:"Error Message"`
	Information  string `json:"Information"`
}

// TreasuryYield returns the configured maturity's latest yield and its move
// since the previous observation.
func (c *Client) TreasuryYield(ctx context.Context) (types.YieldPoint, error) {
	point, err := c.yieldForMaturity(ctx, c.cfg.Treasury.Maturity)
	if err != nil {
		return types.YieldPoint{}, err
	}
	logger.Fetch(ctx, "alphavantage", "treasury_"+c.cfg.Treasury.Maturity,
		"current_yield", point.CurrentYield, "change_bps", point.ChangeBps)
	return point, nil
}

// ShortRates resolves the configured rate series through Treasury maturities.
// Alpha Vantage has no fed funds endpoint, so those entries are approximated
// from the 3-month bill when it resolved, with a note marking the substitution.
func (c *Client) ShortRates(ctx context.Context) map[string]types.RateSeries {
	rates := make(map[string]types.RateSeries, len(c.cfg.Rates))
	var fedFunds []store.RateSeriesSpec
	var tbill3m *types.RateSeries

	for _, spec := range c.cfg.Rates {
		if spec.Series == "FEDFUNDS" {
			fedFunds = append(fedFunds, spec)
			continue
		}
		maturity, ok := maturityForSeries(spec.Series)
		if !ok {
			logger.Warn(ctx, "No Alpha Vantage maturity for series, omitting",
				"series", spec.Series, "name", spec.Name)
			continue
		}
		point, err := c.yieldForMaturity(ctx, maturity)
		if err != nil {
			logger.Warn(ctx, "Failed to fetch rate series, omitting",
				"series", spec.Series, "name", spec.Name, "error", err)
			continue
		}
		rate := types.RateSeries{
			Name:      spec.Name,
			Label:     spec.Label,
			Current:   point.CurrentYield,
			Previous:  point.PreviousYield,
			ChangeBps: point.ChangeBps,
		}
		rates[spec.Name] = rate
		if spec.Series == "DGS3MO" {
			tbill3m = &rate
		}
		logger.Fetch(ctx, "alphavantage", spec.Name, "current", rate.Current)
	}

	for _, spec := range fedFunds {
		if tbill3m == nil {
			logger.Warn(ctx, "Cannot approximate fed funds, 3M bill unavailable", "name", spec.Name)
			continue
		}
		rates[spec.Name] = types.RateSeries{
			Name:      spec.Name,
			Label:     spec.Label,
			Current:   tbill3m.Current,
			Previous:  tbill3m.Previous,
			ChangeBps: tbill3m.ChangeBps,
			Note:      "Approximated from 3M Treasury",
		}
	}

	return rates
}

// Probe performs one diagnostic Treasury request and logs the raw response
// before parsing it. Backs the --test-treasury flag.
func (c *Client) Probe(ctx context.Context) error {
	timer := logger.StartOperation(ctx, "treasury_probe", "maturity", c.cfg.Treasury.Maturity)
	ctx = timer.GetContext()

	url := c.queryURL(c.cfg.Treasury.Maturity)
	logger.Info(ctx, "Treasury probe request",
		"url", strings.Replace(url, c.key, "***", 1), "maturity", c.cfg.Treasury.Maturity)

	resp, err := c.api.GET(ctx, url)
	if err != nil {
		err = fmt.Errorf("treasury probe request failed: %w", err)
		timer.EndWithError(err)
		return err
	}

	preview := resp.String()
	if len(preview) > 500 {
		preview = preview[:500]
	}
	logger.Info(ctx, "Treasury probe raw response", "status", resp.StatusCode, "preview", preview)

	var raw map[string]any
	if err := resp.ParseJSON(&raw); err != nil {
		timer.EndWithError(err)
		return err
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var p payload
	_ = resp.ParseJSON(&p)
	logger.Info(ctx, "Treasury probe payload", "keys", keys, "data_points", len(p.Data))

	point, err := parseYield(resp, c.cfg.Treasury.Maturity)
	if err != nil {
		timer.EndWithError(err)
		return err
	}
	logger.Info(ctx, "Treasury probe parsed",
		"current_yield", point.CurrentYield,
		"previous_yield", point.PreviousYield,
		"change_bps", point.ChangeBps,
		"current_date", point.CurrentDate)
	timer.End("current_yield", point.CurrentYield)
	return nil
}

func (c *Client) yieldForMaturity(ctx context.Context, maturity string) (types.YieldPoint, error) {
	resp, err := c.api.GET(ctx, c.queryURL(maturity))
	if err != nil {
		return types.YieldPoint{}, err
	}
	return parseYield(resp, maturity)
}

func (c *Client) queryURL(maturity string) string {
	return fmt.Sprintf("?function=TREASURY_YIELD&interval=daily&maturity=%s&apikey=%s", maturity, c.key)
}

func parseYield(resp *api.Response, maturity string) (types.YieldPoint, error) {
	var p payload
	if err := resp.ParseJSON(&p); err != nil {
		return types.YieldPoint{}, err
	}
	if p.Note != "" {
		return types.YieldPoint{}, fmt.Errorf("alpha vantage rate limit: %s", p.Note)
	}
	if p.ErrorMessage != "" {
		return types.YieldPoint{}, fmt.Errorf("alpha vantage error: %s", p.ErrorMessage)
	}
	if p.Information != "" {
		return types.YieldPoint{}, fmt.Errorf("alpha vantage notice: %s", p.Information)
	}
	if len(p.Data) < 2 {
		return types.YieldPoint{}, fmt.Errorf("treasury yield %s: got %d observations, need at least 2", maturity, len(p.Data))
	}

	current, err := strconv.ParseFloat(p.Data[0].Value, 64)
	if err != nil {
		return types.YieldPoint{}, fmt.Errorf("unparseable yield value '%s' on %s: %w", p.Data[0].Value, p.Data[0].Date, err)
	}
	previous, err := strconv.ParseFloat(p.Data[1].Value, 64)
	if err != nil {
		return types.YieldPoint{}, fmt.Errorf("unparseable yield value '%s' on %s: %w", p.Data[1].Value, p.Data[1].Date, err)
	}

	return types.YieldPoint{
		CurrentYield:  current,
		PreviousYield: previous,
		ChangeBps:     (current - previous) * 100,
		CurrentDate:   p.Data[0].Date,
		PreviousDate:  p.Data[1].Date,
		Source:        "alphavantage",
	}, nil
}

func maturityForSeries(series string) (string, bool) {
	switch series {
	case "DGS3MO":
		return "3month", true
	case "DGS2":
		return "2year", true
	case "DGS5":
		return "5year", true
	case "DGS7":
		return "7year", true
	case "DGS10":
		return "10year", true
	case "DGS30":
		return "30year", true
	}
	return "", false
}
