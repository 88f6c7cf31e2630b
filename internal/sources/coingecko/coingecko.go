package coingecko

import (
	"context"
	"fmt"
	"time"

	"market-recap/internal/api"
	"market-recap/internal/interfaces"
	"market-recap/internal/logger"
	"market-recap/internal/store"
	"market-recap/internal/types"
)

// Client fetches cryptocurrency quotes from the CoinGecko public API.
// The update variant reads live prices with 24h changes; the closing variant
// reads the last two daily closes and computes the day-over-day change.
type Client struct {
	cfg     *store.Config
	variant types.ReportVariant
	delay   time.Duration
	api     *api.Client
}

var _ interfaces.QuoteSource = (*Client)(nil)

func New(cfg *store.Config, variant types.ReportVariant) *Client {
	delay := time.Duration(cfg.RateLimit.LiveMS) * time.Millisecond
	if variant == types.VariantClosing {
		delay = time.Duration(cfg.RateLimit.ClosingMS) * time.Millisecond
	}
	return &Client{
		cfg:     cfg,
		variant: variant,
		delay:   delay,
		api: api.NewClient(
			api.WithBaseURL(cfg.Endpoints.CoinGecko),
			api.WithTimeout(time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second),
			api.WithLogging(true),
		),
	}
}

// Quotes fetches every configured symbol sequentially, pausing between calls
// to respect the public API rate limit. A failed symbol is logged and omitted;
// the report renders whatever subset succeeded.
func (c *Client) Quotes(ctx context.Context) map[string]types.PriceQuote {
	quotes := make(map[string]types.PriceQuote, len(c.cfg.Symbols))
	for i, sym := range c.cfg.Symbols {
		var (
			quote types.PriceQuote
			err   error
		)
		if c.variant == types.VariantClosing {
			quote, err = c.fetchClosing(ctx, sym)
		} else {
			quote, err = c.fetchLive(ctx, sym)
		}
		if err != nil {
			logger.Warn(ctx, "Failed to fetch quote, omitting symbol",
				"symbol", sym.Symbol, "coin_id", sym.ID, "error", err)
		} else {
			quotes[sym.Symbol] = quote
			logger.Fetch(ctx, "coingecko", sym.Symbol,
				"price_usd", quote.PriceUSD, "change_pct", quote.ChangePct)
		}
		if i < len(c.cfg.Symbols)-1 {
			time.Sleep(c.delay)
		}
	}
	return quotes
}

type coinDetail struct {
	MarketData struct {
		CurrentPrice struct {
			USD float64 `json:"usd"`
		} `json:"current_price"`
		PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
		MarketCap                struct {
			USD float64 `json:"usd"`
		} `json:"market_cap"`
		TotalVolume struct {
			USD float64 `json:"usd"`
		} `json:"total_volume"`
	} `json:"market_data"`
}

type marketChart struct {
	Prices [][]float64 `json:"prices"`
}

func (c *Client) fetchLive(ctx context.Context, sym store.SymbolMapping) (types.PriceQuote, error) {
	detail, err := c.fetchDetail(ctx, sym.ID)
	if err != nil {
		return types.PriceQuote{}, err
	}
	return types.PriceQuote{
		Symbol:    sym.Symbol,
		PriceUSD:  detail.MarketData.CurrentPrice.USD,
		ChangePct: detail.MarketData.PriceChangePercentage24h,
		MarketCap: detail.MarketData.MarketCap.USD,
		Volume24h: detail.MarketData.TotalVolume.USD,
	}, nil
}

func (c *Client) fetchClosing(ctx context.Context, sym store.SymbolMapping) (types.PriceQuote, error) {
	url := fmt.Sprintf("/coins/%s/market_chart?vs_currency=usd&days=2&interval=daily", sym.ID)
	resp, err := c.api.GET(ctx, url, api.BrowserHeaders())
	if err != nil {
		return types.PriceQuote{}, err
	}
	var chart marketChart
	if err := resp.ParseJSON(&chart); err != nil {
		return types.PriceQuote{}, err
	}
	if len(chart.Prices) < 2 {
		return types.PriceQuote{}, fmt.Errorf("market chart for %s has %d daily points, need at least 2", sym.ID, len(chart.Prices))
	}

	// Each point is [timestamp_ms, price]
	last := chart.Prices[len(chart.Prices)-1]
	prev := chart.Prices[len(chart.Prices)-2]
	if len(last) < 2 || len(prev) < 2 {
		return types.PriceQuote{}, fmt.Errorf("malformed price points for %s", sym.ID)
	}
	closing, previous := last[1], prev[1]
	if previous == 0 {
		return types.PriceQuote{}, fmt.Errorf("previous close for %s is zero", sym.ID)
	}

	quote := types.PriceQuote{
		Symbol:    sym.Symbol,
		PriceUSD:  closing,
		ChangePct: (closing - previous) / previous * 100,
	}

	// Market cap and volume come from the coin detail endpoint; the quote
	// survives without them if that call fails
	if detail, err := c.fetchDetail(ctx, sym.ID); err == nil {
		quote.MarketCap = detail.MarketData.MarketCap.USD
		quote.Volume24h = detail.MarketData.TotalVolume.USD
	} else {
		logger.Debug(ctx, "Coin detail fetch failed, keeping bare closing quote",
			"coin_id", sym.ID, "error", err)
	}

	return quote, nil
}

func (c *Client) fetchDetail(ctx context.Context, coinID string) (*coinDetail, error) {
	resp, err := c.api.GET(ctx, "/coins/"+coinID, api.BrowserHeaders())
	if err != nil {
		return nil, err
	}
	var detail coinDetail
	if err := resp.ParseJSON(&detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
