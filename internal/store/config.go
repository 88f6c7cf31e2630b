package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type SymbolMapping struct {
	Symbol string `yaml:"symbol"`
	ID     string `yaml:"id"`
}

type RateSeriesSpec struct {
	Name   string `yaml:"name"`
	Label  string `yaml:"label"`
	Series string `yaml:"series"`
}

// NewsSource describes one scrapeable headline page. Selector must match
// anchor elements whose text is the headline and whose href is the link.
type NewsSource struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Selector string `yaml:"selector"`
}

type Config struct {
	Symbols  []SymbolMapping `yaml:"symbols"`
	Treasury struct {
		Maturity string `yaml:"maturity"`
	} `yaml:"treasury"`
	Rates     []RateSeriesSpec `yaml:"rates"`
	Endpoints struct {
		CoinGecko    string `yaml:"coingecko"`
		AlphaVantage string `yaml:"alphavantage"`
		FRED         string `yaml:"fred"`
	} `yaml:"endpoints"`
	HTTP struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"http"`
	RateLimit struct {
		LiveMS    int `yaml:"live_ms"`
		ClosingMS int `yaml:"closing_ms"`
		FredMS    int `yaml:"fred_ms"`
	} `yaml:"rate_limit"`
	LLM struct {
		Provider  string `yaml:"provider"`
		Model     string `yaml:"model"`
		MaxTokens int    `yaml:"max_tokens"`
	} `yaml:"llm"`
	News struct {
		Enabled      bool         `yaml:"enabled"`
		MaxHeadlines int          `yaml:"max_headlines"`
		RateLimitMS  int          `yaml:"rate_limit_ms"`
		Sources      []NewsSource `yaml:"sources"`
	} `yaml:"news"`
	Output struct {
		Dir          string `yaml:"dir"`
		UpdatePrefix string `yaml:"update_prefix"`
		RecapPrefix  string `yaml:"recap_prefix"`
	} `yaml:"output"`
}

func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return errors.New("symbols cannot be empty")
	}
	for _, s := range c.Symbols {
		if s.Symbol == "" || s.ID == "" {
			return fmt.Errorf("invalid symbol entry '%s': symbol and id are required", s.Symbol)
		}
	}
	switch c.Treasury.Maturity {
	case "3month", "2year", "5year", "7year", "10year", "30year":
	default:
		return fmt.Errorf("invalid treasury.maturity '%s': must be one of '3month', '2year', '5year', '7year', '10year', '30year'", c.Treasury.Maturity)
	}
	for _, r := range c.Rates {
		if r.Name == "" || r.Series == "" {
			return fmt.Errorf("invalid rate entry '%s': name and series are required", r.Name)
		}
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be positive, got %d", c.HTTP.TimeoutSeconds)
	}
	if c.News.Enabled && len(c.News.Sources) == 0 {
		return errors.New("news.sources cannot be empty when news is enabled")
	}
	if c.Output.UpdatePrefix == "" || c.Output.RecapPrefix == "" {
		return errors.New("output prefixes cannot be empty")
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		// Defaults cover every field; a config file only overrides them
		if os.IsNotExist(err) {
			c := &Config{}
			c.applyDefaults()
			return c, nil
		}
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func (c *Config) applyDefaults() {
	if len(c.Symbols) == 0 {
		c.Symbols = []SymbolMapping{
			{Symbol: "BTC", ID: "bitcoin"},
			{Symbol: "ETH", ID: "ethereum"},
			{Symbol: "XRP", ID: "ripple"},
		}
	}
	if c.Treasury.Maturity == "" {
		c.Treasury.Maturity = "10year"
	}
	if len(c.Rates) == 0 {
		c.Rates = []RateSeriesSpec{
			{Name: "fed_funds_rate", Label: "Fed Funds Rate", Series: "FEDFUNDS"},
			{Name: "3_month_tbill", Label: "3 Month Tbill", Series: "DGS3MO"},
			{Name: "2_year_treasury", Label: "2 Year Treasury", Series: "DGS2"},
		}
	}
	for i := range c.Rates {
		if c.Rates[i].Label == "" {
			c.Rates[i].Label = c.Rates[i].Name
		}
	}
	if c.Endpoints.CoinGecko == "" {
		c.Endpoints.CoinGecko = "https://api.coingecko.com/api/v3"
	}
	if c.Endpoints.AlphaVantage == "" {
		c.Endpoints.AlphaVantage = "https://www.alphavantage.co/query"
	}
	if c.Endpoints.FRED == "" {
		c.Endpoints.FRED = "https://api.stlouisfed.org/fred"
	}
	if c.HTTP.TimeoutSeconds == 0 {
		c.HTTP.TimeoutSeconds = 30
	}
	if c.RateLimit.LiveMS == 0 {
		c.RateLimit.LiveMS = 500
	}
	if c.RateLimit.ClosingMS == 0 {
		c.RateLimit.ClosingMS = 2000
	}
	if c.RateLimit.FredMS == 0 {
		c.RateLimit.FredMS = 500
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "CLAUDE"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "claude-3-5-sonnet-20241022"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 300
	}
	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 5
	}
	if c.News.RateLimitMS == 0 {
		c.News.RateLimitMS = 1000
	}
	if len(c.News.Sources) == 0 {
		c.News.Sources = []NewsSource{
			{Name: "CoinDesk", URL: "https://www.coindesk.com/markets/", Selector: "a.card-title-link"},
			{Name: "Cointelegraph", URL: "https://cointelegraph.com/tags/markets", Selector: "a.post-card-inline__title-link"},
		}
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.Output.UpdatePrefix == "" {
		c.Output.UpdatePrefix = "crypto_market_report"
	}
	if c.Output.RecapPrefix == "" {
		c.Output.RecapPrefix = "market_recap_closing"
	}
}
