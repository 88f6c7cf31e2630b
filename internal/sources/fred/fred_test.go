package fred

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"market-recap/internal/logger"
	"market-recap/internal/store"
)

func TestMain(m *testing.M) {
	_ = logger.InitWithConfig(logger.LogConfig{Level: "ERROR", Format: "text"})
	os.Exit(m.Run())
}

func testConfig(endpoint string) *store.Config {
	cfg := &store.Config{}
	cfg.Endpoints.FRED = endpoint
	cfg.HTTP.TimeoutSeconds = 5
	cfg.Treasury.Maturity = "10year"
	cfg.Rates = []store.RateSeriesSpec{
		{Name: "fed_funds_rate", Label: "Fed Funds Rate", Series: "FEDFUNDS"},
		{Name: "3_month_tbill", Label: "3 Month Tbill", Series: "DGS3MO"},
	}
	return cfg
}

// observationServer answers per series with the newest observation first,
// counting requests.
func observationServer(t *testing.T, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		q := r.URL.Query()
		if q.Get("api_key") != "test-key" {
			t.Errorf("Expected api_key test-key, got %q", q.Get("api_key"))
		}
		if q.Get("file_type") != "json" || q.Get("limit") != "2" || q.Get("sort_order") != "desc" {
			t.Errorf("Expected file_type=json limit=2 sort_order=desc, got %s", r.URL.RawQuery)
		}

		switch q.Get("series_id") {
		case "FEDFUNDS":
			fmt.Fprint(w, `{"observations":[{"date":"2025-08-01","value":"4.33"},{"date":"2025-07-01","value":"4.33"}]}`)
		case "DGS3MO":
			fmt.Fprint(w, `{"observations":[{"date":"2025-08-11","value":"4.41"},{"date":"2025-08-08","value":"4.43"}]}`)
		case "DGS10":
			fmt.Fprint(w, `{"observations":[{"date":"2025-08-11","value":"4.25"},{"date":"2025-08-08","value":"4.20"}]}`)
		case "UNPOSTED":
			fmt.Fprint(w, `{"observations":[{"date":"2025-08-11","value":"."},{"date":"2025-08-08","value":"4.20"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestShortRates(t *testing.T) {
	var requests atomic.Int32
	srv := observationServer(t, &requests)

	rates := New(testConfig(srv.URL), "test-key").ShortRates(context.Background())

	if len(rates) != 2 {
		t.Fatalf("Expected 2 rate series, got %d", len(rates))
	}

	ff := rates["fed_funds_rate"]
	if ff.Current != 4.33 || ff.ChangeBps != 0 {
		t.Errorf("Expected flat fed funds at 4.33, got %+v", ff)
	}

	tbill := rates["3_month_tbill"]
	if math.Abs(tbill.ChangeBps+2) > 1e-9 {
		t.Errorf("Expected 3M bill change of -2bps, got %f", tbill.ChangeBps)
	}

	if requests.Load() != 2 {
		t.Errorf("Expected one request per series, got %d", requests.Load())
	}
}

func TestShortRatesWithoutKey(t *testing.T) {
	var requests atomic.Int32
	srv := observationServer(t, &requests)

	rates := New(testConfig(srv.URL), "").ShortRates(context.Background())

	if len(rates) != 0 {
		t.Errorf("Expected no rates without an API key, got %v", rates)
	}

	// No key means no requests at all
	if requests.Load() != 0 {
		t.Errorf("Expected 0 requests without an API key, got %d", requests.Load())
	}
}

func TestShortRatesSkipsUnpostedValues(t *testing.T) {
	var requests atomic.Int32
	srv := observationServer(t, &requests)

	cfg := testConfig(srv.URL)
	cfg.Rates = []store.RateSeriesSpec{
		{Name: "broken_series", Label: "Broken", Series: "UNPOSTED"},
		{Name: "fed_funds_rate", Label: "Fed Funds Rate", Series: "FEDFUNDS"},
	}

	rates := New(cfg, "test-key").ShortRates(context.Background())

	if _, ok := rates["broken_series"]; ok {
		t.Error("Expected series with unposted value to be omitted")
	}

	if _, ok := rates["fed_funds_rate"]; !ok {
		t.Error("Expected remaining series to survive one bad series")
	}
}

func TestTreasuryYield(t *testing.T) {
	var requests atomic.Int32
	srv := observationServer(t, &requests)

	point, err := New(testConfig(srv.URL), "test-key").TreasuryYield(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if point.CurrentYield != 4.25 {
		t.Errorf("Expected current yield 4.25, got %f", point.CurrentYield)
	}

	if math.Abs(point.ChangeBps-5) > 1e-9 {
		t.Errorf("Expected change of 5bps, got %f", point.ChangeBps)
	}

	if point.Source != "fred" {
		t.Errorf("Expected source fred, got %s", point.Source)
	}
}

func TestTreasuryYieldWithoutKey(t *testing.T) {
	var requests atomic.Int32
	srv := observationServer(t, &requests)

	_, err := New(testConfig(srv.URL), "").TreasuryYield(context.Background())
	if err == nil {
		t.Fatal("Expected error without an API key")
	}

	if !strings.Contains(err.Error(), "FRED_API_KEY") {
		t.Errorf("Expected missing key error, got %v", err)
	}

	if requests.Load() != 0 {
		t.Errorf("Expected 0 requests without an API key, got %d", requests.Load())
	}
}

func TestSeriesForMaturity(t *testing.T) {
	if s := seriesForMaturity("3month"); s != "DGS3MO" {
		t.Errorf("Expected DGS3MO, got %s", s)
	}

	if s := seriesForMaturity("10year"); s != "DGS10" {
		t.Errorf("Expected DGS10, got %s", s)
	}

	// Unknown maturities fall back to the 10 year series
	if s := seriesForMaturity("fortnight"); s != "DGS10" {
		t.Errorf("Expected DGS10 fallback, got %s", s)
	}
}
