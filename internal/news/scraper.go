package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"market-recap/internal/interfaces"
	"market-recap/internal/logger"
	"market-recap/internal/store"
	"market-recap/internal/types"
)

// Scraper collects market headlines from the configured news sources and
// classifies their tone.
type Scraper struct {
	cfg    *store.Config
	scorer *ToneScorer
}

var _ interfaces.HeadlineSource = (*Scraper)(nil)

func NewScraper(cfg *store.Config) *Scraper {
	return &Scraper{
		cfg:    cfg,
		scorer: NewToneScorer(),
	}
}

// TopHeadlines scrapes every configured source, capping the combined result
// at the configured maximum. A failing source is logged and skipped; an
// error comes back only when every source failed and nothing was collected.
func (s *Scraper) TopHeadlines(ctx context.Context) ([]types.Headline, error) {
	sources := s.cfg.News.Sources
	if len(sources) == 0 {
		return nil, nil
	}
	maxHeadlines := s.cfg.News.MaxHeadlines
	logger.Info(ctx, "Starting headline scraping", "sources", len(sources), "max", maxHeadlines)

	perSource := maxHeadlines / len(sources)
	if perSource < 1 {
		perSource = 1
	}

	var headlines []types.Headline
	var failures int
	for i, source := range sources {
		found, err := s.scrapeSource(ctx, source, perSource)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to scrape source", err, "source", source.Name)
			failures++
		}
		headlines = append(headlines, found...)

		// Rate limiting between sources
		if i < len(sources)-1 {
			time.Sleep(time.Duration(s.cfg.News.RateLimitMS) * time.Millisecond)
		}
	}

	if len(headlines) > maxHeadlines {
		headlines = headlines[:maxHeadlines]
	}
	if len(headlines) == 0 && failures == len(sources) {
		return nil, fmt.Errorf("all %d headline sources failed", failures)
	}

	logger.Info(ctx, "Headline scraping completed", "headlines", len(headlines))
	return headlines, nil
}

// scrapeSource collects headlines from a single source page
func (s *Scraper) scrapeSource(ctx context.Context, source store.NewsSource, maxHeadlines int) ([]types.Headline, error) {
	pageURL, err := url.Parse(source.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL %s: %w", source.URL, err)
	}

	headlines := []types.Headline{}
	seen := map[string]bool{}

	c := colly.NewCollector(
		colly.AllowedDomains(pageURL.Hostname()),
		colly.MaxDepth(1),
		colly.Async(false),
	)

	c.SetRequestTimeout(time.Duration(s.cfg.HTTP.TimeoutSeconds) * time.Second)

	// Set user agent to avoid being blocked
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	c.OnHTML(source.Selector, func(e *colly.HTMLElement) {
		if len(headlines) >= maxHeadlines {
			return
		}

		title, link, ok := headlineFromSelection(e.DOM, pageURL)
		if !ok || seen[link] {
			return
		}
		seen[link] = true

		headlines = append(headlines, types.Headline{
			Title:  title,
			URL:    link,
			Source: source.Name,
			Tone:   s.scorer.Classify(title),
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Scraping error", err, "source", source.Name, "url", r.Request.URL.String())
	})

	if err := c.Visit(source.URL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", source.URL, err)
	}

	c.Wait()

	return headlines, nil
}

// headlineFromSelection pulls the title and absolute link out of a matched
// node, descending to the first anchor when the selector matched a container
func headlineFromSelection(sel *goquery.Selection, pageURL *url.URL) (string, string, bool) {
	a := sel
	if !a.Is("a") {
		a = sel.Find("a").First()
	}
	if a.Length() == 0 {
		return "", "", false
	}

	title := strings.TrimSpace(a.Text())
	href, _ := a.Attr("href")
	if title == "" || href == "" {
		return "", "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", "", false
	}
	return title, pageURL.ResolveReference(ref).String(), true
}
