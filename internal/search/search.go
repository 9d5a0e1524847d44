// Package search proxies news queries to SerpAPI's google_news engine.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/pep299/smart-news-digest/internal/apperr"
)

const (
	// Engine is the SerpAPI engine queried for news.
	Engine = "google_news"
	// MaxResults caps how many provider items are returned to the caller.
	MaxResults = 50

	resultsField = "news_results"
)

// Query is a news search.
type Query struct {
	Country  string
	Keyword  string
	Language string
}

// Client talks to SerpAPI over a shared HTTP client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *zap.Logger
}

// NewClient creates a search client. httpClient is shared and owned by the caller.
func NewClient(httpClient *http.Client, baseURL, apiKey string, log *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		log:        log.Named("search"),
	}
}

// News runs q against the provider and returns at most MaxResults items,
// in provider order, byte-for-byte as the provider sent them.
func (c *Client) News(ctx context.Context, q Query) ([]json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, apperr.Unauthorized("Missing or Invalid SERPAPI Key")
	}

	reqURL, err := c.buildURL(q)
	if err != nil {
		return nil, apperr.Internal("Invalid news provider URL", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperr.Internal("Failed to build news request", fmt.Errorf("creating request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("news provider unreachable", zap.String("keyword", q.Keyword), zap.Error(err))
		return nil, apperr.Internal("Failed to reach news provider", fmt.Errorf("sending request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Internal("Failed to read news provider response", fmt.Errorf("reading response body: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("news provider returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("keyword", q.Keyword))
		return nil, apperr.Upstream(resp.StatusCode, "Failed to fetch News:"+string(body))
	}

	return firstResults(body, MaxResults)
}

func (c *Client) buildURL(q Query) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	params := u.Query()
	params.Set("engine", Engine)
	params.Set("api_key", c.apiKey)
	params.Set("gl", q.Country)
	params.Set("hl", q.Language)
	params.Set("q", q.Keyword)
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// firstResults slices the provider's result list without decoding the items.
func firstResults(body []byte, limit int) ([]json.RawMessage, error) {
	if !gjson.ValidBytes(body) {
		return nil, apperr.Internal("News provider returned invalid JSON", nil)
	}

	list := gjson.GetBytes(body, resultsField)
	if !list.IsArray() {
		return nil, apperr.Internal("News provider response has no "+resultsField, nil)
	}

	items := make([]json.RawMessage, 0, limit)
	list.ForEach(func(_, item gjson.Result) bool {
		items = append(items, json.RawMessage(item.Raw))
		return len(items) < limit
	})

	return items, nil
}
