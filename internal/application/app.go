package application

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pep299/smart-news-digest/internal/config"
	"github.com/pep299/smart-news-digest/internal/extract"
	"github.com/pep299/smart-news-digest/internal/gemini"
	"github.com/pep299/smart-news-digest/internal/search"
	"github.com/pep299/smart-news-digest/internal/transport/handler"
)

// Application represents the application with all business logic components
type Application struct {
	Config         *config.Config
	Version        string
	Log            *zap.Logger
	NewsHandler    *handler.News
	ArticleHandler *handler.Article
	SummaryHandler *handler.Summary

	httpClient *http.Client
}

// New creates a new application instance with all dependencies.
// The returned Application owns a pooled HTTP client; call Close when done.
func New(cfg *config.Config, log *zap.Logger, version string) *Application {
	// Shared outbound client, released in Close
	transport := http.DefaultTransport.(*http.Transport).Clone()
	httpClient := &http.Client{
		Timeout:   cfg.HTTPClientTimeout,
		Transport: transport,
	}

	// Services
	searchClient := search.NewClient(httpClient, cfg.SerpAPIBaseURL, cfg.SerpAPIKey, log)
	extractor := extract.New(cfg.ExtractTimeout, log)
	generator := gemini.NewSDKGenerator(cfg.GoogleAPIKey, cfg.GeminiModel, cfg.GeminiEndpoint)
	summarizer := gemini.NewSummarizer(cfg.GoogleAPIKey, generator, log)

	// Handlers (HTTP layer)
	return &Application{
		Config:         cfg,
		Version:        version,
		Log:            log,
		NewsHandler:    handler.NewNews(searchClient, log.Named("news")),
		ArticleHandler: handler.NewArticle(extractor, log.Named("article")),
		SummaryHandler: handler.NewSummary(summarizer, log.Named("summary")),
		httpClient:     httpClient,
	}
}

// Close releases the shared client's idle connections
func (a *Application) Close() error {
	if a.httpClient != nil {
		a.httpClient.CloseIdleConnections()
	}
	return nil
}
