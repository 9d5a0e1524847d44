// Package extract fetches article pages and reduces them to their main text.
//
// Extraction never fails from the caller's point of view: every problem is
// reported as an Outcome, and Outcome.Content substitutes a fallback for
// anything that is not a successful extraction.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

const (
	// UserAgent is sent on page fetches; many news sites block non-browser agents.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 15 * time.Second

	maxPageBytes = 10 << 20
)

// commentSelectors match reader-comment sections that readability would
// otherwise treat as article content.
const commentSelectors = "#comments, .comments, #respond, .comment-respond, " +
	".comment-list, .commentlist, .comments-area, #disqus_thread, .fb-comments, " +
	"[id^='comment-'], [itemprop='comment']"

// Status is the kind of result an extraction produced.
type Status int

const (
	StatusSuccess Status = iota
	StatusEmpty
	StatusFetchFailed
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusEmpty:
		return "empty"
	case StatusFetchFailed:
		return "fetch_failed"
	default:
		return "failed"
	}
}

// Outcome is the result of one extraction.
type Outcome struct {
	Status Status
	// Text is set only for StatusSuccess.
	Text string
	// HTTPStatus is the page's status code when the fetch got a response.
	HTTPStatus int
	// Err is set for StatusFailed.
	Err error
}

// Content returns the extracted text, or fallback for every other outcome.
func (o Outcome) Content(fallback string) string {
	if o.Status == StatusSuccess {
		return o.Text
	}
	return fallback
}

// Extractor fetches pages with its own short-lived HTTP client per call,
// kept apart from the process-wide client so its timeout and headers stay local.
type Extractor struct {
	timeout   time.Duration
	userAgent string
	log       *zap.Logger
}

// New creates an extractor. A non-positive timeout selects DefaultTimeout.
func New(timeout time.Duration, log *zap.Logger) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{
		timeout:   timeout,
		userAgent: UserAgent,
		log:       log.Named("extract"),
	}
}

// Extract fetches rawURL and returns its main text as an Outcome.
func (e *Extractor) Extract(ctx context.Context, rawURL string) Outcome {
	outcome := e.extract(ctx, rawURL)
	if outcome.Status != StatusSuccess {
		e.log.Info("extraction fell back",
			zap.String("url", rawURL),
			zap.Stringer("status", outcome.Status),
			zap.Int("http_status", outcome.HTTPStatus),
			zap.Error(outcome.Err))
	}
	return outcome
}

func (e *Extractor) extract(ctx context.Context, rawURL string) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome{Status: StatusFailed, Err: fmt.Errorf("extraction panicked: %v", r)}
		}
	}()

	client := e.newClient()
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Outcome{Status: StatusFailed, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return Outcome{Status: StatusFailed, Err: fmt.Errorf("fetching URL: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Outcome{Status: StatusFetchFailed, HTTPStatus: resp.StatusCode}
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxPageBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return Outcome{Status: StatusFailed, HTTPStatus: resp.StatusCode, Err: fmt.Errorf("decoding charset: %w", err)}
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return Outcome{Status: StatusFailed, HTTPStatus: resp.StatusCode, Err: fmt.Errorf("parsing HTML: %w", err)}
	}
	doc.Find(commentSelectors).Remove()

	article, err := readability.FromDocument(doc.Nodes[0], resp.Request.URL)
	if err != nil {
		return Outcome{Status: StatusFailed, HTTPStatus: resp.StatusCode, Err: fmt.Errorf("extracting article: %w", err)}
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return Outcome{Status: StatusEmpty, HTTPStatus: resp.StatusCode}
	}

	return Outcome{Status: StatusSuccess, Text: text, HTTPStatus: resp.StatusCode}
}

// newClient builds a client with its own transport so no connection
// outlives the call. Redirects are returned as-is and count as a failed fetch.
func (e *Extractor) newClient() *http.Client {
	return &http.Client{
		Timeout:   e.timeout,
		Transport: http.DefaultTransport.(*http.Transport).Clone(),
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
