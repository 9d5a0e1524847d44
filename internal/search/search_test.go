package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pep299/smart-news-digest/internal/apperr"
)

func newsBody(n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"position":%d,"title":"Story %d","link":"https://news.example/%d"}`, i+1, i+1, i+1)
	}
	return `{"search_metadata":{"status":"Success"},"news_results":[` + strings.Join(items, ",") + `]}`
}

func newTestClient(t *testing.T, handler http.HandlerFunc, apiKey string) (*Client, *int32) {
	t.Helper()

	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return NewClient(server.Client(), server.URL+"/search", apiKey, zap.NewNop()), &hits
}

func TestNews_SendsProviderQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "google_news", q.Get("engine"))
		assert.Equal(t, "serp-key", q.Get("api_key"))
		assert.Equal(t, "gh", q.Get("gl"))
		assert.Equal(t, "en", q.Get("hl"))
		assert.Equal(t, "elections", q.Get("q"))
		fmt.Fprint(w, newsBody(1))
	}, "serp-key")

	items, err := client.News(context.Background(), Query{Country: "gh", Keyword: "elections", Language: "en"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestNews_TruncatesToFiftyInOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, newsBody(75))
	}, "serp-key")

	items, err := client.News(context.Background(), Query{Country: "gh", Keyword: "elections", Language: "en"})
	require.NoError(t, err)
	require.Len(t, items, MaxResults)

	for i, raw := range items {
		var item struct {
			Position int `json:"position"`
		}
		require.NoError(t, json.Unmarshal(raw, &item))
		assert.Equal(t, i+1, item.Position)
	}
}

func TestNews_FewerThanLimit(t *testing.T) {
	for _, n := range []int{0, 3, 50} {
		t.Run(fmt.Sprintf("%d items", n), func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, newsBody(n))
			}, "serp-key")

			items, err := client.News(context.Background(), Query{Keyword: "x"})
			require.NoError(t, err)
			assert.Len(t, items, n)
		})
	}
}

func TestNews_ItemsAreVerbatim(t *testing.T) {
	item := `{"title":"A & B","source":{"name":"Graphic","icon":"https://x/y.png"},"extra":[1,2,3]}`
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"news_results":[%s]}`, item)
	}, "serp-key")

	items, err := client.News(context.Background(), Query{Keyword: "x"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item, string(items[0]))
}

func TestNews_MissingKeyMakesNoCall(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, newsBody(1))
	}, "")

	_, err := client.News(context.Background(), Query{Keyword: "x"})
	require.Error(t, err)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
	assert.Equal(t, "Missing or Invalid SERPAPI Key", appErr.Detail)
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestNews_UpstreamFailurePassesThrough(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":"Your account has run out of searches."}`)
	}, "serp-key")

	_, err := client.News(context.Background(), Query{Keyword: "x"})

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindUpstream, appErr.Kind)
	assert.Equal(t, http.StatusTooManyRequests, appErr.Status)
	assert.Equal(t, `Failed to fetch News:{"error":"Your account has run out of searches."}`, appErr.Detail)
}

func TestNews_MalformedSuccessIsInternal(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"missing results", `{"search_metadata":{}}`},
		{"results not a list", `{"news_results":{"title":"x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}, "serp-key")

			_, err := client.News(context.Background(), Query{Keyword: "x"})

			var appErr *apperr.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, http.StatusInternalServerError, appErr.Status)
		})
	}
}

func TestNews_UnreachableProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewClient(http.DefaultClient, baseURL, "serp-key", zap.NewNop())
	_, err := client.News(context.Background(), Query{Keyword: "x"})

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindInternal, appErr.Kind)
}
