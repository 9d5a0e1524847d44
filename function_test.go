package digest

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmartNewsDigest(t *testing.T) {
	resetFunction(t)
	t.Setenv("LOG_LEVEL", "error")

	t.Run("home", func(t *testing.T) {
		w := httptest.NewRecorder()
		SmartNewsDigest(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"content":"Welcome to Smart News Digest"}`, w.Body.String())
	})

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		SmartNewsDigest(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","version":"dev"}`, w.Body.String())
	})

	t.Run("short article", func(t *testing.T) {
		body := `{"news_article":"too short to summarize","title":"Headline"}`
		req := httptest.NewRequest(http.MethodPost, "/get_article_summary", strings.NewReader(body))
		w := httptest.NewRecorder()
		SmartNewsDigest(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"summary":"Headline"}`, w.Body.String())
	})

	t.Run("unknown route", func(t *testing.T) {
		w := httptest.NewRecorder()
		SmartNewsDigest(w, httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func resetFunction(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	handler, initErr = nil, nil
	t.Cleanup(func() {
		initOnce = sync.Once{}
		handler, initErr = nil, nil
	})
}

func TestSmartNewsDigest_InitFailureIsLogged(t *testing.T) {
	resetFunction(t)
	t.Setenv("LOG_FORMAT", "bogus")

	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		SmartNewsDigest(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"detail":"Internal Server Error"}`, w.Body.String())
	}

	assert.Equal(t, 1, strings.Count(logs.String(), "initializing SmartNewsDigest:"))
	assert.Contains(t, logs.String(), "LOG_FORMAT")
}
