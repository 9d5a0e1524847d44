// Package digest is the Cloud Functions entry point. Deployed with
// --entry-point=SmartNewsDigest it serves the same routes as cmd/server.
package digest

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/pep299/smart-news-digest/internal/application"
	"github.com/pep299/smart-news-digest/internal/config"
	"github.com/pep299/smart-news-digest/internal/logger"
	"github.com/pep299/smart-news-digest/internal/transport/response"
	"github.com/pep299/smart-news-digest/internal/transport/server"
)

// FunctionName is the registered entry point.
const FunctionName = "SmartNewsDigest"

// Version is set at build time.
var Version = "dev"

var (
	initOnce sync.Once
	handler  http.Handler
	initErr  error
)

func init() {
	functions.HTTP(FunctionName, SmartNewsDigest)
}

// SmartNewsDigest builds the application on the first request of an instance
// and reuses it for the instance's lifetime.
func SmartNewsDigest(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(func() {
		handler, initErr = newHandler()
		if initErr != nil {
			log.Printf("initializing %s: %v", FunctionName, initErr)
		}
	})
	if initErr != nil {
		_ = response.WriteDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	handler.ServeHTTP(w, r)
}

func newHandler() (http.Handler, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	return server.NewHandler(application.New(cfg, log, Version)), nil
}
