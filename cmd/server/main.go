package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pep299/smart-news-digest/internal/application"
	"github.com/pep299/smart-news-digest/internal/config"
	"github.com/pep299/smart-news-digest/internal/logger"
	"github.com/pep299/smart-news-digest/internal/transport/server"
)

var (
	Version   string = "dev"
	Commit    string = "unknown"
	BuildTime string = "unknown"
)

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("Smart News Digest Server\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Commit: %s\n", Commit)
		fmt.Printf("Build Time: %s\n", BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Printf("Smart News Digest Server\n\n")
	fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
	fmt.Printf("\nEnvironment Variables:\n")
	fmt.Printf("  SERP_API_KEY          SerpAPI key for /general_news\n")
	fmt.Printf("  GOOGLE_API_KEY        Gemini API key for /get_article_summary\n")
	fmt.Printf("  GEMINI_MODEL          Gemini model (default: gemini-2.0-flash-lite)\n")
	fmt.Printf("  PORT                  Server port (default: 8080)\n")
	fmt.Printf("  HOST                  Server host (default: 0.0.0.0)\n")
	fmt.Printf("  HTTP_CLIENT_TIMEOUT   Outbound client timeout (default: 30s)\n")
	fmt.Printf("  EXTRACT_TIMEOUT       Page fetch timeout (default: 15s)\n")
	fmt.Printf("  LOG_LEVEL             debug, info, warn or error (default: info)\n")
	fmt.Printf("  LOG_FORMAT            json or console (default: json)\n")
}

// run owns every resource so deferred cleanup happens on all exit paths.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	app := application.New(cfg, log, Version)
	defer app.Close()

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.NewHandler(app),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", httpServer.Addr), zap.String("version", Version))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listening: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	log.Info("server stopped")
	return nil
}
