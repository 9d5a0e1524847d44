package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pep299/smart-news-digest/internal/config"
	"github.com/pep299/smart-news-digest/internal/extract"
	"github.com/pep299/smart-news-digest/internal/gemini"
	"github.com/pep299/smart-news-digest/internal/logger"
	"github.com/pep299/smart-news-digest/internal/search"
)

var (
	Version   string = "dev"
	Commit    string = "unknown"
	BuildTime string = "unknown"
)

const usage = `Smart News Digest CLI

Usage:
  %[1]s search    -keyword <q> [-country gh] [-language en]
  %[1]s extract   -url <url> -title <fallback>
  %[1]s summarize -title <fallback> [-file <path>]   (reads stdin without -file)
  %[1]s -version
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 || args[0] == "-help" || args[0] == "--help" || args[0] == "-h" {
		fmt.Fprintf(stdout, usage, "cli")
		if len(args) == 0 {
			return errors.New("missing command")
		}
		return flag.ErrHelp
	}
	if args[0] == "-version" || args[0] == "--version" {
		fmt.Fprintf(stdout, "Smart News Digest CLI\nVersion: %s\nCommit: %s\nBuild Time: %s\n", Version, Commit, BuildTime)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Keep stdout for results.
	log, err := logger.NewWithWriter(cfg.LogLevel, "console", os.Stderr)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	switch cmd, rest := args[0], args[1:]; cmd {
	case "search":
		return runSearch(ctx, cfg, log, rest, stdout)
	case "extract":
		return runExtract(ctx, cfg, log, rest, stdout)
	case "summarize":
		return runSummarize(ctx, cfg, log, rest, stdin, stdout)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runSearch(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	keyword := fs.String("keyword", "", "Search keyword (required)")
	country := fs.String("country", "gh", "Country code")
	language := fs.String("language", "en", "Language code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *keyword == "" {
		return errors.New("-keyword is required")
	}

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	defer httpClient.CloseIdleConnections()

	client := search.NewClient(httpClient, cfg.SerpAPIBaseURL, cfg.SerpAPIKey, log)
	items, err := client.News(ctx, search.Query{Country: *country, Keyword: *keyword, Language: *language})
	if err != nil {
		return err
	}

	return writeJSON(stdout, map[string]any{"modified": items})
}

func runExtract(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	url := fs.String("url", "", "Article URL (required)")
	title := fs.String("title", "", "Fallback title")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *url == "" {
		return errors.New("-url is required")
	}

	outcome := extract.New(cfg.ExtractTimeout, log).Extract(ctx, *url)

	return writeJSON(stdout, map[string]any{
		"content": outcome.Content(*title),
		"status":  outcome.Status.String(),
	})
}

func runSummarize(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	title := fs.String("title", "", "Fallback title")
	file := fs.String("file", "", "Read the article from this file instead of stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	src := stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return fmt.Errorf("opening article: %w", err)
		}
		defer f.Close()
		src = f
	}

	article, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("reading article: %w", err)
	}

	generator := gemini.NewSDKGenerator(cfg.GoogleAPIKey, cfg.GeminiModel, cfg.GeminiEndpoint)
	summary, err := gemini.NewSummarizer(cfg.GoogleAPIKey, generator, log).Summarize(ctx, string(article), *title)
	if err != nil {
		return err
	}

	return writeJSON(stdout, map[string]string{"summary": summary})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
