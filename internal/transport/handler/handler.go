package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/pep299/smart-news-digest/internal/apperr"
	"github.com/pep299/smart-news-digest/internal/extract"
	"github.com/pep299/smart-news-digest/internal/search"
	"github.com/pep299/smart-news-digest/internal/transport/middleware"
	"github.com/pep299/smart-news-digest/internal/transport/response"
)

// Interfaces for dependency injection and testing

type NewsSearcher interface {
	News(ctx context.Context, q search.Query) ([]json.RawMessage, error)
}

type ArticleExtractor interface {
	Extract(ctx context.Context, rawURL string) extract.Outcome
}

type ArticleSummarizer interface {
	Summarize(ctx context.Context, article, title string) (string, error)
}

func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	appErr := apperr.From(err)

	fields := []zap.Field{
		zap.String("request_id", middleware.RequestID(r.Context())),
		zap.String("kind", appErr.Kind.String()),
		zap.Int("status", appErr.Status),
		zap.Error(err),
	}
	switch {
	case appErr.Kind == apperr.KindValidation:
		log.Debug("rejected request", fields...)
	case appErr.Status >= http.StatusInternalServerError:
		log.Error("request failed", fields...)
	default:
		log.Warn("request failed", fields...)
	}

	_ = response.WriteError(w, appErr)
}
