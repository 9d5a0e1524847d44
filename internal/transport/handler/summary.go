package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pep299/smart-news-digest/internal/transport/response"
)

type summaryRequest struct {
	NewsArticle *string `json:"news_article" validate:"required"`
	ArticleText *string `json:"article_text" validate:"-"`
	Title       *string `json:"title" validate:"required"`
}

// article_text is accepted in place of news_article.
func (r *summaryRequest) normalize() {
	if r.NewsArticle == nil {
		r.NewsArticle = r.ArticleText
	}
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

// Summary serves POST /get_article_summary.
type Summary struct {
	summarizer ArticleSummarizer
	log        *zap.Logger
}

// NewSummary creates the summarization handler
func NewSummary(summarizer ArticleSummarizer, log *zap.Logger) *Summary {
	return &Summary{summarizer: summarizer, log: log}
}

func (h *Summary) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	summary, err := h.summarizer.Summarize(r.Context(), *req.NewsArticle, *req.Title)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	_ = response.WriteJSON(w, http.StatusOK, summaryResponse{Summary: summary})
}
