package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pep299/smart-news-digest/internal/transport/response"
)

type articleRequest struct {
	URL   *string `json:"url" validate:"required"`
	Title *string `json:"title" validate:"required"`
}

type contentResponse struct {
	Content string `json:"content"`
}

// Article serves POST /news_trafilatura. Once the request is valid it always
// answers 200, falling back to the title when extraction yields nothing.
type Article struct {
	extractor ArticleExtractor
	log       *zap.Logger
}

// NewArticle creates the extraction handler
func NewArticle(extractor ArticleExtractor, log *zap.Logger) *Article {
	return &Article{extractor: extractor, log: log}
}

func (h *Article) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req articleRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	outcome := h.extractor.Extract(r.Context(), *req.URL)

	_ = response.WriteJSON(w, http.StatusOK, contentResponse{Content: outcome.Content(*req.Title)})
}
