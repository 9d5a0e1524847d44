package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/pep299/smart-news-digest/internal/search"
	"github.com/pep299/smart-news-digest/internal/transport/response"
)

// Defaults applied when a search request omits country or language.
const (
	DefaultCountry  = "gh"
	DefaultLanguage = "en"
)

type searchRequest struct {
	Country  string  `json:"country"`
	Keyword  *string `json:"keyword" validate:"required"`
	Language string  `json:"language"`
}

type newsResponse struct {
	Modified []json.RawMessage `json:"modified"`
}

// News serves POST /general_news.
type News struct {
	searcher NewsSearcher
	log      *zap.Logger
}

// NewNews creates the search handler
func NewNews(searcher NewsSearcher, log *zap.Logger) *News {
	return &News{searcher: searcher, log: log}
}

func (h *News) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := searchRequest{Country: DefaultCountry, Language: DefaultLanguage}
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	items, err := h.searcher.News(r.Context(), search.Query{
		Country:  req.Country,
		Keyword:  *req.Keyword,
		Language: req.Language,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if items == nil {
		items = []json.RawMessage{}
	}

	_ = response.WriteJSON(w, http.StatusOK, newsResponse{Modified: items})
}
