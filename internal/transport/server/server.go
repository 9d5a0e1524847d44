package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pep299/smart-news-digest/internal/application"
	"github.com/pep299/smart-news-digest/internal/transport/handler"
	"github.com/pep299/smart-news-digest/internal/transport/middleware"
	"github.com/pep299/smart-news-digest/internal/transport/response"
)

// NewRouter sets up the API routes
func NewRouter(app *application.Application) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", handler.Home).Methods(http.MethodGet)
	r.Handle("/health", handler.Health(app.Version)).Methods(http.MethodGet)

	r.Handle("/general_news", app.NewsHandler).Methods(http.MethodPost)
	r.Handle("/news_trafilatura", app.ArticleHandler).Methods(http.MethodPost)
	r.Handle("/get_article_summary", app.SummaryHandler).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = response.WriteNotFound(w)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = response.WriteMethodNotAllowed(w)
	})

	return r
}

// NewHandler creates the main HTTP handler for the application.
// CORS wraps the router so preflight requests never hit method matching.
func NewHandler(app *application.Application) http.Handler {
	return middleware.Chain(NewRouter(app),
		middleware.Logging(app.Log),
		middleware.CORS,
		middleware.Recover(app.Log),
	)
}
