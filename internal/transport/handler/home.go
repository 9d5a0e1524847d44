package handler

import (
	"net/http"

	"github.com/pep299/smart-news-digest/internal/transport/response"
)

const welcomeMessage = "Welcome to Smart News Digest"

// Home serves GET /.
func Home(w http.ResponseWriter, r *http.Request) {
	_ = response.WriteJSON(w, http.StatusOK, contentResponse{Content: welcomeMessage})
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health returns the GET /health handler reporting the build version.
func Health(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = response.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: version})
	}
}
