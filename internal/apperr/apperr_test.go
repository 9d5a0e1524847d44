package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		kind   Kind
		status int
	}{
		{"unauthorized", Unauthorized("Missing key"), KindUnauthorized, http.StatusUnauthorized},
		{"upstream keeps status", Upstream(http.StatusTooManyRequests, "slow down"), KindUpstream, http.StatusTooManyRequests},
		{"bad request", BadRequest("blocked"), KindBadRequest, http.StatusBadRequest},
		{"validation", Validation("keyword: field required"), KindValidation, http.StatusUnprocessableEntity},
		{"internal", Internal("boom", errors.New("io")), KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.status, tt.err.Status)
		})
	}
}

func TestFrom(t *testing.T) {
	wrapped := fmt.Errorf("searching: %w", Unauthorized("Missing or Invalid SERPAPI Key"))
	got := From(wrapped)
	assert.Equal(t, http.StatusUnauthorized, got.Status)
	assert.Equal(t, "Missing or Invalid SERPAPI Key", got.Detail)

	plain := errors.New("dial tcp: refused")
	got = From(plain)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.ErrorIs(t, got, plain)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "unauthorized (401): Missing key", Unauthorized("Missing key").Error())
	assert.Equal(t, "internal (500): boom: io", Internal("boom", errors.New("io")).Error())
}
