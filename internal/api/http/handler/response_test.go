package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobsift/jobsift-server/internal/model"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		notFound   string
		wantStatus int
		wantBody   string
	}{
		{name: "validation", err: model.NewValidationError("currency", "must be a 3-letter code"),
			wantStatus: http.StatusBadRequest, wantBody: `{"detail":"must be a 3-letter code","field":"currency"}`},
		{name: "wrapped validation", err: fmt.Errorf("create: %w", model.NewValidationError("x", "bad")),
			wantStatus: http.StatusBadRequest, wantBody: `"field":"x"`},
		{name: "unsupported provider", err: fmt.Errorf("%w: %q", model.ErrUnsupportedProvider, "apple"),
			wantStatus: http.StatusBadRequest, wantBody: `unsupported calendar provider`},
		{name: "not found default", err: model.ErrNotFound,
			wantStatus: http.StatusNotFound, wantBody: `{"detail":"not found"}`},
		{name: "not found custom", err: fmt.Errorf("get: %w", model.ErrNotFound), notFound: "Interview not found",
			wantStatus: http.StatusNotFound, wantBody: `{"detail":"Interview not found"}`},
		{name: "unauthenticated", err: model.ErrUnauthenticated,
			wantStatus: http.StatusUnauthorized},
		{name: "publishing disabled", err: model.ErrPublishingDisabled,
			wantStatus: http.StatusServiceUnavailable},
		{name: "upstream hides detail", err: fmt.Errorf("%w: google: secret", model.ErrUpstream),
			wantStatus: http.StatusInternalServerError, wantBody: `{"detail":"internal server error"}`},
		{name: "unexpected", err: errors.New("boom"),
			wantStatus: http.StatusInternalServerError, wantBody: `{"detail":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err, tt.notFound)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestQueryDate(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?a=2026-01-02&b=2026-01-02T10:00:00%2B02:00&c=nope", nil)

	a, err := queryDate(r, "a")
	assert.NoError(t, err)
	assert.Equal(t, "2026-01-02T00:00:00Z", a.Format("2006-01-02T15:04:05Z07:00"))

	b, err := queryDate(r, "b")
	assert.NoError(t, err)
	assert.Equal(t, 8, b.UTC().Hour())

	_, err = queryDate(r, "c")
	assert.True(t, model.IsValidation(err))

	missing, err := queryDate(r, "d")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
