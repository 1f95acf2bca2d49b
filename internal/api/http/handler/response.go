package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jobsift/jobsift-server/internal/model"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Detail string `json:"detail"`
	Field  string `json:"field,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps service errors to HTTP statuses. notFound overrides the
// detail of 404 responses.
func writeError(w http.ResponseWriter, err error, notFound string) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: ve.Message, Field: ve.Field})
	case errors.Is(err, model.ErrUnsupportedProvider):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	case errors.Is(err, model.ErrNotFound):
		if notFound == "" {
			notFound = "not found"
		}
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: notFound})
	case errors.Is(err, model.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: "not authenticated"})
	case errors.Is(err, model.ErrPublishingDisabled):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Detail: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return model.NewValidationError("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, model.NewValidationError(name, "must be a valid UUID")
	}
	return id, nil
}

// queryInt returns the named query parameter, or def when it is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewValidationError(name, "must be an integer")
	}
	return v, nil
}

// queryDate accepts a calendar date or an RFC 3339 timestamp.
func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, model.NewValidationError(name, "must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	}
	return &t, nil
}
