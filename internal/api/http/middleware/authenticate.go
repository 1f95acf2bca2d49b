package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jobsift/jobsift-server/internal/logger"
	"github.com/jobsift/jobsift-server/internal/model"
)

var (
	errMissingToken = errors.New("missing authorization token")
	errInvalidToken = errors.New("invalid authorization token")
)

// TokenParser resolves a user ID from a bearer token.
type TokenParser interface {
	ParseAccessToken(token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and injects the user ID into the request context.
type Authenticate struct {
	tokens         TokenParser
	users          model.UserStore
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(tokens TokenParser, users model.UserStore, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		tokens:         tokens,
		users:          users,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle rejects requests without a valid token for an existing user with 401.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r.Header.Get("Authorization"))

		userID, err := m.authenticateUser(r.Context(), tokenString)
		if err != nil {
			if errors.Is(err, errMissingToken) || errors.Is(err, errInvalidToken) {
				m.logger.Debug("Authenticate middleware: request rejected", "path", r.URL.Path, "reason", err.Error())
				writeDetail(w, http.StatusUnauthorized, err.Error())
				return
			}
			m.logger.Error("Authenticate middleware: user lookup failed", "error", err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}

		ctx := m.contextManager.SetUserIDToContext(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) authenticateUser(ctx context.Context, tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, errMissingToken
	}

	userID, err := m.tokens.ParseAccessToken(tokenString)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, errInvalidToken
	}

	if _, err := m.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return uuid.Nil, errInvalidToken
		}
		return uuid.Nil, err
	}

	return userID, nil
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
