package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Pelmenoff/m2-hw12/internal/api/rest/response"
	"github.com/Pelmenoff/m2-hw12/internal/logger"
	"github.com/Pelmenoff/m2-hw12/internal/model"
)

// Authenticator resolves an access token into a user.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (model.User, error)
}

// Authenticate validates bearer tokens and injects the user into the request context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid access token with 401.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r)
		if !ok {
			response.Unauthorized(w, "Not authenticated")
			return
		}

		user, err := m.authenticator.Authenticate(r.Context(), token)
		if errors.Is(err, model.ErrUnauthorized) || errors.Is(err, model.ErrInvalidToken) {
			m.logger.Debug("Authenticate middleware: request rejected",
				"path", r.URL.Path,
				"error", err.Error())
			response.Unauthorized(w, "Could not validate credentials")
			return
		}
		if err != nil {
			m.logger.Error("Authenticate middleware: authentication failed",
				"path", r.URL.Path,
				"error", err.Error())
			response.Error(w, http.StatusInternalServerError, "internal server error")
			return
		}

		ctx := m.contextManager.SetUserToContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
