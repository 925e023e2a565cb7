package handler

import (
	"context"
	"net/http"

	"github.com/Pelmenoff/m2-hw12/internal/api/rest/middleware"
	"github.com/Pelmenoff/m2-hw12/internal/api/rest/response"
	"github.com/Pelmenoff/m2-hw12/internal/logger"
	"github.com/Pelmenoff/m2-hw12/internal/model"
)

// AuthService defines user registration, login and token refresh operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) (model.User, error)
	Login(ctx context.Context, email, password string) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// Register creates an account from the email and password query or form values.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")

	h.logger.Debug("Auth handler: processing registration request",
		"email", email)

	user, err := h.authService.Register(r.Context(), email, r.FormValue("password"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, userResponse{ID: user.ID, Email: user.Email})
}

// Login implements the OAuth2 password grant: form fields username and password.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		response.Error(w, http.StatusUnprocessableEntity, "username and password required")
		return
	}

	pair, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    model.TokenType,
	})
}

// Refresh issues a new access token for the refresh token in the Authorization header.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := middleware.BearerToken(r)
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	access, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, tokenResponse{
		AccessToken: access,
		TokenType:   model.TokenType,
	})
}
