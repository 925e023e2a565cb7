package model

import "time"

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	// TokenKindAccess marks a short-lived token presented on every request.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh marks a long-lived token used only to get new access tokens.
	TokenKindRefresh TokenKind = "refresh"
)

// TokenType is the token_type value returned to OAuth2 password-flow clients.
const TokenType = "bearer"

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(subject string) (string, error)
	GenerateRefreshToken(subject string) (string, error)
	Verify(token string) (Claims, error)
	ParseAccessToken(token string) (Claims, error)
	ParseRefreshToken(token string) (Claims, error)
}

// Claims is the verified payload of a token.
type Claims struct {
	ID        string
	Subject   string
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is returned by a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
