package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Pelmenoff/m2-hw12/internal/model"
)

var _ model.TokenManager = (*JWT)(nil)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims represents JWT claims with token kind. The subject is the user's email.
type Claims struct {
	jwt.RegisteredClaims
	Kind model.TokenKind `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC-SHA256.
type JWT struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// Option configures JWT.
type Option func(*JWT)

// WithTTL overrides access and refresh token lifetimes. Non-positive values keep the defaults.
func WithTTL(access, refresh time.Duration) Option {
	return func(j *JWT) {
		if access > 0 {
			j.accessTTL = access
		}
		if refresh > 0 {
			j.refreshTTL = refresh
		}
	}
}

// WithClock sets the time source used both for issuing and for validating tokens.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string, opts ...Option) *JWT {
	j := &JWT{
		secretKey:  []byte(secretKey),
		accessTTL:  defaultAccessTTL,
		refreshTTL: defaultRefreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// GenerateAccessToken creates a short-lived access token for subject.
func (j *JWT) GenerateAccessToken(subject string) (string, error) {
	tokenString, err := j.generate(subject, model.TokenKindAccess, j.accessTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

// GenerateRefreshToken creates a long-lived refresh token for subject.
func (j *JWT) GenerateRefreshToken(subject string) (string, error) {
	tokenString, err := j.generate(subject, model.TokenKindRefresh, j.refreshTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return tokenString, nil
}

func (j *JWT) generate(subject string, kind model.TokenKind, ttl time.Duration) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Kind: kind,
	})

	return token.SignedString(j.secretKey)
}

// Verify checks the signature and expiration of a token of any kind.
func (j *JWT) Verify(tokenString string) (model.Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return model.Claims{}, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}
	if !token.Valid {
		return model.Claims{}, fmt.Errorf("%w: token is not valid", model.ErrInvalidToken)
	}
	if claims.Subject == "" {
		return model.Claims{}, fmt.Errorf("%w: missing subject", model.ErrInvalidToken)
	}

	out := model.Claims{
		ID:        claims.ID,
		Subject:   claims.Subject,
		Kind:      claims.Kind,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}

// ParseAccessToken verifies an access token. Refresh tokens are rejected.
func (j *JWT) ParseAccessToken(tokenString string) (model.Claims, error) {
	return j.parseKind(tokenString, model.TokenKindAccess)
}

// ParseRefreshToken verifies a refresh token. Access tokens are rejected.
func (j *JWT) ParseRefreshToken(tokenString string) (model.Claims, error) {
	return j.parseKind(tokenString, model.TokenKindRefresh)
}

func (j *JWT) parseKind(tokenString string, kind model.TokenKind) (model.Claims, error) {
	claims, err := j.Verify(tokenString)
	if err != nil {
		return model.Claims{}, err
	}
	if claims.Kind != kind {
		return model.Claims{}, fmt.Errorf("%w: token type mismatch: %q", model.ErrInvalidToken, claims.Kind)
	}
	return claims, nil
}
