package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/Pelmenoff/m2-hw12/internal/logger"
	"github.com/Pelmenoff/m2-hw12/internal/model"
)

type Auth struct {
	userStore model.UserStore
	tx        model.Transactor
	hasher    model.PasswordHasher
	tokens    model.TokenManager
	logger    *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	tx model.Transactor,
	hasher model.PasswordHasher,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		tx:        tx,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates a user with a hashed password. It fails with
// model.ErrConflict when the email is already registered.
func (a *Auth) Register(ctx context.Context, email, password string) (model.User, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	if err := validateCredentials(email, password); err != nil {
		return model.User{}, err
	}

	hashed, err := a.hasher.Hash(password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var user model.User
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := a.userStore.GetByEmail(ctx, email)
		if err == nil {
			return model.ErrConflict
		}
		if !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("failed to get user by email: %w", err)
		}

		user, err = a.userStore.Create(ctx, model.User{Email: email, HashedPassword: hashed})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if errors.Is(err, model.ErrConflict) {
		a.logger.Info("Auth service: user already exists",
			"email", email)
		return model.User{}, model.NewError(model.ErrConflict, "User with this email already exists")
	}
	if err != nil {
		a.logger.Error("Auth service: registration failed",
			"email", email,
			"error", err.Error())
		return model.User{}, err
	}

	a.logger.Info("Auth service: user registered",
		"email", email,
		"user_id", user.ID)

	return user, nil
}

// Login checks credentials and issues an access and a refresh token.
func (a *Auth) Login(ctx context.Context, email, password string) (model.TokenPair, error) {
	a.logger.Debug("Auth service: starting user login",
		"email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.TokenPair{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if err != nil || !a.hasher.Verify(password, user.HashedPassword) {
		a.logger.Info("Auth service: login rejected",
			"email", email)
		return model.TokenPair{}, model.NewError(model.ErrUnauthorized, "Incorrect username or password")
	}

	access, err := a.tokens.GenerateAccessToken(user.Email)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, err := a.tokens.GenerateRefreshToken(user.Email)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue refresh: %w", err)
	}

	a.logger.Info("Auth service: login completed",
		"email", email,
		"user_id", user.ID)

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token for the
// same subject. The refresh token itself is not rotated.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := a.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		a.logger.Debug("Auth service: refresh token rejected",
			"error", err.Error())
		return "", model.NewError(model.ErrUnauthorized, "Invalid refresh token")
	}

	access, err := a.tokens.GenerateAccessToken(claims.Subject)
	if err != nil {
		return "", fmt.Errorf("issue access: %w", err)
	}

	return access, nil
}

// Authenticate resolves an access token into the user it was issued to.
func (a *Auth) Authenticate(ctx context.Context, accessToken string) (model.User, error) {
	claims, err := a.tokens.ParseAccessToken(accessToken)
	if err != nil {
		a.logger.Debug("Auth service: access token rejected",
			"error", err.Error())
		return model.User{}, model.NewError(model.ErrUnauthorized, "Could not validate credentials")
	}

	user, err := a.userStore.GetByEmail(ctx, claims.Subject)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.NewError(model.ErrUnauthorized, "Could not validate credentials")
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return model.NewValidationError("email and password required")
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	return nil
}

// validateEmail accepts a bare address such as "a@x.com" and nothing else.
func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return model.NewValidationError("value is not a valid email address: %s", email)
	}
	return nil
}
