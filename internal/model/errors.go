package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrValidation   = errors.New("validation failed")
)

// Error is a domain error of a known kind with a message safe to show to clients.
type Error struct {
	Kind    error
	Message string
}

// NewError creates an Error of the given kind.
func NewError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewValidationError is a shorthand for NewError(ErrValidation, ...).
func NewValidationError(format string, args ...any) *Error {
	return NewError(ErrValidation, format, args...)
}
