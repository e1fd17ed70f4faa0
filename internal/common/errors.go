// Package common defines shared constants and sentinel errors used across
// the blog server layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Unique constraint violations, reported by the store that owns the constraint.
	ErrorEmailTaken = fmt.Errorf("email %w", ErrorAlreadyExists)
	ErrorNameTaken  = fmt.Errorf("name %w", ErrorAlreadyExists)
	ErrorTitleTaken = fmt.Errorf("title %w", ErrorAlreadyExists)

	// Service-level errors.
	ErrorInternal        = errors.New("internal error")
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorForbidden       = errors.New("forbidden")
	ErrorInvalidPassword = errors.New("invalid password")
	ErrorValidation      = errors.New("validation error")

	// Token errors (JSON API).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
