package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned on login with a wrong password. It is
// deliberately indistinguishable from an unknown username so that login
// cannot be used to probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthReason string

const (
	AuthTokenNotFound AuthReason = "token_not_found"
	AuthTokenExpired  AuthReason = "token_expired"
)

// AuthError means the presented session token could not be resolved to a
// user, either because no such token exists or because it has expired.
type AuthError struct {
	Reason AuthReason
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// ValidationError reports a field that failed its shape/length bounds.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Rule)
}

// NotFoundError covers both true absence and ownership mismatch. The two are
// indistinguishable to the caller so that one account cannot discover
// which entity IDs exist in another.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// ConflictError reports a unique-constraint collision on username or email.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already taken", e.Field)
}
