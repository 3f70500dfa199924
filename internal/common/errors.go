// Package common defines shared constants and sentinel errors used across
// client and server layers of the Presto store server. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Input errors: the caller supplied invalid or conflicting data.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateAccount   = errors.New("email address already registered")
	ErrMalformedPayload   = errors.New("malformed request payload")

	// Access errors: the presented credential does not grant access.
	ErrInvalidToken    = errors.New("invalid token")
	ErrAccountNotFound = errors.New("user not found")
)

// IsInputError reports whether err is a client-input failure: one the
// HTTP boundary surfaces as 400.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrDuplicateAccount) ||
		errors.Is(err, ErrMalformedPayload)
}

// IsAccessError reports whether err is a credential/token failure: one the
// HTTP boundary surfaces as 403.
func IsAccessError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrAccountNotFound)
}
