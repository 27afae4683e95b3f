package core

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when an operation requires a signed-in
// identity and none is present.
var ErrUnauthenticated = errors.New("not signed in")

// ErrForbidden is returned when the signed-in identity is not allowed to
// perform the operation, e.g. posting to a fundraiser it did not create.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when a request fails validation.
var ErrInvalidInput = errors.New("invalid input")

// AuthErrorKind classifies authentication failures the way the identity
// provider reports them.
type AuthErrorKind string

const (
	AuthAccountConflict   AuthErrorKind = "account_conflict"   // account exists with a different sign-in method
	AuthInvalidCredential AuthErrorKind = "invalid_credential" // malformed, expired or revoked credential
	AuthMethodDisabled    AuthErrorKind = "method_disabled"    // sign-in method not enabled
	AuthEmailInUse        AuthErrorKind = "email_in_use"
	AuthAccountDisabled   AuthErrorKind = "account_disabled"
	AuthWrongCredential   AuthErrorKind = "wrong_credential"
	AuthOther             AuthErrorKind = "other"
)

// AuthError wraps an identity provider failure with its classification. The
// Message is surfaced verbatim to the user.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	cause   error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Kind, e.Message)
}

func (e *AuthError) Unwrap() error { return e.cause }

// NewAuthError builds an AuthError keeping the underlying cause for wrapping.
func NewAuthError(kind AuthErrorKind, message string, cause error) *AuthError {
	return &AuthError{Kind: kind, Message: message, cause: cause}
}
