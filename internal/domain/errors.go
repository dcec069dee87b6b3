package domain

import "errors"

// Sentinel errors for the authentication core. Callers match these with
// errors.Is rather than inspecting messages.
var (
	// ErrDuplicateUser signals a signup against an email that already has a
	// credential record.
	ErrDuplicateUser = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password;
	// the two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is the store-level absence signal. The authentication
	// service translates it before it reaches a caller of Login.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidRole rejects role values outside {producer, buyer}.
	ErrInvalidRole = errors.New("invalid role")
)
