package domain

import "errors"

// Authentication and registration.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role: only 'ADMIN' or 'USER' are allowed")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrConfiguration      = errors.New("signing key is not configured")
)

// Authorization gate.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrForbidden       = errors.New("access forbidden")
)

var (
	ErrTodoNotFound        = errors.New("todo not found")
	ErrIdempotencyConflict = errors.New("idempotency key already used")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)
