package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrEmailNotVerified   = errors.New("email address not verified")
)

// OTP errors. Wrong code, expired code, already-used code and wrong
// purpose all collapse into ErrCodeInvalidOrExpired so the caller
// cannot distinguish the cause.
var (
	ErrCodeInvalidOrExpired = errors.New("invalid or expired code")
	ErrSessionExpired       = errors.New("registration session expired")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Notification errors
var (
	ErrDeliveryFailed = errors.New("notification delivery failed")
)

// Chat proxy errors
var (
	ErrUpstreamUnavailable = errors.New("all completion models exhausted")
	ErrChatNotConfigured   = errors.New("chat API key missing")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
)
