package core

import "errors"

var (
	// ErrNoCredentials is returned when no credentials payload was submitted at all.
	ErrNoCredentials = errors.New("no credentials provided")

	// ErrInvalidCredentials is returned when the credentials payload is malformed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned when no account matches the submitted wallet address.
	ErrUserNotFound = errors.New("user not found")

	// ErrProviderUnavailable is returned when no wallet provider is reachable.
	ErrProviderUnavailable = errors.New("no wallet provider available")

	// ErrNotConnected is returned when an operation requires a live wallet connection.
	ErrNotConnected = errors.New("wallet is not connected")

	// ErrNotInitialized is returned when a session is requested from a context
	// that never went through the session middleware.
	ErrNotInitialized = errors.New("session not initialized")

	ErrTokenExpired = errors.New("token has expired")
	ErrTokenRevoked = errors.New("token has been revoked")
	ErrInvalidToken = errors.New("invalid token")

	// ErrStoreOperationFailed is returned when a store operation fails.
	ErrStoreOperationFailed = errors.New("store operation failed")
)
