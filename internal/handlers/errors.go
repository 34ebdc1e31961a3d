package handlers

import "errors"

var (
	// common error code
	ErrInternalServer = errors.New("INTERNAL_SERVER_ERROR")
	ErrInvalidRequest = errors.New("VALIDATION_FAILED")
	ErrInvalidJson    = errors.New("INVALID_JSON_FORMAT")

	// auth error code
	ErrPasswordMismatch    = errors.New("PASSWORD_MISMATCH")
	ErrUserExists          = errors.New("USER_EXISTS")
	ErrInvalidCredentials  = errors.New("INVALID_CREDENTIALS")
	ErrMissingCookie       = errors.New("MISSING_COOKIE")
	ErrTokenExpired        = errors.New("TOKEN_EXPIRED")
	ErrInvalidToken        = errors.New("INVALID_TOKEN")
	ErrInvalidRefreshToken = errors.New("INVALID_REFRESH_TOKEN")
	ErrTokenGenFailed      = errors.New("TOKEN_GENERATION_FAILED")

	// user error code
	ErrUserNotFound = errors.New("USER_NOT_FOUND")

	// rate limit error code
	ErrRateLimited = errors.New("RATE_LIMITED")
)
