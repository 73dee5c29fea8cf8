package domain

import "errors"

// Error kinds returned by the complaint engine. Callers wrap them with
// fmt.Errorf("%w: ...") and match with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("access denied")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidState = errors.New("operation not allowed in current state")
	ErrConflict     = errors.New("resource was modified concurrently")
	ErrCollaborator = errors.New("backend failure")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Media errors
var (
	ErrUnsupportedMedia = errors.New("only images and videos are allowed")
	ErrMediaTooLarge    = errors.New("file exceeds the 10MB limit")
)
