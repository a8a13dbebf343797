package services

import "errors"

var (
	// API registration gate
	ErrUnauthenticated   = errors.New("api authorization data required")
	ErrInvalidCredential = errors.New("invalid api authorization data")
	ErrForbidden         = errors.New("request admin for API user creation rights")

	ErrValidation    = errors.New("invalid registration request")
	ErrUsernameTaken = errors.New("username already exists")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidStatus      = errors.New("status must be active or deactivated")
	ErrInvalidLimit       = errors.New("accounts limit must not be negative")
)
