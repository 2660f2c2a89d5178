package util

import (
	"errors"

	"edutech_backend/internal/scoring"
)

var (
	ErrInvalidAnswers     = scoring.ErrInvalidAnswers
	ErrInvalidInput       = errors.New("Invalid input")
	ErrResultNotSaved     = errors.New("Failed to save result")
	ErrUserNotFound       = errors.New("User not found")
	ErrUsernameTaken      = errors.New("Username already exists")
	ErrEmailInUse         = errors.New("Email already in use")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrInvalidAdminSecret = errors.New("Invalid admin secret")
	ErrPermissionDenied   = errors.New("Forbidden: Admins only")
	ErrAINotConfigured    = errors.New("AI is not configured")
	ErrEmptyAIAnswer      = errors.New("no answer received")
)
