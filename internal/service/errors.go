package service

import (
	"errors"
	"fmt"
)

// Domain errors returned by the services.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("already exists")
	ErrUsernameTaken      = fmt.Errorf("username %w", ErrDuplicate)
	ErrEmailTaken         = fmt.Errorf("email %w", ErrDuplicate)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTimeRange   = errors.New("invalid time range: from must be <= to")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
