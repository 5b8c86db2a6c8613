package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a row does not exist or is not owned by the caller
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when signing up with an email that already has an account
var ErrEmailTaken = errors.New("email is already registered")

// ValidationError represents an input error caught before any database call
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
