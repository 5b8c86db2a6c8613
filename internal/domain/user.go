package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a parent account
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	TelegramID   *int64
	CreatedAt    time.Time
}

// UserState represents a chat user's current interaction state
type UserState string

const (
	StateIdle             UserState = "idle"
	StateWaitingChildName UserState = "waiting_child_name"
	StateWaitingBirthdate UserState = "waiting_birthdate"
)

// StateData holds temporary data for a chat user's current state
type StateData struct {
	State     UserState
	ChildName string
}
