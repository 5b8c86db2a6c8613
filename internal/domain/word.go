package domain

import (
	"time"

	"github.com/google/uuid"
)

// Word is a single vocabulary entry attributed to a child on a given date
type Word struct {
	ID          uuid.UUID
	ChildID     uuid.UUID
	UserID      uuid.UUID
	CategoryID  *uuid.UUID
	Word        string
	DateLearned time.Time
	Notes       string
	CreatedAt   time.Time
}

// WordCategory is an entry of the global word taxonomy
type WordCategory struct {
	ID    uuid.UUID
	Name  string
	Icon  string
	Color string
}

// WordFilter narrows a word listing
type WordFilter struct {
	Search     string
	CategoryID *uuid.UUID
}
