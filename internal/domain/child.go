package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultAvatar is used when a child is created without one
const DefaultAvatar = "👶"

// Child is a profile whose vocabulary is logged
type Child struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Birthdate time.Time
	Avatar    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeMonths returns the child's age in whole 30-day months
func (c Child) AgeMonths(now time.Time) int {
	months := int(now.Sub(c.Birthdate).Hours() / 24 / 30)
	if months < 0 {
		return 0
	}
	return months
}

// AgeString returns a short human readable age like "14 months old" or "2y 3m old"
func (c Child) AgeString(now time.Time) string {
	months := c.AgeMonths(now)
	if months < 12 {
		return fmt.Sprintf("%d %s old", months, plural(months, "month"))
	}

	years := months / 12
	rest := months % 12
	if rest == 0 {
		return fmt.Sprintf("%d %s old", years, plural(years, "year"))
	}
	return fmt.Sprintf("%dy %dm old", years, rest)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
