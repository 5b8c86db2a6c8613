package domain

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for birthdates and date_learned
const DateLayout = "2006-01-02"

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

var (
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if !dateRegex.MatchString(value) {
		return time.Time{}, ValidationError{Field: field, Message: "date must be in YYYY-MM-DD format"}
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, ValidationError{Field: field, Message: "invalid date"}
	}
	return t, nil
}

// ValidateBirthdate parses a birthdate and checks it is not in the future
// and not more than five years before now
func ValidateBirthdate(value string, now time.Time) (time.Time, error) {
	birthdate, err := ParseDate("birthdate", value)
	if err != nil {
		return time.Time{}, err
	}

	today := TruncateDay(now)
	if birthdate.After(today) {
		return time.Time{}, ValidationError{Field: "birthdate", Message: "birthdate cannot be in the future"}
	}
	if birthdate.Before(today.AddDate(-5, 0, 0)) {
		return time.Time{}, ValidationError{Field: "birthdate", Message: "birthdate must be within the last 5 years"}
	}
	return birthdate, nil
}

// ValidateName checks that a required name is present
func ValidateName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ValidationError{Field: field, Message: field + " is required"}
	}
	return name, nil
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return "", ValidationError{Field: "email", Message: "invalid email format"}
	}
	return email, nil
}

// ValidatePassword checks length and, when confirming, that both entries match
func ValidatePassword(password, confirm string, confirming bool) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < MinPasswordLength {
		return ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	if confirming && password != confirm {
		return ValidationError{Field: "confirm_password", Message: "passwords do not match"}
	}
	return nil
}

// TruncateDay returns midnight UTC of the calendar day of t in its own location
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
