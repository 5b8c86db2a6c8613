package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateBirthdate(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name          string
		value         string
		expectedError bool
	}{
		{name: "today", value: "2024-06-15", expectedError: false},
		{name: "two years ago", value: "2022-03-01", expectedError: false},
		{name: "exactly five years ago", value: "2019-06-15", expectedError: false},
		{name: "older than five years", value: "2019-06-14", expectedError: true},
		{name: "future", value: "2024-06-16", expectedError: true},
		{name: "wrong format", value: "15/06/2024", expectedError: true},
		{name: "impossible date", value: "2024-02-31", expectedError: true},
		{name: "empty", value: "", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateBirthdate(tt.value, now)
			if tt.expectedError {
				var vErr ValidationError
				assert.True(t, errors.As(err, &vErr))
				assert.Equal(t, "birthdate", vErr.Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	email, err := ValidateEmail("  Parent@Example.com ")
	assert.NoError(t, err)
	assert.Equal(t, "parent@example.com", email)

	_, err = ValidateEmail("")
	assert.Error(t, err)

	_, err = ValidateEmail("not-an-email")
	assert.Error(t, err)
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		confirm    string
		confirming bool
		field      string
	}{
		{name: "valid sign in", password: "secret", confirming: false},
		{name: "valid sign up", password: "secret1", confirm: "secret1", confirming: true},
		{name: "empty", password: "", field: "password"},
		{name: "too short", password: "abc", field: "password"},
		{name: "mismatch", password: "secret1", confirm: "secret2", confirming: true, field: "confirm_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password, tt.confirm, tt.confirming)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var vErr ValidationError
			assert.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestValidateName(t *testing.T) {
	name, err := ValidateName("name", "  Mia ")
	assert.NoError(t, err)
	assert.Equal(t, "Mia", name)

	_, err = ValidateName("name", "   ")
	assert.EqualError(t, err, "name: name is required")
}
