package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPublicCommand(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{name: "start", text: "/start", expected: true},
		{name: "start with bot name", text: "/start@wordsprout_bot", expected: true},
		{name: "link with payload", text: "/link mom@example.com secret", expected: true},
		{name: "other command", text: "/stats", expected: false},
		{name: "plain word", text: "ball", expected: false},
		{name: "command prefix only", text: "/starting", expected: false},
		{name: "empty", text: "", expected: false},
		{name: "whitespace", text: "   ", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isPublicCommand(tt.text))
		})
	}
}
