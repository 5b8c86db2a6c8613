package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStreaks(t *testing.T) {
	now := time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		dates           []time.Time
		expectedCurrent int
		expectedLongest int
	}{
		{
			name: "no words",
		},
		{
			name:            "today only",
			dates:           []time.Time{day(2024, 5, 10)},
			expectedCurrent: 1,
			expectedLongest: 1,
		},
		{
			name:            "run ending yesterday still counts",
			dates:           []time.Time{day(2024, 5, 7), day(2024, 5, 8), day(2024, 5, 9)},
			expectedCurrent: 3,
			expectedLongest: 3,
		},
		{
			name:            "broken streak",
			dates:           []time.Time{day(2024, 5, 1), day(2024, 5, 2), day(2024, 5, 3), day(2024, 5, 3), day(2024, 5, 8)},
			expectedCurrent: 0,
			expectedLongest: 3,
		},
		{
			name:            "duplicates on the same day",
			dates:           []time.Time{day(2024, 5, 10), day(2024, 5, 10), day(2024, 5, 9)},
			expectedCurrent: 2,
			expectedLongest: 2,
		},
		{
			name:            "across a month boundary",
			dates:           []time.Time{day(2024, 4, 30), day(2024, 5, 1)},
			expectedCurrent: 0,
			expectedLongest: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, longest := Streaks(tt.dates, now)
			assert.Equal(t, tt.expectedCurrent, current)
			assert.Equal(t, tt.expectedLongest, longest)
		})
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(0, 0))
	assert.Equal(t, 33, Percentage(2, 6))
	assert.Equal(t, 67, Percentage(4, 6))
	assert.Equal(t, 100, Percentage(6, 6))
}

func TestCumulativeGrowth(t *testing.T) {
	growth := CumulativeGrowth([]time.Time{
		day(2024, 2, 3), day(2024, 1, 5), day(2024, 1, 20), day(2024, 4, 1),
	})

	assert.Equal(t, []MonthCount{
		{Month: day(2024, 1, 1), Words: 2},
		{Month: day(2024, 2, 1), Words: 3},
		{Month: day(2024, 4, 1), Words: 4},
	}, growth)

	assert.Nil(t, CumulativeGrowth(nil))
}

func TestChild_AgeString(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthdate time.Time
		expected  string
	}{
		{name: "one month", birthdate: now.AddDate(0, 0, -31), expected: "1 month old"},
		{name: "months", birthdate: now.AddDate(0, 0, -300), expected: "10 months old"},
		{name: "whole year", birthdate: now.AddDate(0, 0, -365), expected: "1 year old"},
		{name: "years and months", birthdate: now.AddDate(0, 0, -30*27-1), expected: "2y 3m old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Child{Birthdate: tt.birthdate}
			assert.Equal(t, tt.expected, c.AgeString(now))
		})
	}
}
