package domain

import (
	"sort"
	"time"
)

// Dashboard holds the headline counters for a child
type Dashboard struct {
	TotalWords         int
	TodaysWords        int
	AchievedMilestones int
}

// CategoryCount is one slice of the by-category breakdown
type CategoryCount struct {
	Name  string
	Color string
	Count int
}

// RecentWord is a word shown in the "recently learned" list
type RecentWord struct {
	Word     string
	Date     time.Time
	Category string
}

// Achievement is a recently achieved milestone
type Achievement struct {
	Title        string
	AchievedDate time.Time
}

// MonthCount is the cumulative vocabulary size at the end of a month
type MonthCount struct {
	Month time.Time
	Words int
}

// Statistics is the derived statistics view for a child
type Statistics struct {
	TotalWords     int
	ThisWeek       int
	ThisMonth      int
	ByCategory     []CategoryCount
	RecentWords    []RecentWord
	Growth         []MonthCount
	CurrentStreak  int
	LongestStreak  int
	Milestones     int
	Achieved       int
	Percentage     int
	RecentAchieved []Achievement
}

// Streaks returns the current and longest runs of consecutive calendar days
// with at least one word. The current streak is anchored on today, or on
// yesterday when nothing was logged today yet.
func Streaks(dates []time.Time, now time.Time) (current, longest int) {
	if len(dates) == 0 {
		return 0, 0
	}

	seen := make(map[time.Time]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := TruncateDay(d)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	run := 0
	for i, day := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(day) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	cursor := TruncateDay(now)
	if !seen[cursor] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	for seen[cursor] {
		current++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return current, longest
}

// Percentage returns part/total as a rounded percentage, 0 when total is 0
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (part*100 + total/2) / total
}

// CumulativeGrowth buckets dates by month and returns the running total per month
func CumulativeGrowth(dates []time.Time) []MonthCount {
	if len(dates) == 0 {
		return nil
	}

	perMonth := make(map[time.Time]int)
	for _, d := range dates {
		month := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		perMonth[month]++
	}

	months := make([]time.Time, 0, len(perMonth))
	for m := range perMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	growth := make([]MonthCount, 0, len(months))
	total := 0
	for _, m := range months {
		total += perMonth[m]
		growth = append(growth, MonthCount{Month: m, Words: total})
	}
	return growth
}
