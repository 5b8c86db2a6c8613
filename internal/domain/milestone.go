package domain

import (
	"time"

	"github.com/google/uuid"
)

// Milestone types. Other values are stored as free text.
const (
	MilestoneVocabulary = "vocabulary"
	MilestoneSpeech     = "speech"
)

// Milestone is a tracked developmental goal
type Milestone struct {
	ID            uuid.UUID
	ChildID       uuid.UUID
	UserID        uuid.UUID
	Title         string
	Description   string
	MilestoneType string
	TargetValue   int
	CurrentValue  int
	Achieved      bool
	AchievedDate  *time.Time
	Icon          string
}

// IsVocabulary reports whether progress is driven by the word count
func (m Milestone) IsVocabulary() bool {
	return m.MilestoneType == MilestoneVocabulary
}

// MilestoneUpdate describes a write produced by reconciliation.
// When SetAchievement is false only CurrentValue is written.
type MilestoneUpdate struct {
	ID             uuid.UUID
	CurrentValue   int
	SetAchievement bool
	Achieved       bool
	AchievedDate   *time.Time
}

// Reconcile computes the write that brings the milestone in line with wordCount.
// It returns false when the milestone is already consistent and nothing must be written.
// achieved_date is set only on a false->true transition and cleared on true->false.
func (m Milestone) Reconcile(wordCount int, now time.Time) (MilestoneUpdate, bool) {
	isAchieved := wordCount >= m.TargetValue

	if m.CurrentValue == wordCount && m.Achieved == isAchieved {
		return MilestoneUpdate{}, false
	}

	update := MilestoneUpdate{ID: m.ID, CurrentValue: wordCount}
	switch {
	case isAchieved && !m.Achieved:
		at := now
		update.SetAchievement = true
		update.Achieved = true
		update.AchievedDate = &at
	case !isAchieved && m.Achieved:
		update.SetAchievement = true
		update.Achieved = false
		update.AchievedDate = nil
	}

	return update, true
}

// Apply returns a copy of the milestone with the update applied
func (m Milestone) Apply(u MilestoneUpdate) Milestone {
	m.CurrentValue = u.CurrentValue
	if u.SetAchievement {
		m.Achieved = u.Achieved
		m.AchievedDate = u.AchievedDate
	}
	return m
}

// NewlyAchieved reports whether the update marks the milestone achieved
func (u MilestoneUpdate) NewlyAchieved() bool {
	return u.SetAchievement && u.Achieved
}

var achievedMessages = map[string]string{
	"First Word": "🎉 Amazing! Your child just said their first word!",
	"10 Words":   "🌟 Wow! 10 words already! Your little one is growing fast!",
	"50 Words":   "🚀 Incredible! 50 words is a huge milestone!",
	"100 Words":  "🏆 Outstanding! 100 words - your child is becoming a great communicator!",
}

// AchievedMessage returns a congratulation message for a milestone title
func AchievedMessage(title string) string {
	if msg, ok := achievedMessages[title]; ok {
		return msg
	}
	return "🎊 Congratulations! Milestone achieved: " + title
}
