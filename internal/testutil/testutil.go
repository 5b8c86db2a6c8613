package testutil

import (
	"time"

	"wordsprout/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(email string) *domain.User {
	return &domain.User{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: time.Now(),
	}
}

// NewTestChild creates a test child owned by userID
func NewTestChild(userID uuid.UUID, name string, birthdate time.Time) *domain.Child {
	now := time.Now()
	return &domain.Child{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Birthdate: birthdate,
		Avatar:    domain.DefaultAvatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestWord creates a test word
func NewTestWord(childID, userID uuid.UUID, word string, learned time.Time) *domain.Word {
	return &domain.Word{
		ID:          uuid.New(),
		ChildID:     childID,
		UserID:      userID,
		Word:        word,
		DateLearned: learned,
		CreatedAt:   time.Now(),
	}
}

// NewTestMilestone creates a vocabulary milestone
func NewTestMilestone(childID, userID uuid.UUID, title string, target, current int, achieved bool) domain.Milestone {
	return domain.Milestone{
		ID:            uuid.New(),
		ChildID:       childID,
		UserID:        userID,
		Title:         title,
		MilestoneType: domain.MilestoneVocabulary,
		TargetValue:   target,
		CurrentValue:  current,
		Achieved:      achieved,
		Icon:          "⭐",
	}
}

// NewTestDay creates a test day
func NewTestDay(date time.Time, wordCount int) domain.Day {
	return domain.Day{
		Date:      date,
		WordCount: wordCount,
	}
}
