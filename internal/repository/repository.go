package repository

import (
	"time"

	"wordsprout/internal/domain"

	"github.com/google/uuid"
)

// UserRepository defines account data operations
type UserRepository interface {
	CreateUser(email, passwordHash string) (*domain.User, error)
	GetUserByEmail(email string) (*domain.User, error)
	GetUserByID(userID uuid.UUID) (*domain.User, error)
	GetUserByTelegramID(telegramID int64) (*domain.User, error)
	SetTelegramID(userID uuid.UUID, telegramID int64) error
}

// ChildRepository defines child profile operations
type ChildRepository interface {
	CreateChild(userID uuid.UUID, name string, birthdate time.Time, avatar string) (*domain.Child, error)
	GetChild(childID, userID uuid.UUID) (*domain.Child, error)
	ListChildren(userID uuid.UUID) ([]domain.Child, error)
	ListAllChildren() ([]domain.Child, error)
	DeleteChild(childID, userID uuid.UUID) (bool, error)
}

// CategoryRepository defines word taxonomy operations
type CategoryRepository interface {
	ListCategories() ([]domain.WordCategory, error)
}

// WordRepository defines word data operations
type WordRepository interface {
	CreateWord(w *domain.Word) (*domain.Word, error)
	GetWord(wordID, userID uuid.UUID) (*domain.Word, error)
	DeleteWord(wordID, userID uuid.UUID) (bool, error)
	ListWords(childID, userID uuid.UUID, filter domain.WordFilter) ([]domain.Word, error)
	ListWordsOn(childID, userID uuid.UUID, date time.Time) ([]domain.Word, error)
	GetRandomWords(childID, userID uuid.UUID, limit int) ([]domain.Word, error)
	CountWords(childID, userID uuid.UUID) (int, error)
	CountWordsOn(childID, userID uuid.UUID, date time.Time) (int, error)
	GetDaysWithWords(childID, userID uuid.UUID, limit, offset int) ([]domain.Day, error)
	GetTotalDaysCount(childID, userID uuid.UUID) (int, error)
}

// MilestoneRepository defines milestone operations
type MilestoneRepository interface {
	CreateDefaultMilestones(childID, userID uuid.UUID) error
	ListMilestones(childID, userID uuid.UUID) ([]domain.Milestone, error)
	GetMilestonesByType(childID, userID uuid.UUID, milestoneType string) ([]domain.Milestone, error)
	GetMilestone(milestoneID, userID uuid.UUID) (*domain.Milestone, error)
	GetNextMilestone(childID, userID uuid.UUID) (*domain.Milestone, error)
	CountAchieved(childID, userID uuid.UUID) (int, error)
	UpdateMilestone(userID uuid.UUID, update domain.MilestoneUpdate) error
}
