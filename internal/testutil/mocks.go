package testutil

import (
	"context"
	"time"

	"wordsprout/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(email, passwordHash string) (*domain.User, error) {
	args := m.Called(email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(userID uuid.UUID) (*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByTelegramID(telegramID int64) (*domain.User, error) {
	args := m.Called(telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetTelegramID(userID uuid.UUID, telegramID int64) error {
	args := m.Called(userID, telegramID)
	return args.Error(0)
}

// MockChildRepository is a mock for ChildRepository
type MockChildRepository struct {
	mock.Mock
}

func (m *MockChildRepository) CreateChild(userID uuid.UUID, name string, birthdate time.Time, avatar string) (*domain.Child, error) {
	args := m.Called(userID, name, birthdate, avatar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Child), args.Error(1)
}

func (m *MockChildRepository) GetChild(childID, userID uuid.UUID) (*domain.Child, error) {
	args := m.Called(childID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Child), args.Error(1)
}

func (m *MockChildRepository) ListChildren(userID uuid.UUID) ([]domain.Child, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Child), args.Error(1)
}

func (m *MockChildRepository) ListAllChildren() ([]domain.Child, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Child), args.Error(1)
}

func (m *MockChildRepository) DeleteChild(childID, userID uuid.UUID) (bool, error) {
	args := m.Called(childID, userID)
	return args.Bool(0), args.Error(1)
}

// MockCategoryRepository is a mock for CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) ListCategories() ([]domain.WordCategory, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordCategory), args.Error(1)
}

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) CreateWord(w *domain.Word) (*domain.Word, error) {
	args := m.Called(w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) GetWord(wordID, userID uuid.UUID) (*domain.Word, error) {
	args := m.Called(wordID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) DeleteWord(wordID, userID uuid.UUID) (bool, error) {
	args := m.Called(wordID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWordRepository) ListWords(childID, userID uuid.UUID, filter domain.WordFilter) ([]domain.Word, error) {
	args := m.Called(childID, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

func (m *MockWordRepository) ListWordsOn(childID, userID uuid.UUID, date time.Time) ([]domain.Word, error) {
	args := m.Called(childID, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

func (m *MockWordRepository) GetRandomWords(childID, userID uuid.UUID, limit int) ([]domain.Word, error) {
	args := m.Called(childID, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

func (m *MockWordRepository) CountWords(childID, userID uuid.UUID) (int, error) {
	args := m.Called(childID, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockWordRepository) CountWordsOn(childID, userID uuid.UUID, date time.Time) (int, error) {
	args := m.Called(childID, userID, date)
	return args.Int(0), args.Error(1)
}

func (m *MockWordRepository) GetDaysWithWords(childID, userID uuid.UUID, limit, offset int) ([]domain.Day, error) {
	args := m.Called(childID, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Day), args.Error(1)
}

func (m *MockWordRepository) GetTotalDaysCount(childID, userID uuid.UUID) (int, error) {
	args := m.Called(childID, userID)
	return args.Int(0), args.Error(1)
}

// MockMilestoneRepository is a mock for MilestoneRepository
type MockMilestoneRepository struct {
	mock.Mock
}

func (m *MockMilestoneRepository) CreateDefaultMilestones(childID, userID uuid.UUID) error {
	args := m.Called(childID, userID)
	return args.Error(0)
}

func (m *MockMilestoneRepository) ListMilestones(childID, userID uuid.UUID) ([]domain.Milestone, error) {
	args := m.Called(childID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Milestone), args.Error(1)
}

func (m *MockMilestoneRepository) GetMilestonesByType(childID, userID uuid.UUID, milestoneType string) ([]domain.Milestone, error) {
	args := m.Called(childID, userID, milestoneType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Milestone), args.Error(1)
}

func (m *MockMilestoneRepository) GetMilestone(milestoneID, userID uuid.UUID) (*domain.Milestone, error) {
	args := m.Called(milestoneID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Milestone), args.Error(1)
}

func (m *MockMilestoneRepository) GetNextMilestone(childID, userID uuid.UUID) (*domain.Milestone, error) {
	args := m.Called(childID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Milestone), args.Error(1)
}

func (m *MockMilestoneRepository) CountAchieved(childID, userID uuid.UUID) (int, error) {
	args := m.Called(childID, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockMilestoneRepository) UpdateMilestone(userID uuid.UUID, update domain.MilestoneUpdate) error {
	args := m.Called(userID, update)
	return args.Error(0)
}

// MockReconciler is a mock for service.Reconciler
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) ReconcileAsync(childID, userID uuid.UUID) {
	m.Called(childID, userID)
}

// MockCategorizer is a mock for service.Categorizer
type MockCategorizer struct {
	mock.Mock
}

func (m *MockCategorizer) Suggest(ctx context.Context, word string, categories []domain.WordCategory) (*uuid.UUID, error) {
	args := m.Called(ctx, word, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uuid.UUID), args.Error(1)
}
