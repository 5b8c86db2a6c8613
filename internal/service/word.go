package service

import (
	"context"
	"strings"
	"time"

	"wordsprout/internal/domain"
	"wordsprout/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxFlashcards is the size of a full review session
const MaxFlashcards = 20

// Categorizer suggests a category for a word from the known taxonomy
type Categorizer interface {
	Suggest(ctx context.Context, word string, categories []domain.WordCategory) (*uuid.UUID, error)
}

// AddWordInput is a word as entered by a parent
type AddWordInput struct {
	ChildID     uuid.UUID
	UserID      uuid.UUID
	Word        string
	CategoryID  *uuid.UUID
	DateLearned string
	Notes       string
}

// WordService handles word-related business logic
type WordService struct {
	wordRepo     repository.WordRepository
	childRepo    repository.ChildRepository
	categoryRepo repository.CategoryRepository
	reconciler   Reconciler
	categorizer  Categorizer
	logger       *zap.Logger
	now          func() time.Time
}

// NewWordService creates a new word service. categorizer may be nil.
func NewWordService(
	wordRepo repository.WordRepository,
	childRepo repository.ChildRepository,
	categoryRepo repository.CategoryRepository,
	reconciler Reconciler,
	categorizer Categorizer,
	logger *zap.Logger,
) *WordService {
	return &WordService{
		wordRepo:     wordRepo,
		childRepo:    childRepo,
		categoryRepo: categoryRepo,
		reconciler:   reconciler,
		categorizer:  categorizer,
		logger:       logger,
		now:          time.Now,
	}
}

// Add stores a word for a child and schedules milestone reconciliation.
// A category picked by the parent always wins over an automatic suggestion.
func (s *WordService) Add(ctx context.Context, in AddWordInput) (*domain.Word, error) {
	text, err := domain.ValidateName("word", in.Word)
	if err != nil {
		return nil, err
	}

	learned := domain.TruncateDay(s.now())
	if strings.TrimSpace(in.DateLearned) != "" {
		learned, err = domain.ParseDate("date_learned", in.DateLearned)
		if err != nil {
			return nil, err
		}
	}

	child, err := s.childRepo.GetChild(in.ChildID, in.UserID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, domain.ErrNotFound
	}

	categoryID := in.CategoryID
	if categoryID == nil && s.categorizer != nil {
		categoryID = s.suggestCategory(ctx, text)
	}

	word, err := s.wordRepo.CreateWord(&domain.Word{
		ChildID:     in.ChildID,
		UserID:      in.UserID,
		CategoryID:  categoryID,
		Word:        text,
		DateLearned: learned,
		Notes:       strings.TrimSpace(in.Notes),
	})
	if err != nil {
		return nil, err
	}

	s.reconciler.ReconcileAsync(in.ChildID, in.UserID)
	return word, nil
}

func (s *WordService) suggestCategory(ctx context.Context, word string) *uuid.UUID {
	categories, err := s.categoryRepo.ListCategories()
	if err != nil {
		s.logger.Warn("Failed to load categories for suggestion", zap.Error(err))
		return nil
	}

	id, err := s.categorizer.Suggest(ctx, word, categories)
	if err != nil {
		s.logger.Warn("Category suggestion failed", zap.String("word", word), zap.Error(err))
		return nil
	}
	return id
}

// Delete removes a word and schedules milestone reconciliation for its child
func (s *WordService) Delete(wordID, userID uuid.UUID) error {
	word, err := s.wordRepo.GetWord(wordID, userID)
	if err != nil {
		return err
	}
	if word == nil {
		return domain.ErrNotFound
	}

	deleted, err := s.wordRepo.DeleteWord(wordID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}

	s.reconciler.ReconcileAsync(word.ChildID, userID)
	return nil
}

// List returns a child's words, newest first, narrowed by search term and category
func (s *WordService) List(childID, userID uuid.UUID, filter domain.WordFilter) ([]domain.Word, error) {
	return s.wordRepo.ListWords(childID, userID, filter)
}

// Get returns one word owned by the user
func (s *WordService) Get(wordID, userID uuid.UUID) (*domain.Word, error) {
	word, err := s.wordRepo.GetWord(wordID, userID)
	if err != nil {
		return nil, err
	}
	if word == nil {
		return nil, domain.ErrNotFound
	}
	return word, nil
}

// Flashcards returns up to limit of a child's words in random order for review.
// A limit outside 1..MaxFlashcards falls back to MaxFlashcards.
func (s *WordService) Flashcards(childID, userID uuid.UUID, limit int) ([]domain.Word, error) {
	if limit < 1 || limit > MaxFlashcards {
		limit = MaxFlashcards
	}

	child, err := s.childRepo.GetChild(childID, userID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, domain.ErrNotFound
	}

	return s.wordRepo.GetRandomWords(childID, userID, limit)
}

// Categories returns the global word taxonomy
func (s *WordService) Categories() ([]domain.WordCategory, error) {
	return s.categoryRepo.ListCategories()
}
