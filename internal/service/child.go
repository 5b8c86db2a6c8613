package service

import (
	"strings"
	"time"

	"wordsprout/internal/domain"
	"wordsprout/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChildService handles child profiles
type ChildService struct {
	childRepo     repository.ChildRepository
	milestoneRepo repository.MilestoneRepository
	logger        *zap.Logger
	now           func() time.Time
}

// NewChildService creates a new child service
func NewChildService(childRepo repository.ChildRepository, milestoneRepo repository.MilestoneRepository, logger *zap.Logger) *ChildService {
	return &ChildService{
		childRepo:     childRepo,
		milestoneRepo: milestoneRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// Create validates and stores a child, then seeds its default milestones.
// A seeding failure is logged and the child is still returned.
func (s *ChildService) Create(userID uuid.UUID, name, birthdate, avatar string) (*domain.Child, error) {
	name, err := domain.ValidateName("name", name)
	if err != nil {
		return nil, err
	}
	born, err := domain.ValidateBirthdate(birthdate, s.now())
	if err != nil {
		return nil, err
	}
	avatar = strings.TrimSpace(avatar)
	if avatar == "" {
		avatar = domain.DefaultAvatar
	}

	child, err := s.childRepo.CreateChild(userID, name, born, avatar)
	if err != nil {
		return nil, err
	}

	if err := s.milestoneRepo.CreateDefaultMilestones(child.ID, userID); err != nil {
		s.logger.Error("Failed to create default milestones",
			zap.String("child_id", child.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("Child created", zap.String("child_id", child.ID.String()))
	return child, nil
}

// List returns the user's children, oldest profile first
func (s *ChildService) List(userID uuid.UUID) ([]domain.Child, error) {
	return s.childRepo.ListChildren(userID)
}

// Get returns one child owned by the user
func (s *ChildService) Get(childID, userID uuid.UUID) (*domain.Child, error) {
	child, err := s.childRepo.GetChild(childID, userID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, domain.ErrNotFound
	}
	return child, nil
}

// Delete removes a child together with its words and milestones
func (s *ChildService) Delete(childID, userID uuid.UUID) error {
	deleted, err := s.childRepo.DeleteChild(childID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}
