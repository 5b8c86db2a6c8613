package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"wordsprout/internal/domain"
	"wordsprout/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrNotManual is returned when toggling a milestone driven by the word count
var ErrNotManual = errors.New("milestone is updated automatically from the word count")

// Reconciler schedules a background milestone reconciliation for a child
type Reconciler interface {
	ReconcileAsync(childID, userID uuid.UUID)
}

// MilestoneService keeps vocabulary milestones in line with the word count
type MilestoneService struct {
	milestoneRepo repository.MilestoneRepository
	wordRepo      repository.WordRepository
	childRepo     repository.ChildRepository
	logger        *zap.Logger
	now           func() time.Time

	pending sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// NewMilestoneService creates a new milestone service
func NewMilestoneService(
	milestoneRepo repository.MilestoneRepository,
	wordRepo repository.WordRepository,
	childRepo repository.ChildRepository,
	logger *zap.Logger,
) *MilestoneService {
	return &MilestoneService{
		milestoneRepo: milestoneRepo,
		wordRepo:      wordRepo,
		childRepo:     childRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// Reconcile recomputes every vocabulary milestone of a child from its word count.
// Read failures abort. Write failures are logged per milestone and do not stop the others.
func (s *MilestoneService) Reconcile(childID, userID uuid.UUID) error {
	wordCount, err := s.wordRepo.CountWords(childID, userID)
	if err != nil {
		return fmt.Errorf("failed to count words: %w", err)
	}

	milestones, err := s.milestoneRepo.GetMilestonesByType(childID, userID, domain.MilestoneVocabulary)
	if err != nil {
		return fmt.Errorf("failed to load milestones: %w", err)
	}
	if len(milestones) == 0 {
		return nil
	}

	now := s.now()
	var wg sync.WaitGroup
	for _, m := range milestones {
		update, changed := m.Reconcile(wordCount, now)
		if !changed {
			continue
		}

		wg.Add(1)
		go func(m domain.Milestone, update domain.MilestoneUpdate) {
			defer wg.Done()
			if err := s.milestoneRepo.UpdateMilestone(userID, update); err != nil {
				s.logger.Error("Failed to update milestone",
					zap.String("milestone_id", m.ID.String()),
					zap.String("child_id", childID.String()),
					zap.Error(err),
				)
				return
			}
			if update.NewlyAchieved() {
				s.logger.Info("Milestone achieved",
					zap.String("child_id", childID.String()),
					zap.String("title", m.Title),
				)
			}
		}(m, update)
	}
	wg.Wait()

	return nil
}

// ReconcileAsync runs Reconcile in the background. It never blocks and only logs errors.
// After Shutdown it does nothing.
func (s *MilestoneService) ReconcileAsync(childID, userID uuid.UUID) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Debug("Skipping milestone reconciliation after shutdown",
			zap.String("child_id", childID.String()),
		)
		return
	}
	s.pending.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.pending.Done()
		if err := s.Reconcile(childID, userID); err != nil {
			s.logger.Warn("Background milestone reconciliation failed",
				zap.String("child_id", childID.String()),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until every reconciliation started by ReconcileAsync has finished
func (s *MilestoneService) Wait() {
	s.pending.Wait()
}

// Shutdown stops accepting background reconciliations and waits for the running ones
func (s *MilestoneService) Shutdown() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.pending.Wait()
}

// ReconcileAll reconciles the milestones of every child. A failing child does
// not stop the sweep; all failures are returned together.
func (s *MilestoneService) ReconcileAll() error {
	children, err := s.childRepo.ListAllChildren()
	if err != nil {
		return fmt.Errorf("failed to list children: %w", err)
	}

	var errs error
	for _, c := range children {
		if err := s.Reconcile(c.ID, c.UserID); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("child %s: %w", c.ID, err))
		}
	}

	s.logger.Info("Milestone sweep completed",
		zap.Int("children", len(children)),
		zap.Int("failed", len(multierr.Errors(errs))),
	)
	return errs
}

// List returns all milestones of a child and schedules a reconciliation
func (s *MilestoneService) List(childID, userID uuid.UUID) ([]domain.Milestone, error) {
	milestones, err := s.milestoneRepo.ListMilestones(childID, userID)
	if err != nil {
		return nil, err
	}
	s.ReconcileAsync(childID, userID)
	return milestones, nil
}

// Next returns the unachieved milestone with the lowest target, or nil
func (s *MilestoneService) Next(childID, userID uuid.UUID) (*domain.Milestone, error) {
	return s.milestoneRepo.GetNextMilestone(childID, userID)
}

// SetAchieved marks a manually tracked milestone as achieved or not
func (s *MilestoneService) SetAchieved(milestoneID, userID uuid.UUID, achieved bool) (*domain.Milestone, error) {
	m, err := s.milestoneRepo.GetMilestone(milestoneID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if m.IsVocabulary() {
		return nil, ErrNotManual
	}
	if m.Achieved == achieved {
		return m, nil
	}

	update := domain.MilestoneUpdate{
		ID:             m.ID,
		CurrentValue:   0,
		SetAchievement: true,
		Achieved:       achieved,
	}
	if achieved {
		at := s.now()
		update.CurrentValue = m.TargetValue
		update.AchievedDate = &at
	}

	if err := s.milestoneRepo.UpdateMilestone(userID, update); err != nil {
		return nil, err
	}

	updated := m.Apply(update)
	return &updated, nil
}
