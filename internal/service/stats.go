package service

import (
	"fmt"
	"sort"
	"time"

	"wordsprout/internal/domain"
	"wordsprout/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	daysPageSize       = 7
	recentWordsLimit   = 5
	recentAchievements = 3
	weekDays           = 7
	monthDays          = 30
	unknownCategory    = "Unknown"
	unknownColor       = "#9E9E9E"
)

// StatsService derives dashboards and statistics from a child's words and milestones
type StatsService struct {
	wordRepo      repository.WordRepository
	categoryRepo  repository.CategoryRepository
	milestoneRepo repository.MilestoneRepository
	reconciler    Reconciler
	logger        *zap.Logger
	now           func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(
	wordRepo repository.WordRepository,
	categoryRepo repository.CategoryRepository,
	milestoneRepo repository.MilestoneRepository,
	reconciler Reconciler,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		wordRepo:      wordRepo,
		categoryRepo:  categoryRepo,
		milestoneRepo: milestoneRepo,
		reconciler:    reconciler,
		logger:        logger,
		now:           time.Now,
	}
}

// Dashboard loads the home screen counters. The three reads run concurrently
// and all of them must finish before the result is returned.
func (s *StatsService) Dashboard(childID, userID uuid.UUID) (*domain.Dashboard, error) {
	var d domain.Dashboard
	today := domain.TruncateDay(s.now())

	var g errgroup.Group
	g.Go(func() error {
		n, err := s.wordRepo.CountWords(childID, userID)
		d.TotalWords = n
		return err
	})
	g.Go(func() error {
		n, err := s.wordRepo.CountWordsOn(childID, userID, today)
		d.TodaysWords = n
		return err
	})
	g.Go(func() error {
		n, err := s.milestoneRepo.CountAchieved(childID, userID)
		d.AchievedMilestones = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	s.reconciler.ReconcileAsync(childID, userID)
	return &d, nil
}

// Statistics builds the full statistics view for a child
func (s *StatsService) Statistics(childID, userID uuid.UUID) (*domain.Statistics, error) {
	var (
		words      []domain.Word
		categories []domain.WordCategory
		milestones []domain.Milestone
	)

	var g errgroup.Group
	g.Go(func() (err error) {
		words, err = s.wordRepo.ListWords(childID, userID, domain.WordFilter{})
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.categoryRepo.ListCategories()
		return err
	})
	g.Go(func() (err error) {
		milestones, err = s.milestoneRepo.ListMilestones(childID, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load statistics: %w", err)
	}

	now := s.now()
	today := domain.TruncateDay(now)
	weekStart := windowStart(today, weekDays)
	monthStart := windowStart(today, monthDays)

	stats := &domain.Statistics{TotalWords: len(words)}
	dates := make([]time.Time, 0, len(words))
	for _, w := range words {
		dates = append(dates, w.DateLearned)
		learned := domain.TruncateDay(w.DateLearned)
		if !learned.Before(weekStart) {
			stats.ThisWeek++
		}
		if !learned.Before(monthStart) {
			stats.ThisMonth++
		}
	}

	byID := make(map[uuid.UUID]domain.WordCategory, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	stats.ByCategory = categoryBreakdown(words, byID)
	for i, w := range words {
		if i == recentWordsLimit {
			break
		}
		stats.RecentWords = append(stats.RecentWords, domain.RecentWord{
			Word:     w.Word,
			Date:     w.DateLearned,
			Category: categoryOf(w, byID).Name,
		})
	}
	stats.Growth = domain.CumulativeGrowth(dates)
	stats.CurrentStreak, stats.LongestStreak = domain.Streaks(dates, now)

	stats.Milestones = len(milestones)
	var achieved []domain.Achievement
	for _, m := range milestones {
		if !m.Achieved {
			continue
		}
		stats.Achieved++
		if m.AchievedDate != nil {
			achieved = append(achieved, domain.Achievement{Title: m.Title, AchievedDate: *m.AchievedDate})
		}
	}
	stats.Percentage = domain.Percentage(stats.Achieved, stats.Milestones)
	sort.SliceStable(achieved, func(i, j int) bool {
		return achieved[i].AchievedDate.After(achieved[j].AchievedDate)
	})
	if len(achieved) > recentAchievements {
		achieved = achieved[:recentAchievements]
	}
	stats.RecentAchieved = achieved

	return stats, nil
}

// windowStart returns the first calendar day of the last n days ending today
func windowStart(today time.Time, n int) time.Time {
	return today.AddDate(0, 0, -(n - 1))
}

func categoryOf(w domain.Word, byID map[uuid.UUID]domain.WordCategory) domain.WordCategory {
	if w.CategoryID != nil {
		if c, ok := byID[*w.CategoryID]; ok {
			return c
		}
	}
	return domain.WordCategory{Name: unknownCategory, Color: unknownColor}
}

func categoryBreakdown(words []domain.Word, byID map[uuid.UUID]domain.WordCategory) []domain.CategoryCount {
	counts := make(map[string]*domain.CategoryCount)
	var order []string
	for _, w := range words {
		c := categoryOf(w, byID)
		cc, ok := counts[c.Name]
		if !ok {
			cc = &domain.CategoryCount{Name: c.Name, Color: c.Color}
			counts[c.Name] = cc
			order = append(order, c.Name)
		}
		cc.Count++
	}

	result := make([]domain.CategoryCount, 0, len(order))
	for _, name := range order {
		result = append(result, *counts[name])
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// Days returns paginated list of days with word counts
func (s *StatsService) Days(childID, userID uuid.UUID, page int) ([]domain.Day, int, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * daysPageSize
	days, err := s.wordRepo.GetDaysWithWords(childID, userID, daysPageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	totalDays, err := s.wordRepo.GetTotalDaysCount(childID, userID)
	if err != nil {
		return nil, 0, err
	}

	totalPages := (totalDays + daysPageSize - 1) / daysPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return days, totalPages, nil
}

// WordsOn returns the words learned on a day given in YYYYMMDD format
func (s *StatsService) WordsOn(childID, userID uuid.UUID, dateStr string) ([]domain.Word, error) {
	date, err := time.Parse("20060102", dateStr)
	if err != nil {
		return nil, domain.ValidationError{Field: "date", Message: "invalid date format"}
	}

	return s.wordRepo.ListWordsOn(childID, userID, date)
}
