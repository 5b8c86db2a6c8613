package postgres

import (
	"database/sql"
	"fmt"

	"wordsprout/internal/domain"

	"github.com/google/uuid"
)

// MilestoneRepo implements repository.MilestoneRepository
type MilestoneRepo struct {
	db *sql.DB
}

// NewMilestoneRepo creates a new milestone repository
func NewMilestoneRepo(db *sql.DB) *MilestoneRepo {
	return &MilestoneRepo{db: db}
}

const milestoneColumns = `id, child_id, user_id, title, description, milestone_type,
	target_value, current_value, achieved, achieved_date, icon`

// CreateDefaultMilestones seeds the canonical milestones for a new child
func (r *MilestoneRepo) CreateDefaultMilestones(childID, userID uuid.UUID) error {
	query := `SELECT create_default_milestones_for_child($1, $2)`
	if _, err := r.db.Exec(query, childID, userID); err != nil {
		return fmt.Errorf("failed to create default milestones: %w", err)
	}
	return nil
}

// ListMilestones returns all milestones for a child
func (r *MilestoneRepo) ListMilestones(childID, userID uuid.UUID) ([]domain.Milestone, error) {
	query := `
		SELECT ` + milestoneColumns + `
		FROM milestones
		WHERE child_id = $1 AND user_id = $2
		ORDER BY milestone_type DESC, target_value ASC, created_at ASC
	`
	return r.list(query, childID, userID)
}

// GetMilestonesByType returns a child's milestones of one type
func (r *MilestoneRepo) GetMilestonesByType(childID, userID uuid.UUID, milestoneType string) ([]domain.Milestone, error) {
	query := `
		SELECT ` + milestoneColumns + `
		FROM milestones
		WHERE child_id = $1 AND user_id = $2 AND milestone_type = $3
		ORDER BY target_value ASC
	`
	return r.list(query, childID, userID, milestoneType)
}

// GetMilestone returns a milestone owned by userID, otherwise nil
func (r *MilestoneRepo) GetMilestone(milestoneID, userID uuid.UUID) (*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = $1 AND user_id = $2`
	return r.get(query, milestoneID, userID)
}

// GetNextMilestone returns the unachieved milestone with the lowest target, or nil
func (r *MilestoneRepo) GetNextMilestone(childID, userID uuid.UUID) (*domain.Milestone, error) {
	query := `
		SELECT ` + milestoneColumns + `
		FROM milestones
		WHERE child_id = $1 AND user_id = $2 AND achieved = FALSE
		ORDER BY target_value ASC
		LIMIT 1
	`
	return r.get(query, childID, userID)
}

// CountAchieved returns how many of the child's milestones are achieved
func (r *MilestoneRepo) CountAchieved(childID, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM milestones WHERE child_id = $1 AND user_id = $2 AND achieved = TRUE`

	var count int
	if err := r.db.QueryRow(query, childID, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count milestones: %w", err)
	}
	return count, nil
}

// UpdateMilestone writes a reconciliation or manual update.
// achieved and achieved_date are only touched when the update changes achievement.
func (r *MilestoneRepo) UpdateMilestone(userID uuid.UUID, update domain.MilestoneUpdate) error {
	var err error
	if update.SetAchievement {
		query := `
			UPDATE milestones
			SET current_value = $1, achieved = $2, achieved_date = $3, updated_at = NOW()
			WHERE id = $4 AND user_id = $5
		`
		var achievedDate sql.NullTime
		if update.AchievedDate != nil {
			achievedDate = sql.NullTime{Time: *update.AchievedDate, Valid: true}
		}
		_, err = r.db.Exec(query, update.CurrentValue, update.Achieved, achievedDate, update.ID, userID)
	} else {
		query := `
			UPDATE milestones
			SET current_value = $1, updated_at = NOW()
			WHERE id = $2 AND user_id = $3
		`
		_, err = r.db.Exec(query, update.CurrentValue, update.ID, userID)
	}
	if err != nil {
		return fmt.Errorf("failed to update milestone: %w", err)
	}
	return nil
}

func (r *MilestoneRepo) get(query string, args ...interface{}) (*domain.Milestone, error) {
	m, err := scanMilestone(r.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get milestone: %w", err)
	}
	return m, nil
}

func (r *MilestoneRepo) list(query string, args ...interface{}) ([]domain.Milestone, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query milestones: %w", err)
	}
	defer rows.Close()

	var milestones []domain.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		milestones = append(milestones, *m)
	}

	return milestones, rows.Err()
}

func scanMilestone(row rowScanner) (*domain.Milestone, error) {
	var m domain.Milestone
	var description sql.NullString
	var achievedDate sql.NullTime
	err := row.Scan(
		&m.ID, &m.ChildID, &m.UserID, &m.Title, &description, &m.MilestoneType,
		&m.TargetValue, &m.CurrentValue, &m.Achieved, &achievedDate, &m.Icon,
	)
	if err != nil {
		return nil, err
	}
	m.Description = description.String
	if achievedDate.Valid {
		t := achievedDate.Time
		m.AchievedDate = &t
	}
	return &m, nil
}
