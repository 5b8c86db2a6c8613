package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"wordsprout/internal/domain"

	"github.com/google/uuid"
)

// ChildRepo implements repository.ChildRepository
type ChildRepo struct {
	db *sql.DB
}

// NewChildRepo creates a new child repository
func NewChildRepo(db *sql.DB) *ChildRepo {
	return &ChildRepo{db: db}
}

const childColumns = `id, user_id, name, birthdate, avatar, created_at, updated_at`

// CreateChild creates a child profile owned by userID
func (r *ChildRepo) CreateChild(userID uuid.UUID, name string, birthdate time.Time, avatar string) (*domain.Child, error) {
	query := `
		INSERT INTO children (user_id, name, birthdate, avatar)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	c := &domain.Child{UserID: userID, Name: name, Birthdate: birthdate, Avatar: avatar}
	err := r.db.QueryRow(query, userID, name, birthdate, avatar).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}
	return c, nil
}

// GetChild returns the child if it exists and is owned by userID, otherwise nil
func (r *ChildRepo) GetChild(childID, userID uuid.UUID) (*domain.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children WHERE id = $1 AND user_id = $2`

	c, err := scanChild(r.db.QueryRow(query, childID, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	return c, nil
}

// ListChildren returns the user's children, oldest profile first
func (r *ChildRepo) ListChildren(userID uuid.UUID) ([]domain.Child, error) {
	query := `
		SELECT ` + childColumns + `
		FROM children
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	return r.list(query, userID)
}

// ListAllChildren returns every child profile
func (r *ChildRepo) ListAllChildren() ([]domain.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children ORDER BY created_at ASC`
	return r.list(query)
}

// DeleteChild deletes a child profile; words and milestones go with it
func (r *ChildRepo) DeleteChild(childID, userID uuid.UUID) (bool, error) {
	query := `DELETE FROM children WHERE id = $1 AND user_id = $2`
	res, err := r.db.Exec(query, childID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete child: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete child: %w", err)
	}
	return n > 0, nil
}

func (r *ChildRepo) list(query string, args ...interface{}) ([]domain.Child, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	var children []domain.Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		children = append(children, *c)
	}

	return children, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChild(row rowScanner) (*domain.Child, error) {
	var c domain.Child
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Birthdate, &c.Avatar, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
