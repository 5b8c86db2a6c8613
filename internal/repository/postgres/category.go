package postgres

import (
	"database/sql"
	"fmt"

	"wordsprout/internal/domain"
)

// CategoryRepo implements repository.CategoryRepository
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// ListCategories returns the shared taxonomy ordered by name
func (r *CategoryRepo) ListCategories() ([]domain.WordCategory, error) {
	query := `SELECT id, name, icon, color FROM word_categories ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.WordCategory
	for rows.Next() {
		var c domain.WordCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}
