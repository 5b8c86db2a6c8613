package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"wordsprout/internal/domain"

	"github.com/google/uuid"
)

// WordRepo implements repository.WordRepository
type WordRepo struct {
	db *sql.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sql.DB) *WordRepo {
	return &WordRepo{db: db}
}

const wordColumns = `id, child_id, user_id, category_id, word, date_learned, notes, created_at`

// CreateWord inserts a word and returns it with the database-assigned id
func (r *WordRepo) CreateWord(w *domain.Word) (*domain.Word, error) {
	query := `
		INSERT INTO words (word, category_id, child_id, user_id, date_learned, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	created := *w
	err := r.db.QueryRow(query,
		w.Word, nullUUID(w.CategoryID), w.ChildID, w.UserID, w.DateLearned, nullString(w.Notes),
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create word: %w", err)
	}
	return &created, nil
}

// GetWord returns the word if owned by userID, otherwise nil
func (r *WordRepo) GetWord(wordID, userID uuid.UUID) (*domain.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE id = $1 AND user_id = $2`

	w, err := scanWord(r.db.QueryRow(query, wordID, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return w, nil
}

// DeleteWord removes a word owned by userID
func (r *WordRepo) DeleteWord(wordID, userID uuid.UUID) (bool, error) {
	query := `DELETE FROM words WHERE id = $1 AND user_id = $2`
	res, err := r.db.Exec(query, wordID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete word: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete word: %w", err)
	}
	return n > 0, nil
}

// ListWords returns the child's words, newest first, narrowed by filter
func (r *WordRepo) ListWords(childID, userID uuid.UUID, filter domain.WordFilter) ([]domain.Word, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + wordColumns + ` FROM words WHERE child_id = $1 AND user_id = $2`)
	args := []interface{}{childID, userID}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		fmt.Fprintf(&b, ` AND word ILIKE $%d`, len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		fmt.Fprintf(&b, ` AND category_id = $%d`, len(args))
	}
	b.WriteString(` ORDER BY date_learned DESC, created_at DESC`)

	return r.queryWords(b.String(), args...)
}

// ListWordsOn returns the words learned on a calendar date
func (r *WordRepo) ListWordsOn(childID, userID uuid.UUID, date time.Time) ([]domain.Word, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE child_id = $1 AND user_id = $2 AND date_learned = $3
		ORDER BY created_at DESC
	`
	return r.queryWords(query, childID, userID, date.Format(domain.DateLayout))
}

// GetRandomWords returns up to limit of the child's words in random order
func (r *WordRepo) GetRandomWords(childID, userID uuid.UUID, limit int) ([]domain.Word, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE child_id = $1 AND user_id = $2
		ORDER BY RANDOM()
		LIMIT $3
	`
	return r.queryWords(query, childID, userID, limit)
}

// CountWords returns the total number of words for a child
func (r *WordRepo) CountWords(childID, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM words WHERE child_id = $1 AND user_id = $2`

	var count int
	if err := r.db.QueryRow(query, childID, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}

// CountWordsOn returns the number of words learned on a calendar date
func (r *WordRepo) CountWordsOn(childID, userID uuid.UUID, date time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM words WHERE child_id = $1 AND user_id = $2 AND date_learned = $3`

	var count int
	if err := r.db.QueryRow(query, childID, userID, date.Format(domain.DateLayout)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}

// GetDaysWithWords returns days that have words with counts, newest first
func (r *WordRepo) GetDaysWithWords(childID, userID uuid.UUID, limit, offset int) ([]domain.Day, error) {
	query := `
		SELECT date_learned AS day, COUNT(*) AS count
		FROM words
		WHERE child_id = $1 AND user_id = $2
		GROUP BY date_learned
		ORDER BY day DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(query, childID, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []domain.Day
	for rows.Next() {
		var d domain.Day
		if err := rows.Scan(&d.Date, &d.WordCount); err != nil {
			return nil, err
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// GetTotalDaysCount returns total number of days with words
func (r *WordRepo) GetTotalDaysCount(childID, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(DISTINCT date_learned) FROM words WHERE child_id = $1 AND user_id = $2`

	var count int
	err := r.db.QueryRow(query, childID, userID).Scan(&count)
	return count, err
}

func (r *WordRepo) queryWords(query string, args ...interface{}) ([]domain.Word, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []domain.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, *w)
	}

	return words, rows.Err()
}

func scanWord(row rowScanner) (*domain.Word, error) {
	var w domain.Word
	var categoryID uuid.NullUUID
	var notes sql.NullString
	if err := row.Scan(&w.ID, &w.ChildID, &w.UserID, &categoryID, &w.Word, &w.DateLearned, &notes, &w.CreatedAt); err != nil {
		return nil, err
	}
	if categoryID.Valid {
		id := categoryID.UUID
		w.CategoryID = &id
	}
	w.Notes = notes.String
	return &w, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
