package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"wordsprout/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, email, password_hash, telegram_id, created_at`

// CreateUser inserts a new account; the id is assigned by the database
func (r *UserRepo) CreateUser(email, passwordHash string) (*domain.User, error) {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	u := &domain.User{Email: email, PasswordHash: passwordHash}
	if err := r.db.QueryRow(query, email, passwordHash).Scan(&u.ID, &u.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns the user with the given email or nil
func (r *UserRepo) GetUserByEmail(email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getUser(query, email)
}

// GetUserByID returns the user with the given id or nil
func (r *UserRepo) GetUserByID(userID uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getUser(query, userID)
}

// GetUserByTelegramID returns the user linked to a Telegram account or nil
func (r *UserRepo) GetUserByTelegramID(telegramID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`
	return r.getUser(query, telegramID)
}

// SetTelegramID links a Telegram account to the user
func (r *UserRepo) SetTelegramID(userID uuid.UUID, telegramID int64) error {
	query := `
		UPDATE users
		SET telegram_id = $1, updated_at = NOW()
		WHERE id = $2
	`
	if _, err := r.db.Exec(query, telegramID, userID); err != nil {
		return fmt.Errorf("failed to link telegram account: %w", err)
	}
	return nil
}

func (r *UserRepo) getUser(query string, arg interface{}) (*domain.User, error) {
	var u domain.User
	var telegramID sql.NullInt64
	err := r.db.QueryRow(query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &telegramID, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if telegramID.Valid {
		id := telegramID.Int64
		u.TelegramID = &id
	}
	return &u, nil
}
