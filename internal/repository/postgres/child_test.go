package postgres

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var childCols = []string{"id", "user_id", "name", "birthdate", "avatar", "created_at", "updated_at"}

func TestChildRepo_CreateChild(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewChildRepo(db)
	userID := uuid.New()
	childID := uuid.New()
	birthdate := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO children \\(user_id, name, birthdate, avatar\\)").
		WithArgs(userID, "Mia", birthdate, "👶").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(childID.String(), now, now))

	child, err := repo.CreateChild(userID, "Mia", birthdate, "👶")

	assert.NoError(t, err)
	assert.Equal(t, childID, child.ID)
	assert.Equal(t, userID, child.UserID)
	assert.Equal(t, "Mia", child.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChildRepo_GetChild(t *testing.T) {
	userID := uuid.New()
	childID := uuid.New()

	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expectedNil   bool
		expectedError bool
	}{
		{
			name: "owned child",
			mockRows: sqlmock.NewRows(childCols).
				AddRow(childID.String(), userID.String(), "Mia", time.Now(), "👶", time.Now(), time.Now()),
		},
		{
			name:        "not owned or missing",
			mockRows:    sqlmock.NewRows(childCols),
			expectedNil: true,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewChildRepo(db)

			query := "FROM children WHERE id = \\$1 AND user_id = \\$2"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(childID, userID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(childID, userID).WillReturnRows(tt.mockRows)
			}

			child, err := repo.GetChild(childID, userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, child)
			} else {
				assert.Equal(t, childID, child.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestChildRepo_ListChildren(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewChildRepo(db)
	userID := uuid.New()

	rows := sqlmock.NewRows(childCols).
		AddRow(uuid.NewString(), userID.String(), "Mia", time.Now(), "👶", time.Now(), time.Now()).
		AddRow(uuid.NewString(), userID.String(), "Leo", time.Now(), "🧒", time.Now(), time.Now())

	mock.ExpectQuery("FROM children WHERE user_id = \\$1 ORDER BY created_at ASC").
		WithArgs(userID).
		WillReturnRows(rows)

	children, err := repo.ListChildren(userID)

	assert.NoError(t, err)
	assert.Len(t, children, 2)
	assert.Equal(t, "Mia", children[0].Name)
	assert.Equal(t, "Leo", children[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChildRepo_ListChildren_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewChildRepo(db)
	userID := uuid.New()

	rows := sqlmock.NewRows(childCols).
		AddRow("not-a-uuid", userID.String(), "Mia", time.Now(), "👶", time.Now(), time.Now())

	mock.ExpectQuery("FROM children WHERE user_id").WithArgs(userID).WillReturnRows(rows)

	children, err := repo.ListChildren(userID)

	assert.Error(t, err)
	assert.Nil(t, children)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChildRepo_DeleteChild(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		expected bool
	}{
		{name: "deleted", affected: 1, expected: true},
		{name: "nothing to delete", affected: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewChildRepo(db)
			userID := uuid.New()
			childID := uuid.New()

			mock.ExpectExec("DELETE FROM children WHERE id = \\$1 AND user_id = \\$2").
				WithArgs(childID, userID).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			deleted, err := repo.DeleteChild(childID, userID)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, deleted)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
