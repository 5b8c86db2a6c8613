package postgres

import (
	"database/sql/driver"
	"fmt"
	"testing"
	"time"

	"wordsprout/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var wordCols = []string{"id", "child_id", "user_id", "category_id", "word", "date_learned", "notes", "created_at"}

func TestWordRepo_CreateWord(t *testing.T) {
	childID, userID, categoryID := uuid.New(), uuid.New(), uuid.New()
	learned := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		categoryID   *uuid.UUID
		notes        string
		expectedCat  interface{}
		expectedNote interface{}
	}{
		{
			name:         "with category and notes",
			categoryID:   &categoryID,
			notes:        "said it at lunch",
			expectedCat:  categoryID,
			expectedNote: "said it at lunch",
		},
		{
			name:         "uncategorized without notes",
			expectedCat:  nil,
			expectedNote: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewWordRepo(db)
			wordID := uuid.New()

			mock.ExpectQuery("INSERT INTO words \\(word, category_id, child_id, user_id, date_learned, notes\\)").
				WithArgs("ball", tt.expectedCat, childID, userID, learned, tt.expectedNote).
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(wordID.String(), time.Now()))

			created, err := repo.CreateWord(&domain.Word{
				ChildID:     childID,
				UserID:      userID,
				CategoryID:  tt.categoryID,
				Word:        "ball",
				DateLearned: learned,
				Notes:       tt.notes,
			})

			assert.NoError(t, err)
			assert.Equal(t, wordID, created.ID)
			assert.Equal(t, "ball", created.Word)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepo_GetWord(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)
	wordID, childID, userID, categoryID := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery("FROM words WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(wordID, userID).
		WillReturnRows(sqlmock.NewRows(wordCols).
			AddRow(wordID.String(), childID.String(), userID.String(), categoryID.String(), "dog", time.Now(), nil, time.Now()))

	word, err := repo.GetWord(wordID, userID)

	assert.NoError(t, err)
	assert.Equal(t, childID, word.ChildID)
	assert.Equal(t, &categoryID, word.CategoryID)
	assert.Equal(t, "", word.Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_GetWord_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)
	wordID, userID := uuid.New(), uuid.New()

	mock.ExpectQuery("FROM words WHERE id").WithArgs(wordID, userID).WillReturnRows(sqlmock.NewRows(wordCols))

	word, err := repo.GetWord(wordID, userID)

	assert.NoError(t, err)
	assert.Nil(t, word)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_DeleteWord(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)
	wordID, userID := uuid.New(), uuid.New()

	mock.ExpectExec("DELETE FROM words WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(wordID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteWord(wordID, userID)

	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_ListWords(t *testing.T) {
	childID, userID, categoryID := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name   string
		filter domain.WordFilter
		query  string
		args   []driver.Value
	}{
		{
			name:   "no filter",
			filter: domain.WordFilter{},
			query:  "WHERE child_id = \\$1 AND user_id = \\$2 ORDER BY date_learned DESC",
			args:   []driver.Value{childID, userID},
		},
		{
			name:   "search escapes wildcards",
			filter: domain.WordFilter{Search: " 100%_ "},
			query:  "AND word ILIKE \\$3 ORDER BY",
			args:   []driver.Value{childID, userID, `%100\%\_%`},
		},
		{
			name:   "search and category",
			filter: domain.WordFilter{Search: "ba", CategoryID: &categoryID},
			query:  "AND word ILIKE \\$3 AND category_id = \\$4",
			args:   []driver.Value{childID, userID, "%ba%", categoryID},
		},
		{
			name:   "category only",
			filter: domain.WordFilter{CategoryID: &categoryID},
			query:  "AND category_id = \\$3",
			args:   []driver.Value{childID, userID, categoryID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewWordRepo(db)

			rows := sqlmock.NewRows(wordCols).
				AddRow(uuid.NewString(), childID.String(), userID.String(), nil, "ball", time.Now(), "note", time.Now())

			mock.ExpectQuery(tt.query).WithArgs(tt.args...).WillReturnRows(rows)

			words, err := repo.ListWords(childID, userID, tt.filter)

			assert.NoError(t, err)
			assert.Len(t, words, 1)
			assert.Nil(t, words[0].CategoryID)
			assert.Equal(t, "note", words[0].Notes)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepo_ListWordsOn(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)
	childID, userID := uuid.New(), uuid.New()
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(wordCols).
		AddRow(uuid.NewString(), childID.String(), userID.String(), nil, "cat", day, nil, time.Now()).
		AddRow(uuid.NewString(), childID.String(), userID.String(), nil, "cow", day, nil, time.Now())

	mock.ExpectQuery("WHERE child_id = \\$1 AND user_id = \\$2 AND date_learned = \\$3").
		WithArgs(childID, userID, "2024-06-10").
		WillReturnRows(rows)

	words, err := repo.ListWordsOn(childID, userID, day)

	assert.NoError(t, err)
	assert.Len(t, words, 2)
	assert.Equal(t, "cat", words[0].Word)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_GetRandomWords(t *testing.T) {
	childID, userID := uuid.New(), uuid.New()

	tests := []struct {
		name      string
		mockSetup func(mock sqlmock.Sqlmock)
		expected  int
		wantErr   bool
	}{
		{
			name: "words found",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(wordCols).
					AddRow(uuid.NewString(), childID.String(), userID.String(), nil, "ball", time.Now(), nil, time.Now()).
					AddRow(uuid.NewString(), childID.String(), userID.String(), nil, "dog", time.Now(), nil, time.Now())
				mock.ExpectQuery("WHERE child_id = \\$1 AND user_id = \\$2\\s+ORDER BY RANDOM\\(\\)\\s+LIMIT \\$3").
					WithArgs(childID, userID, 20).
					WillReturnRows(rows)
			},
			expected: 2,
		},
		{
			name: "no words",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("ORDER BY RANDOM").
					WithArgs(childID, userID, 20).
					WillReturnRows(sqlmock.NewRows(wordCols))
			},
			expected: 0,
		},
		{
			name: "database error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("ORDER BY RANDOM").
					WithArgs(childID, userID, 20).
					WillReturnError(fmt.Errorf("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			tt.mockSetup(mock)

			repo := NewWordRepo(db)
			words, err := repo.GetRandomWords(childID, userID, 20)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, words, tt.expected)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepo_CountWords(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)
	childID, userID := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM words WHERE child_id = \\$1 AND user_id = \\$2").
		WithArgs(childID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountWords(childID, userID)

	assert.NoError(t, err)
	assert.Equal(t, 42, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_CountWords_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)
	childID, userID := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT COUNT").WithArgs(childID, userID).WillReturnError(fmt.Errorf("timeout"))

	count, err := repo.CountWords(childID, userID)

	assert.Error(t, err)
	assert.Equal(t, 0, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_CountWordsOn(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)
	childID, userID := uuid.New(), uuid.New()

	mock.ExpectQuery("AND date_learned = \\$3").
		WithArgs(childID, userID, "2024-05-01").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountWordsOn(childID, userID, time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_GetDaysWithWords(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)
	childID, userID := uuid.New(), uuid.New()

	rows := sqlmock.NewRows([]string{"day", "count"}).
		AddRow(time.Now(), 5).
		AddRow(time.Now().AddDate(0, 0, -1), 3)

	mock.ExpectQuery("SELECT date_learned AS day, COUNT\\(\\*\\) AS count").
		WithArgs(childID, userID, 7, 0).
		WillReturnRows(rows)

	days, err := repo.GetDaysWithWords(childID, userID, 7, 0)

	assert.NoError(t, err)
	assert.Len(t, days, 2)
	assert.Equal(t, 5, days[0].WordCount)
	assert.Equal(t, 3, days[1].WordCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_GetDaysWithWords_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)
	childID, userID := uuid.New(), uuid.New()

	// Create rows with wrong column type to cause scan error
	rows := sqlmock.NewRows([]string{"day", "count"}).AddRow("invalid", 5)

	mock.ExpectQuery("SELECT date_learned AS day").
		WithArgs(childID, userID, 7, 0).
		WillReturnRows(rows)

	days, err := repo.GetDaysWithWords(childID, userID, 7, 0)

	assert.Error(t, err)
	assert.Nil(t, days)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_GetTotalDaysCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewWordRepo(db)
	childID, userID := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT COUNT\\(DISTINCT date_learned\\)").
		WithArgs(childID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(14))

	count, err := repo.GetTotalDaysCount(childID, userID)

	assert.NoError(t, err)
	assert.Equal(t, 14, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
