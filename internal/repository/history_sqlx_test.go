package repository

import (
	"context"
	"testing"
	"time"

	"studyquiz/internal/domain"
	"studyquiz/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHistoryRowID = "01BX5ZZKBKACTAV9WEVGEMMVRZ"

// setupHistoryTestDB creates a new sqlx.DB instance and sqlmock for
// history store testing.
func setupHistoryTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func newTestHistoryStore(db *sqlx.DB) *sqlxHistoryStore {
	return &sqlxHistoryStore{
		db:    db,
		now:   fixedNow,
		newID: func() string { return testHistoryRowID },
	}
}

func testHistoryEntry() *domain.HistoryEntry {
	return &domain.HistoryEntry{
		QuizID:           testSessionID,
		DocumentName:     "biology.pdf",
		CompletedAt:      fixedNow(),
		TotalQuestions:   2,
		CorrectAnswers:   1,
		ScorePercentage:  50,
		TimeTakenSeconds: 95,
		QuestionsReview: []domain.AnswerRecord{
			{Question: "q1", UserAnswer: "paris", CorrectAnswer: "Paris", IsCorrect: false, Explanation: "capital"},
			{Question: "q2", UserAnswer: "BLUE", CorrectAnswer: "blue", IsCorrect: true},
		},
	}
}

func TestHistoryStoreAppend(t *testing.T) {
	db, mock := setupHistoryTestDB(t)
	defer db.Close()
	store := newTestHistoryStore(db)

	entry := testHistoryEntry()
	reviewVal, err := models.AnswerRecordList(entry.QuestionsReview).Value()
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO quiz_history`).
		WithArgs(
			testHistoryRowID,
			"user-1",
			entry.QuizID,
			entry.DocumentName,
			entry.CompletedAt,
			entry.TotalQuestions,
			entry.CorrectAnswers,
			entry.ScorePercentage,
			entry.TimeTakenSeconds,
			reviewVal,
			fixedNow().UTC(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`DELETE FROM quiz_history`).
		WithArgs("user-1", domain.MaxHistoryEntries).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err = store.Append(context.Background(), "user-1", entry)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryStoreAppendInsertFails(t *testing.T) {
	db, mock := setupHistoryTestDB(t)
	defer db.Close()
	store := newTestHistoryStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO quiz_history`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := store.Append(context.Background(), "user-1", testHistoryEntry())
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeStorageFailure, domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryStoreList(t *testing.T) {
	db, mock := setupHistoryTestDB(t)
	defer db.Close()
	store := newTestHistoryStore(db)

	completedAt := fixedNow()
	review := `[{"question":"q1","user_answer":"a","correct_answer":"a","is_correct":true,"explanation":""}]`

	rows := sqlmock.NewRows([]string{
		"ID", "USER_ID", "QUIZ_ID", "DOCUMENT_NAME", "COMPLETED_AT",
		"TOTAL_QUESTIONS", "CORRECT_ANSWERS", "SCORE_PERCENTAGE",
		"TIME_TAKEN_SECONDS", "QUESTIONS_REVIEW", "CREATED_AT",
	}).
		AddRow("row2", "user-1", "quiz2", "chemistry.pdf", completedAt, 5, 5, 100, 120, review, completedAt).
		AddRow("row1", "user-1", "quiz1", "biology.pdf", completedAt.Add(-time.Hour), 2, 1, 50, 95, review, completedAt.Add(-time.Hour))

	mock.ExpectQuery(`SELECT .* FROM quiz_history`).
		WithArgs("user-1", domain.MaxHistoryEntries).
		WillReturnRows(rows)

	entries, err := store.List(context.Background(), "user-1")
	assert.NoError(t, err)
	require.Len(t, entries, 2)

	// Most recent first
	assert.Equal(t, "quiz2", entries[0].QuizID)
	assert.Equal(t, 100, entries[0].ScorePercentage)
	assert.Equal(t, "quiz1", entries[1].QuizID)
	require.Len(t, entries[0].QuestionsReview, 1)
	assert.True(t, entries[0].QuestionsReview[0].IsCorrect)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryStoreListEmpty(t *testing.T) {
	db, mock := setupHistoryTestDB(t)
	defer db.Close()
	store := newTestHistoryStore(db)

	rows := sqlmock.NewRows([]string{
		"ID", "USER_ID", "QUIZ_ID", "DOCUMENT_NAME", "COMPLETED_AT",
		"TOTAL_QUESTIONS", "CORRECT_ANSWERS", "SCORE_PERCENTAGE",
		"TIME_TAKEN_SECONDS", "QUESTIONS_REVIEW", "CREATED_AT",
	})

	mock.ExpectQuery(`SELECT .* FROM quiz_history`).
		WithArgs("unknown-user", domain.MaxHistoryEntries).
		WillReturnRows(rows)

	entries, err := store.List(context.Background(), "unknown-user")
	assert.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)
}

func TestHistoryConverters(t *testing.T) {
	entry := testHistoryEntry()
	model := toModelQuizHistory("user-1", entry)
	assert.Equal(t, "user-1", model.UserID)
	assert.Equal(t, entry.QuizID, model.QuizID)
	assert.Len(t, model.QuestionsReview, 2)

	back := toDomainHistoryEntry(model)
	assert.Equal(t, *entry, back)

	// nil review scans back as an empty slice
	model.QuestionsReview = nil
	back = toDomainHistoryEntry(model)
	assert.NotNil(t, back.QuestionsReview)
	assert.Empty(t, back.QuestionsReview)
}
