package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"studyquiz/internal/domain"
	"studyquiz/internal/repository/models"
	"studyquiz/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxHistoryStore implements domain.HistoryStore using sqlx.
type sqlxHistoryStore struct {
	db    *sqlx.DB
	now   func() time.Time
	newID func() string
}

// NewSQLXHistoryStore creates a new sqlx-backed history store.
func NewSQLXHistoryStore(db *sqlx.DB) domain.HistoryStore {
	return &sqlxHistoryStore{
		db:    db,
		now:   time.Now,
		newID: util.NewULID,
	}
}

func toModelQuizHistory(userID string, entry *domain.HistoryEntry) *models.QuizHistory {
	return &models.QuizHistory{
		UserID:           userID,
		QuizID:           entry.QuizID,
		DocumentName:     entry.DocumentName,
		CompletedAt:      entry.CompletedAt,
		TotalQuestions:   entry.TotalQuestions,
		CorrectAnswers:   entry.CorrectAnswers,
		ScorePercentage:  entry.ScorePercentage,
		TimeTakenSeconds: entry.TimeTakenSeconds,
		QuestionsReview:  models.AnswerRecordList(entry.QuestionsReview),
	}
}

func toDomainHistoryEntry(model *models.QuizHistory) domain.HistoryEntry {
	review := model.QuestionsReview
	if review == nil {
		review = models.AnswerRecordList{}
	}
	return domain.HistoryEntry{
		QuizID:           model.QuizID,
		DocumentName:     model.DocumentName,
		CompletedAt:      model.CompletedAt,
		TotalQuestions:   model.TotalQuestions,
		CorrectAnswers:   model.CorrectAnswers,
		ScorePercentage:  model.ScorePercentage,
		TimeTakenSeconds: model.TimeTakenSeconds,
		QuestionsReview:  []domain.AnswerRecord(review),
	}
}

// Append implements domain.HistoryStore. The insert and the trim to the
// most recent entries run in one transaction so the cap survives
// concurrent completions.
func (s *sqlxHistoryStore) Append(ctx context.Context, userID string, entry *domain.HistoryEntry) error {
	model := toModelQuizHistory(userID, entry)
	model.ID = s.newID()
	model.CreatedAt = s.now().UTC()

	reviewVal, err := model.QuestionsReview.Value()
	if err != nil {
		return domain.NewStorageError("failed to encode questions review", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.NewStorageError("failed to begin history transaction", err)
	}
	defer tx.Rollback()

	insertQuery := `INSERT INTO quiz_history (ID, USER_ID, QUIZ_ID, DOCUMENT_NAME, COMPLETED_AT, TOTAL_QUESTIONS, CORRECT_ANSWERS, SCORE_PERCENTAGE, TIME_TAKEN_SECONDS, QUESTIONS_REVIEW, CREATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11)`

	_, err = tx.ExecContext(ctx, insertQuery,
		model.ID,
		model.UserID,
		model.QuizID,
		model.DocumentName,
		model.CompletedAt,
		model.TotalQuestions,
		model.CorrectAnswers,
		model.ScorePercentage,
		model.TimeTakenSeconds,
		reviewVal,
		model.CreatedAt,
	)
	if err != nil {
		return domain.NewStorageError("failed to insert history entry", err)
	}

	trimQuery := `DELETE FROM quiz_history WHERE id IN (
		SELECT id FROM (
			SELECT id, ROW_NUMBER() OVER (ORDER BY completed_at DESC, created_at DESC) rn
			FROM quiz_history WHERE user_id = :1
		) WHERE rn > :2
	)`

	if _, err = tx.ExecContext(ctx, trimQuery, userID, domain.MaxHistoryEntries); err != nil {
		return domain.NewStorageError("failed to trim history", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStorageError("failed to commit history transaction", err)
	}
	return nil
}

// List implements domain.HistoryStore. A user with no rows gets an empty
// slice, not an error.
func (s *sqlxHistoryStore) List(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	query := `SELECT ID, USER_ID, QUIZ_ID, DOCUMENT_NAME, COMPLETED_AT, TOTAL_QUESTIONS, CORRECT_ANSWERS, SCORE_PERCENTAGE, TIME_TAKEN_SECONDS, QUESTIONS_REVIEW, CREATED_AT
		FROM quiz_history
		WHERE user_id = :1
		ORDER BY completed_at DESC, created_at DESC
		FETCH FIRST :2 ROWS ONLY`

	var rows []models.QuizHistory
	err := s.db.SelectContext(ctx, &rows, query, userID, domain.MaxHistoryEntries)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []domain.HistoryEntry{}, nil
		}
		return nil, domain.NewStorageError("failed to list history", err)
	}

	entries := make([]domain.HistoryEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, toDomainHistoryEntry(&rows[i]))
	}
	return entries, nil
}
