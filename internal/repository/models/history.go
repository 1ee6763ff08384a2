package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"studyquiz/internal/domain"
)

// AnswerRecordList stores a quiz's answer review as a JSON document in a
// single CLOB column.
type AnswerRecordList []domain.AnswerRecord

// Value implements the driver.Valuer interface
func (l AnswerRecordList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (l *AnswerRecordList) Scan(value interface{}) error {
	if value == nil {
		*l = AnswerRecordList{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("AnswerRecordList Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*l = AnswerRecordList{}
		return nil
	}

	return json.Unmarshal(bytesToParse, l)
}

// QuizHistory is the database row for one completed quiz attempt.
type QuizHistory struct {
	ID               string           `db:"ID"`
	UserID           string           `db:"USER_ID"`
	QuizID           string           `db:"QUIZ_ID"`
	DocumentName     string           `db:"DOCUMENT_NAME"`
	CompletedAt      time.Time        `db:"COMPLETED_AT"`
	TotalQuestions   int              `db:"TOTAL_QUESTIONS"`
	CorrectAnswers   int              `db:"CORRECT_ANSWERS"`
	ScorePercentage  int              `db:"SCORE_PERCENTAGE"`
	TimeTakenSeconds int              `db:"TIME_TAKEN_SECONDS"`
	QuestionsReview  AnswerRecordList `db:"QUESTIONS_REVIEW"`
	CreatedAt        time.Time        `db:"CREATED_AT"`
}

func (QuizHistory) TableName() string {
	return "quiz_history"
}
