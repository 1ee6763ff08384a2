package domain

import "time"

// MaxHistoryEntries caps the per-user quiz history; the oldest entries
// beyond the cap are discarded on append.
const MaxHistoryEntries = 50

// HistoryEntry is an immutable record of one completed quiz attempt.
type HistoryEntry struct {
	QuizID           string         `json:"quiz_id"`
	DocumentName     string         `json:"document_name"`
	CompletedAt      time.Time      `json:"completed_at"`
	TotalQuestions   int            `json:"total_questions"`
	CorrectAnswers   int            `json:"correct_answers"`
	ScorePercentage  int            `json:"score_percentage"`
	TimeTakenSeconds int            `json:"time_taken_seconds"`
	QuestionsReview  []AnswerRecord `json:"questions_review"`
}

// NewHistoryEntryFromSession builds the history record for a finished
// session. Elapsed time is wall-clock from StartTime to completedAt,
// truncated to whole seconds.
func NewHistoryEntryFromSession(s *Session, completedAt time.Time) *HistoryEntry {
	return &HistoryEntry{
		QuizID:           s.SessionID,
		DocumentName:     s.DocumentName,
		CompletedAt:      completedAt,
		TotalQuestions:   s.TotalQuestions(),
		CorrectAnswers:   s.CorrectCount,
		ScorePercentage:  ScorePercentage(s.CorrectCount, s.TotalQuestions()),
		TimeTakenSeconds: int(completedAt.Sub(s.StartTime).Seconds()),
		QuestionsReview:  s.UserAnswers,
	}
}
