package domain

import "time"

// AnswerRecord captures the grading outcome for one answered question.
// Records are append-only; a session's CorrectCount always equals the
// number of records with IsCorrect set.
type AnswerRecord struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// Session represents one in-progress quiz attempt. It exists from creation
// until explicit deletion or promotion into history.
type Session struct {
	SessionID       string         `json:"session_id"`
	UserID          string         `json:"user_id"`
	DocumentName    string         `json:"document_name"`
	CreatedAt       time.Time      `json:"created_at"`
	StartTime       time.Time      `json:"start_time"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Questions       []Question     `json:"questions"`
	UserAnswers     []AnswerRecord `json:"user_answers"`
	CurrentQuestion int            `json:"current_question"`
	CorrectCount    int            `json:"correct_count"`
}

// TotalQuestions returns the fixed question count of the session.
func (s *Session) TotalQuestions() int {
	return len(s.Questions)
}

// QuestionAt returns question num, or an error when num is outside
// [0, len(questions)).
func (s *Session) QuestionAt(num int) (*Question, error) {
	if num < 0 || num >= len(s.Questions) {
		return nil, NewInvalidQuestionNumError(num, len(s.Questions))
	}
	return &s.Questions[num], nil
}

// RecordAnswer appends a grading outcome and advances the cursor past
// question num. CorrectCount stays in step with the appended record.
func (s *Session) RecordAnswer(num int, record AnswerRecord) {
	s.UserAnswers = append(s.UserAnswers, record)
	if record.IsCorrect {
		s.CorrectCount++
	}
	s.CurrentQuestion = num + 1
}
