package dto

import "studyquiz/internal/domain"

// UploadDocumentResponse returns the knowledge extracted from an
// uploaded study document.
// @Description Extracted document knowledge
type UploadDocumentResponse struct {
	DocumentName string `json:"document_name"`
	Type         string `json:"type"`
	Pages        int    `json:"pages,omitempty"`
	Sheets       int    `json:"sheets,omitempty"`
	Knowledge    string `json:"knowledge"`
}

// CreateQuizRequest asks for a quiz to be generated from knowledge text.
// @Description Request body for generating a quiz and starting a session
type CreateQuizRequest struct {
	UserID       string `json:"user_id"`
	DocumentName string `json:"document_name"`
	Knowledge    string `json:"knowledge"`
	NumQuestions int    `json:"num_questions"`
}

// CreateQuizResponse identifies the created session.
type CreateQuizResponse struct {
	SessionID      string `json:"session_id"`
	TotalQuestions int    `json:"total_questions"`
}

// QuestionResponse is the sanitized view of one question. It never
// carries the correct answer, acceptable answers, or explanation.
type QuestionResponse struct {
	ID             int                 `json:"id"`
	Type           domain.QuestionType `json:"type"`
	Question       string              `json:"question"`
	Options        []string            `json:"options,omitempty"`
	QuestionNum    int                 `json:"question_num"`
	TotalQuestions int                 `json:"total_questions"`
	CurrentScore   int                 `json:"current_score"`
}

// SubmitAnswerRequest carries a user's answer to one question.
// @Description Request body for submitting an answer
type SubmitAnswerRequest struct {
	QuestionNum int    `json:"question_num"`
	Answer      string `json:"answer"`
}

// SubmitAnswerResponse is the grading outcome for one submission.
type SubmitAnswerResponse struct {
	IsCorrect      bool   `json:"is_correct"`
	CorrectAnswer  string `json:"correct_answer"`
	Explanation    string `json:"explanation"`
	CurrentScore   int    `json:"current_score"`
	TotalQuestions int    `json:"total_questions"`
}

// QuizResultsResponse summarizes a session, usable mid-quiz or after
// completion.
type QuizResultsResponse struct {
	DocumentName    string                `json:"document_name"`
	TotalQuestions  int                   `json:"total_questions"`
	CorrectAnswers  int                   `json:"correct_answers"`
	ScorePercentage int                   `json:"score_percentage"`
	QuestionsReview []domain.AnswerRecord `json:"questions_review"`
}

// HistoryResponse lists a user's completed quizzes, most recent first.
type HistoryResponse struct {
	Quizzes []domain.HistoryEntry `json:"quizzes"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
