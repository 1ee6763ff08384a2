package domain

import "context"

// QuizGenerator defines the interface for generating quiz questions from
// extracted knowledge text. Implementations are LLM-backed; calls are
// long-running and must honor ctx cancellation.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, knowledge string, numQuestions int) ([]Question, error)
}
