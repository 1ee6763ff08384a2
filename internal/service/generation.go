package service

import (
	"context"
	"strings"

	"studyquiz/internal/config"
	"studyquiz/internal/domain"
	"studyquiz/internal/logger"

	"go.uber.org/zap"
)

// QuizGenerationService turns extracted knowledge text into a validated
// question set, clamping the requested count to configured bounds.
type QuizGenerationService interface {
	GenerateQuestions(ctx context.Context, knowledge string, numQuestions int) ([]domain.Question, error)
}

// quizGenerationService implements QuizGenerationService
type quizGenerationService struct {
	generator domain.QuizGenerator
	cfg       *config.Config
}

// NewQuizGenerationService creates a new instance of quizGenerationService
func NewQuizGenerationService(generator domain.QuizGenerator, cfg *config.Config) QuizGenerationService {
	return &quizGenerationService{
		generator: generator,
		cfg:       cfg,
	}
}

// GenerateQuestions implements QuizGenerationService. Empty knowledge is
// rejected before any LLM call is made.
func (s *quizGenerationService) GenerateQuestions(ctx context.Context, knowledge string, numQuestions int) ([]domain.Question, error) {
	if strings.TrimSpace(knowledge) == "" {
		return nil, domain.NewInvalidInputError("knowledge is required")
	}

	if numQuestions <= 0 {
		numQuestions = s.cfg.Quiz.DefaultNumQuestions
	}
	if max := s.cfg.Quiz.MaxNumQuestions; max > 0 && numQuestions > max {
		numQuestions = max
	}

	questions, err := s.generator.GenerateQuiz(ctx, knowledge, numQuestions)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, domain.NewLLMServiceError(nil)
	}

	logger.Get().Info("Generated quiz questions",
		zap.Int("requested", numQuestions),
		zap.Int("generated", len(questions)))
	return questions, nil
}
