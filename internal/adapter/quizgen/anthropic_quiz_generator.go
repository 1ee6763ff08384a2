package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"studyquiz/internal/config"
	"studyquiz/internal/domain"
	"studyquiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"go.uber.org/zap"
)

const quizPromptTemplate = `Based on the following extracted knowledge, create %d quiz questions.

KNOWLEDGE:
%s

REQUIREMENTS:
- Mix multiple-choice (60%%) and fill-in-blank (40%%) questions
- For multiple choice, provide exactly 4 options (A, B, C, D) with only one correct answer
- Make questions test understanding, not just memorization
- Ensure questions are clear and unambiguous
- For fill-in-blank, provide acceptable variations of the answer (case-insensitive)
- Include brief explanations for correct answers

Return ONLY valid JSON in this exact format:
{
  "questions": [
    {
      "id": 1,
      "type": "multiple_choice",
      "question": "What is the main function of chloroplasts?",
      "options": ["Photosynthesis", "Respiration", "Protein synthesis", "Cell division"],
      "correct_answer": "Photosynthesis",
      "explanation": "Chloroplasts are the organelles where photosynthesis occurs in plant cells."
    },
    {
      "id": 2,
      "type": "fill_blank",
      "question": "The process by which plants convert sunlight into energy is called ___",
      "correct_answer": "photosynthesis",
      "acceptable_answers": ["photosynthesis", "Photosynthesis"],
      "explanation": "Photosynthesis is the process plants use to convert light energy into chemical energy."
    }
  ]
}

Generate exactly %d questions following this format.`

// anthropicQuizGenerator implements domain.QuizGenerator on top of a
// langchaingo chat model.
type anthropicQuizGenerator struct {
	model     llms.Model
	maxTokens int
}

// NewAnthropicModel builds the Claude client from configuration.
func NewAnthropicModel(cfg config.LLMConfig) (llms.Model, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key cannot be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("anthropic model name cannot be empty")
	}
	return anthropic.New(
		anthropic.WithToken(cfg.APIKey),
		anthropic.WithModel(cfg.Model),
	)
}

// NewQuizGenerator creates a quiz generator backed by the given model.
func NewQuizGenerator(model llms.Model, maxTokens int) domain.QuizGenerator {
	return &anthropicQuizGenerator{
		model:     model,
		maxTokens: maxTokens,
	}
}

// GenerateQuiz implements domain.QuizGenerator.
func (g *anthropicQuizGenerator) GenerateQuiz(ctx context.Context, knowledge string, numQuestions int) ([]domain.Question, error) {
	l := logger.Get()
	prompt := fmt.Sprintf(quizPromptTemplate, numQuestions, knowledge, numQuestions)

	l.Info("Requesting quiz generation",
		zap.Int("numQuestions", numQuestions),
		zap.Int("knowledgeLength", len(knowledge)))

	completion, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt,
		llms.WithMaxTokens(g.maxTokens))
	if err != nil {
		l.Error("LLM quiz generation call failed", zap.Error(err))
		return nil, domain.NewLLMServiceError(err)
	}

	questions, err := parseQuizResponse(completion)
	if err != nil {
		l.Error("Failed to parse LLM quiz response",
			zap.Error(err),
			zap.String("response", completion))
		return nil, domain.NewLLMServiceError(err)
	}

	l.Info("Generated quiz questions", zap.Int("count", len(questions)))
	return questions, nil
}

type quizResponse struct {
	Questions []domain.Question `json:"questions"`
}

// parseQuizResponse extracts the JSON object from a completion that may
// carry surrounding prose, decodes it, and validates every question.
func parseQuizResponse(completion string) ([]domain.Question, error) {
	start := strings.Index(completion, "{")
	end := strings.LastIndex(completion, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object found in LLM response")
	}

	var parsed quizResponse
	if err := json.Unmarshal([]byte(completion[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode quiz JSON: %w", err)
	}
	if len(parsed.Questions) == 0 {
		return nil, fmt.Errorf("LLM response contained no questions")
	}

	for i := range parsed.Questions {
		q := &parsed.Questions[i]
		if q.ID == 0 {
			q.ID = i + 1
		}
		if q.Type == domain.FillBlank && len(q.AcceptableAnswers) == 0 {
			q.AcceptableAnswers = []string{q.CorrectAnswer}
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("invalid question %d: %w", q.ID, err)
		}
	}
	return parsed.Questions, nil
}

var _ domain.QuizGenerator = (*anthropicQuizGenerator)(nil)
