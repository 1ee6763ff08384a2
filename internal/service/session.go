package service

import (
	"context"
	"fmt"
	"time"

	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/logger"
	"studyquiz/internal/util"

	"go.uber.org/zap"
)

// QuizSessionService orchestrates a quiz attempt from creation through
// completion, when the session record is promoted into history.
type QuizSessionService interface {
	CreateSession(ctx context.Context, userID, documentName string, questions []domain.Question) (*dto.CreateQuizResponse, error)
	GetQuestion(ctx context.Context, sessionID string, num int) (*dto.QuestionResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, num int, answer string) (*dto.SubmitAnswerResponse, error)
	GetResults(ctx context.Context, sessionID string) (*dto.QuizResultsResponse, error)
	CompleteQuiz(ctx context.Context, sessionID string) error
	GetHistory(ctx context.Context, userID string) (*dto.HistoryResponse, error)
}

// quizSessionService implements QuizSessionService
type quizSessionService struct {
	sessions domain.SessionStore
	history  domain.HistoryStore

	// sessionLocks serializes read-modify-write cycles per session id so
	// duplicate submissions never double-count; userLocks serializes
	// history appends per user so the 50-entry cap never loses an entry.
	sessionLocks *util.KeyMutex
	userLocks    *util.KeyMutex

	now func() time.Time
}

// NewQuizSessionService creates a new instance of quizSessionService
func NewQuizSessionService(sessions domain.SessionStore, history domain.HistoryStore) QuizSessionService {
	return &quizSessionService{
		sessions:     sessions,
		history:      history,
		sessionLocks: util.NewKeyMutex(),
		userLocks:    util.NewKeyMutex(),
		now:          time.Now,
	}
}

// CreateSession implements QuizSessionService
func (s *quizSessionService) CreateSession(ctx context.Context, userID, documentName string, questions []domain.Question) (*dto.CreateQuizResponse, error) {
	if userID == "" {
		return nil, domain.NewInvalidInputError("user_id is required")
	}
	if len(questions) == 0 {
		return nil, domain.NewInvalidInputError("at least one question is required")
	}
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return nil, err
		}
	}

	sessionID, err := s.sessions.Create(ctx, userID, documentName, questions)
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Created quiz session",
		zap.String("sessionID", sessionID),
		zap.String("userID", userID),
		zap.String("documentName", documentName),
		zap.Int("totalQuestions", len(questions)))

	return &dto.CreateQuizResponse{
		SessionID:      sessionID,
		TotalQuestions: len(questions),
	}, nil
}

// GetQuestion implements QuizSessionService. The returned view omits the
// correct answer, acceptable answers, and explanation.
func (s *quizSessionService) GetQuestion(ctx context.Context, sessionID string, num int) (*dto.QuestionResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	question, err := session.QuestionAt(num)
	if err != nil {
		return nil, err
	}

	resp := &dto.QuestionResponse{
		ID:             question.ID,
		Type:           question.Type,
		Question:       question.Question,
		QuestionNum:    num,
		TotalQuestions: session.TotalQuestions(),
		CurrentScore:   session.CorrectCount,
	}
	if question.Type == domain.MultipleChoice {
		resp.Options = question.Options
	}
	return resp, nil
}

// SubmitAnswer implements QuizSessionService. Grading, the answer record
// append, and the persisted session update appear atomic to callers.
func (s *quizSessionService) SubmitAnswer(ctx context.Context, sessionID string, num int, answer string) (*dto.SubmitAnswerResponse, error) {
	s.sessionLocks.Lock(sessionID)
	defer s.sessionLocks.Unlock(sessionID)

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	question, err := session.QuestionAt(num)
	if err != nil {
		return nil, err
	}
	if num < session.CurrentQuestion {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("question %d has already been answered", num))
	}

	record := domain.Grade(question, answer)
	session.RecordAnswer(num, record)

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	logger.Get().Info("Graded answer",
		zap.String("sessionID", sessionID),
		zap.Int("questionNum", num),
		zap.Bool("isCorrect", record.IsCorrect),
		zap.Int("correctCount", session.CorrectCount))

	return &dto.SubmitAnswerResponse{
		IsCorrect:      record.IsCorrect,
		CorrectAnswer:  record.CorrectAnswer,
		Explanation:    record.Explanation,
		CurrentScore:   session.CorrectCount,
		TotalQuestions: session.TotalQuestions(),
	}, nil
}

// GetResults implements QuizSessionService. It never mutates the
// session, so it is usable mid-quiz as well as after the last answer.
func (s *quizSessionService) GetResults(ctx context.Context, sessionID string) (*dto.QuizResultsResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	review := session.UserAnswers
	if review == nil {
		review = []domain.AnswerRecord{}
	}

	return &dto.QuizResultsResponse{
		DocumentName:    session.DocumentName,
		TotalQuestions:  session.TotalQuestions(),
		CorrectAnswers:  session.CorrectCount,
		ScorePercentage: domain.ScorePercentage(session.CorrectCount, session.TotalQuestions()),
		QuestionsReview: review,
	}, nil
}

// CompleteQuiz implements QuizSessionService. It is the only operation
// that moves quiz data from the session store into the history store;
// the session is deleted once the history entry is durably appended.
func (s *quizSessionService) CompleteQuiz(ctx context.Context, sessionID string) error {
	s.sessionLocks.Lock(sessionID)
	defer s.sessionLocks.Unlock(sessionID)

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	entry := domain.NewHistoryEntryFromSession(session, s.now().UTC())

	s.userLocks.Lock(session.UserID)
	err = s.history.Append(ctx, session.UserID, entry)
	s.userLocks.Unlock(session.UserID)
	if err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}

	logger.Get().Info("Completed quiz",
		zap.String("sessionID", sessionID),
		zap.String("userID", session.UserID),
		zap.Int("scorePercentage", entry.ScorePercentage),
		zap.Int("timeTakenSeconds", entry.TimeTakenSeconds))
	return nil
}

// GetHistory implements QuizSessionService
func (s *quizSessionService) GetHistory(ctx context.Context, userID string) (*dto.HistoryResponse, error) {
	if userID == "" {
		return nil, domain.NewInvalidInputError("user_id is required")
	}

	entries, err := s.history.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	return &dto.HistoryResponse{Quizzes: entries}, nil
}
