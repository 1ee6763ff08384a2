package handler

import (
	"studyquiz/internal/dto"
	"studyquiz/internal/logger"
	"studyquiz/internal/service"
	"studyquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz session HTTP requests
type QuizHandler struct {
	sessions   service.QuizSessionService
	generation service.QuizGenerationService
	validator  *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(sessions service.QuizSessionService, generation service.QuizGenerationService) *QuizHandler {
	return &QuizHandler{
		sessions:   sessions,
		generation: generation,
		validator:  validation.NewValidator(),
	}
}

// CreateQuiz godoc
// @Summary Generate a quiz and start a session
// @Description Generates questions from extracted knowledge and opens a new quiz session
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz parameters"
// @Success 200 {object} dto.CreateQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateCreateQuizRequest(req.UserID, req.DocumentName, req.Knowledge, req.NumQuestions); len(errs) > 0 {
		return errs
	}

	questions, err := h.generation.GenerateQuestions(c.Context(), req.Knowledge, req.NumQuestions)
	if err != nil {
		return err
	}

	resp, err := h.sessions.CreateSession(c.Context(), req.UserID, req.DocumentName, questions)
	if err != nil {
		return err
	}

	logger.Get().Info("Quiz session created",
		zap.String("sessionID", resp.SessionID),
		zap.String("userID", req.UserID),
		zap.Int("totalQuestions", resp.TotalQuestions))

	return c.JSON(resp)
}

// GetQuestion godoc
// @Summary Get one question from a session
// @Description Returns a question without its answer or explanation
// @Tags quiz
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param num path int true "Question number (0-based)"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{sessionID}/question/{num} [get]
func (h *QuizHandler) GetQuestion(c *fiber.Ctx) error {
	sessionID := c.Params("sessionID")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}

	num, err := c.ParamsInt("num")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "question number must be an integer")
	}

	resp, err := h.sessions.GetQuestion(c.Context(), sessionID, num)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswer godoc
// @Summary Submit an answer
// @Description Grades the answer and records it in the session
// @Tags quiz
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param request body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{sessionID}/answer [post]
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	sessionID := c.Params("sessionID")

	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateSubmitAnswerRequest(sessionID, req.Answer); len(errs) > 0 {
		return errs
	}

	resp, err := h.sessions.SubmitAnswer(c.Context(), sessionID, req.QuestionNum, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetResults godoc
// @Summary Get session results
// @Description Returns the score and per-question review for a session
// @Tags quiz
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.QuizResultsResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{sessionID}/results [get]
func (h *QuizHandler) GetResults(c *fiber.Ctx) error {
	sessionID := c.Params("sessionID")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}

	resp, err := h.sessions.GetResults(c.Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CompleteQuiz godoc
// @Summary Complete a quiz session
// @Description Moves the session into the user's history and deletes it
// @Tags quiz
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{sessionID}/complete [post]
func (h *QuizHandler) CompleteQuiz(c *fiber.Ctx) error {
	sessionID := c.Params("sessionID")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}

	if err := h.sessions.CompleteQuiz(c.Context(), sessionID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "completed"})
}

// GetHistory godoc
// @Summary Get quiz history
// @Description Returns a user's completed quizzes, most recent first
// @Tags history
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} dto.HistoryResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /history [get]
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if errs := h.validator.ValidateUserID(userID); len(errs) > 0 {
		return errs
	}

	resp, err := h.sessions.GetHistory(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
