package handler

import (
	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"
	"topic-quiz/internal/middleware"
	"topic-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz attempt HTTP requests
type QuizHandler struct {
	service service.AttemptService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(attemptService service.AttemptService) *QuizHandler {
	return &QuizHandler{
		service: attemptService,
	}
}

// SaveQuizAttempt godoc
// @Summary Save a finished quiz
// @Description Stores the attempt and its per-question answers. Answers for questions that no longer exist are skipped.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.SaveQuizAttemptRequest true "Quiz attempt"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid field"
// @Failure 404 {object} dto.ErrorResponse "Topic or user not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /quiz/save-quiz-attempt [post]
func (h *QuizHandler) SaveQuizAttempt(c *fiber.Ctx) error {
	var req dto.SaveQuizAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.ErrValidation, "Invalid request body", err)
	}

	if err := h.service.SubmitAttempt(c.UserContext(), &req); err != nil {
		return err
	}
	return c.JSON(dto.StatusResponse{Status: "success"})
}

// GetQuizHistory godoc
// @Summary Get quiz history
// @Description Returns every quiz attempt of a user, newest first, with per-question results
// @Tags quiz
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} dto.QuizHistoryResponse
// @Failure 400 {object} dto.ErrorResponse "Missing user_id"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /quiz/quiz-history [get]
func (h *QuizHandler) GetQuizHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.ValidatedUserIDKey).(string)
	if !ok {
		userID = c.Query("user_id")
	}

	resp, err := h.service.GetHistory(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
