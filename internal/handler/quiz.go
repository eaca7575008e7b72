package handler

import (
	"kviss/internal/dto"
	"kviss/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz godoc
// @Summary Generate a themed quiz
// @Description Generates multiple-choice questions for a theme via the LLM provider and persists the result
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation request"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quiz/generate-quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	resp, err := h.service.GenerateQuiz(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetQuiz godoc
// @Summary Get a quiz by identifier
// @Description Returns the persisted quiz, or a null body when no quiz with that identifier exists
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID (24 hex characters)"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.service.GetQuizByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if quiz == nil {
		// Unknown-but-well-formed identifiers answer 200 with a null body,
		// matching the retrieval contract.
		return c.JSON(nil)
	}

	return c.JSON(quiz)
}
