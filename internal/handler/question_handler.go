package handler

import (
	"quiz-catalog/internal/domain"
	"quiz-catalog/internal/dto"
	"quiz-catalog/internal/middleware"
	"quiz-catalog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	service service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// questionID reads the id the validation middleware parsed and stored.
func questionID(c *fiber.Ctx) (int64, error) {
	id, ok := c.Locals(middleware.QuestionIDKey).(int64)
	if !ok {
		return 0, domain.NewInternalError("question id missing from request context", nil)
	}
	return id, nil
}

// GetQuestions godoc
// @Summary List questions
// @Description Returns all questions ordered by id
// @Tags questions
// @Produce json
// @Success 200 {array} dto.QuestionResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) GetQuestions(c *fiber.Ctx) error {
	questions, err := h.service.GetQuestions(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(questions)
}

// GetQuestion godoc
// @Summary Get a question
// @Description Returns the question identified by its numeric id
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *fiber.Ctx) error {
	id, err := questionID(c)
	if err != nil {
		return err
	}

	question, err := h.service.GetQuestionByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(question)
}

// GetQuestionsByCategory godoc
// @Summary List questions of a category
// @Description Returns the questions attached to the category identified by its slug
// @Tags questions
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {array} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /categories/{slug}/questions [get]
func (h *QuestionHandler) GetQuestionsByCategory(c *fiber.Ctx) error {
	questions, err := h.service.GetQuestionsByCategorySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(questions)
}

// CreateQuestion godoc
// @Summary Create a question
// @Description Creates a question; text is sanitized and the slug derives from the sanitized question
// @Tags questions
// @Accept json
// @Produce json
// @Param question body dto.CreateQuestionRequest true "Question to create"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	created, err := h.service.CreateQuestion(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Description Partially updates the question identified by its numeric id
// @Tags questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param question body dto.UpdateQuestionRequest true "Fields to update"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /questions/{id} [patch]
func (h *QuestionHandler) UpdateQuestion(c *fiber.Ctx) error {
	id, err := questionID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	updated, err := h.service.UpdateQuestion(c.Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Description Deletes the question identified by its numeric id
// @Tags questions
// @Param id path int true "Question ID"
// @Success 204 "No Content"
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	id, err := questionID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteQuestion(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
