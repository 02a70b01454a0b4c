package middleware

import (
	"strconv"

	"quiz-catalog/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// QuestionIDKey is the fiber.Ctx locals key holding the parsed :id param.
const QuestionIDKey = "validated_question_id"

// ValidationMiddleware validates route parameters before handlers run.
type ValidationMiddleware struct{}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{}
}

// ValidateQuestionID parses the :id path parameter. A non-numeric or
// non-positive id is rejected as invalid input before any storage access;
// the parsed value is stored in the context for handlers to use.
func (vm *ValidationMiddleware) ValidateQuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("id")

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			// Handled by the ErrorHandler middleware.
			return domain.NewInvalidInputError("question id must be a positive integer").
				WithContext("id", raw)
		}

		c.Locals(QuestionIDKey, id)
		return c.Next()
	}
}
