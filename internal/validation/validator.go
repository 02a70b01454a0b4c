package validation

import (
	"strconv"
	"strings"

	"quiz-catalog/internal/domain"
	"quiz-catalog/internal/dto"
)

// Text fields share one length policy across both entities.
const (
	MinTextLength = 3
	MaxTextLength = 1024
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCategoryCreate validates the body of POST /categories
func (v *Validator) ValidateCategoryCreate(req *dto.CreateCategoryRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	} else if err := textLengthError("title", req.Title); err != nil {
		errors = append(errors, *err)
	}

	return errors
}

// ValidateCategoryUpdate validates the body of PATCH /categories/:slug.
// Absent fields are valid; supplied fields must meet the create rules.
func (v *Validator) ValidateCategoryUpdate(req *dto.UpdateCategoryRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			errors = append(errors, domain.NewMissingFieldError("title"))
		} else if err := textLengthError("title", *req.Title); err != nil {
			errors = append(errors, *err)
		}
	}

	return errors
}

// ValidateQuestionCreate validates the body of POST /questions
func (v *Validator) ValidateQuestionCreate(req *dto.CreateQuestionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Question) == "" {
		errors = append(errors, domain.NewMissingFieldError("question"))
	} else if err := textLengthError("question", req.Question); err != nil {
		errors = append(errors, *err)
	}

	if strings.TrimSpace(req.Answer) == "" {
		errors = append(errors, domain.NewMissingFieldError("answer"))
	} else if err := textLengthError("answer", req.Answer); err != nil {
		errors = append(errors, *err)
	}

	if req.CategoryID == 0 {
		errors = append(errors, domain.NewMissingFieldError("categoryId"))
	} else if req.CategoryID < 0 {
		errors = append(errors, domain.NewInvalidFormatError("categoryId", strconv.FormatInt(req.CategoryID, 10)))
	}

	return errors
}

// ValidateQuestionUpdate validates the body of PATCH /questions/:id.
// Absent fields are valid; supplied fields must meet the create rules.
func (v *Validator) ValidateQuestionUpdate(req *dto.UpdateQuestionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Question != nil {
		if strings.TrimSpace(*req.Question) == "" {
			errors = append(errors, domain.NewMissingFieldError("question"))
		} else if err := textLengthError("question", *req.Question); err != nil {
			errors = append(errors, *err)
		}
	}

	if req.Answer != nil {
		if strings.TrimSpace(*req.Answer) == "" {
			errors = append(errors, domain.NewMissingFieldError("answer"))
		} else if err := textLengthError("answer", *req.Answer); err != nil {
			errors = append(errors, *err)
		}
	}

	if req.CategoryID != nil && *req.CategoryID <= 0 {
		errors = append(errors, domain.NewInvalidFormatError("categoryId", strconv.FormatInt(*req.CategoryID, 10)))
	}

	return errors
}

// textLengthError returns the out-of-range failure for a text field, or nil
// when the length is acceptable. Lengths are measured in bytes, matching the
// VARCHAR2 byte semantics of the schema.
func textLengthError(field, value string) *domain.ValidationError {
	if len(value) < MinTextLength || len(value) > MaxTextLength {
		err := domain.NewOutOfRangeError(field, len(value), MinTextLength, MaxTextLength)
		return &err
	}
	return nil
}
