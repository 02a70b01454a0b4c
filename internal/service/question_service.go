package service

import (
	"context"

	"quiz-catalog/internal/domain"
	"quiz-catalog/internal/dto"
	"quiz-catalog/internal/logger"
	"quiz-catalog/internal/repository"
	"quiz-catalog/internal/util"
	"quiz-catalog/internal/validation"

	"go.uber.org/zap"
)

// QuestionService defines the interface for question operations
type QuestionService interface {
	GetQuestions(ctx context.Context) ([]dto.QuestionResponse, error)
	GetQuestionByID(ctx context.Context, id int64) (*dto.QuestionResponse, error)
	GetQuestionsByCategorySlug(ctx context.Context, slug string) ([]dto.QuestionResponse, error)
	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, id int64, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, id int64) error
}

// questionService implements QuestionService
type questionService struct {
	questionRepo domain.QuestionRepository
	categoryRepo domain.CategoryRepository
	validator    *validation.Validator
}

// NewQuestionService creates a new instance of questionService
func NewQuestionService(
	questionRepo domain.QuestionRepository,
	categoryRepo domain.CategoryRepository,
	validator *validation.Validator,
) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		validator:    validator,
	}
}

// GetQuestions implements QuestionService
func (s *questionService) GetQuestions(ctx context.Context) ([]dto.QuestionResponse, error) {
	questions, err := s.questionRepo.GetQuestions(ctx)
	if err != nil {
		return nil, domain.NewDatabaseError("failed to list questions", err)
	}
	return toQuestionResponses(questions), nil
}

// GetQuestionByID implements QuestionService
func (s *questionService) GetQuestionByID(ctx context.Context, id int64) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewDatabaseError("failed to get question", err)
	}
	if question == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}

	resp := toQuestionResponse(question)
	return &resp, nil
}

// GetQuestionsByCategorySlug implements QuestionService. An unknown category
// slug is a not-found error; a known category with no questions yields an
// empty slice.
func (s *questionService) GetQuestionsByCategorySlug(ctx context.Context, slug string) ([]dto.QuestionResponse, error) {
	category, err := s.categoryRepo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, domain.NewDatabaseError("failed to get category", err)
	}
	if category == nil {
		return nil, domain.NewCategoryNotFoundError(slug)
	}

	questions, err := s.questionRepo.GetQuestionsByCategoryID(ctx, category.ID)
	if err != nil {
		return nil, domain.NewDatabaseError("failed to list questions for category", err)
	}
	return toQuestionResponses(questions), nil
}

// CreateQuestion implements QuestionService. Question and answer text are
// sanitized before storage and the slug derives from the sanitized question,
// so markup never influences the stored record or its identifier.
func (s *questionService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	if errs := s.validator.ValidateQuestionCreate(req); errs.HasErrors() {
		return nil, errs
	}

	question := util.SanitizeText(req.Question)
	answer := util.SanitizeText(req.Answer)

	slug := util.Slugify(question)
	if slug == "" {
		return nil, domain.NewInvalidInputError("question must contain at least one word character").
			WithContext("question", req.Question)
	}

	created, err := s.questionRepo.SaveQuestion(ctx, domain.NewQuestion(question, answer, slug, req.CategoryID))
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.NewConstraintViolationError("question with this slug already exists", err).
				WithContext("slug", slug)
		}
		if repository.IsParentKeyNotFound(err) {
			return nil, domain.NewConstraintViolationError("referenced category does not exist", err).
				WithContext("categoryId", req.CategoryID)
		}
		return nil, domain.NewDatabaseError("failed to save question", err)
	}

	logger.Get().Info("Question created",
		zap.Int64("id", created.ID),
		zap.String("slug", created.Slug),
		zap.Int64("categoryId", created.CategoryID))

	resp := toQuestionResponse(created)
	return &resp, nil
}

// UpdateQuestion implements QuestionService. Unspecified fields keep their
// stored values; supplied text is sanitized before merging, and the slug is
// recomputed only when the sanitized question differs from the stored one.
func (s *questionService) UpdateQuestion(ctx context.Context, id int64, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	if errs := s.validator.ValidateQuestionUpdate(req); errs.HasErrors() {
		return nil, errs
	}

	existing, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewDatabaseError("failed to get question", err)
	}
	if existing == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}

	question := existing.Question
	if req.Question != nil {
		question = util.SanitizeText(*req.Question)
	}

	answer := existing.Answer
	if req.Answer != nil {
		answer = util.SanitizeText(*req.Answer)
	}

	categoryID := existing.CategoryID
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}

	slug := existing.Slug
	if question != existing.Question {
		slug = util.Slugify(question)
		if slug == "" {
			return nil, domain.NewInvalidInputError("question must contain at least one word character").
				WithContext("question", question)
		}
	}

	updated, err := s.questionRepo.UpdateQuestion(ctx, id, domain.NewQuestion(question, answer, slug, categoryID))
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.NewConstraintViolationError("question with this slug already exists", err).
				WithContext("slug", slug)
		}
		if repository.IsParentKeyNotFound(err) {
			return nil, domain.NewConstraintViolationError("referenced category does not exist", err).
				WithContext("categoryId", categoryID)
		}
		return nil, domain.NewDatabaseError("failed to update question", err)
	}
	if updated == nil {
		// The row vanished between the lookup and the update.
		return nil, domain.NewQuestionNotFoundError(id)
	}

	logger.Get().Info("Question updated",
		zap.Int64("id", updated.ID),
		zap.String("slug", updated.Slug))

	resp := toQuestionResponse(updated)
	return &resp, nil
}

// DeleteQuestion implements QuestionService
func (s *questionService) DeleteQuestion(ctx context.Context, id int64) error {
	existing, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return domain.NewDatabaseError("failed to get question", err)
	}
	if existing == nil {
		return domain.NewQuestionNotFoundError(id)
	}

	deleted, err := s.questionRepo.DeleteQuestion(ctx, id)
	if err != nil {
		return domain.NewDatabaseError("failed to delete question", err)
	}
	if !deleted {
		return domain.NewQuestionNotFoundError(id)
	}

	logger.Get().Info("Question deleted", zap.Int64("id", id))
	return nil
}

func toQuestionResponse(question *domain.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:         question.ID,
		Question:   question.Question,
		Answer:     question.Answer,
		Slug:       question.Slug,
		CategoryID: question.CategoryID,
	}
}

func toQuestionResponses(questions []*domain.Question) []dto.QuestionResponse {
	responses := make([]dto.QuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, toQuestionResponse(question))
	}
	return responses
}
