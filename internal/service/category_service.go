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

// CategoryService defines the interface for category operations
type CategoryService interface {
	GetCategories(ctx context.Context, pagination dto.Pagination) ([]dto.CategoryResponse, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, slug string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, slug string) error
}

// categoryService implements CategoryService
type categoryService struct {
	repo      domain.CategoryRepository
	validator *validation.Validator
}

// NewCategoryService creates a new instance of categoryService
func NewCategoryService(repo domain.CategoryRepository, validator *validation.Validator) CategoryService {
	return &categoryService{
		repo:      repo,
		validator: validator,
	}
}

// GetCategories implements CategoryService
func (s *categoryService) GetCategories(ctx context.Context, pagination dto.Pagination) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.GetCategories(ctx, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, domain.NewDatabaseError("failed to list categories", err)
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, toCategoryResponse(category))
	}
	return responses, nil
}

// GetCategoryBySlug implements CategoryService
func (s *categoryService) GetCategoryBySlug(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	category, err := s.repo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, domain.NewDatabaseError("failed to get category", err)
	}
	if category == nil {
		return nil, domain.NewCategoryNotFoundError(slug)
	}

	resp := toCategoryResponse(category)
	return &resp, nil
}

// CreateCategory implements CategoryService. The slug is derived from the
// title; uniqueness of both title and slug is enforced by the database.
func (s *categoryService) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if errs := s.validator.ValidateCategoryCreate(req); errs.HasErrors() {
		return nil, errs
	}

	slug := util.Slugify(req.Title)
	if slug == "" {
		return nil, domain.NewInvalidInputError("title must contain at least one word character").
			WithContext("title", req.Title)
	}

	created, err := s.repo.SaveCategory(ctx, domain.NewCategory(req.Title, slug))
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.NewConstraintViolationError("category with this title or slug already exists", err).
				WithContext("slug", slug)
		}
		return nil, domain.NewDatabaseError("failed to save category", err)
	}

	logger.Get().Info("Category created",
		zap.Int64("id", created.ID),
		zap.String("slug", created.Slug))

	resp := toCategoryResponse(created)
	return &resp, nil
}

// UpdateCategory implements CategoryService. Unspecified fields keep their
// stored values; the slug is recomputed only when the title actually changes.
func (s *categoryService) UpdateCategory(ctx context.Context, slug string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if errs := s.validator.ValidateCategoryUpdate(req); errs.HasErrors() {
		return nil, errs
	}

	existing, err := s.repo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, domain.NewDatabaseError("failed to get category", err)
	}
	if existing == nil {
		return nil, domain.NewCategoryNotFoundError(slug)
	}

	title := existing.Title
	if req.Title != nil {
		title = *req.Title
	}

	newSlug := existing.Slug
	if title != existing.Title {
		newSlug = util.Slugify(title)
		if newSlug == "" {
			return nil, domain.NewInvalidInputError("title must contain at least one word character").
				WithContext("title", title)
		}
	}

	updated, err := s.repo.UpdateCategory(ctx, slug, domain.NewCategory(title, newSlug))
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.NewConstraintViolationError("category with this title or slug already exists", err).
				WithContext("slug", newSlug)
		}
		return nil, domain.NewDatabaseError("failed to update category", err)
	}
	if updated == nil {
		// The row vanished between the lookup and the update.
		return nil, domain.NewCategoryNotFoundError(slug)
	}

	logger.Get().Info("Category updated",
		zap.Int64("id", updated.ID),
		zap.String("slug", updated.Slug))

	resp := toCategoryResponse(updated)
	return &resp, nil
}

// DeleteCategory implements CategoryService. The foreign key on questions
// blocks the delete while questions still reference the category.
func (s *categoryService) DeleteCategory(ctx context.Context, slug string) error {
	existing, err := s.repo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return domain.NewDatabaseError("failed to get category", err)
	}
	if existing == nil {
		return domain.NewCategoryNotFoundError(slug)
	}

	deleted, err := s.repo.DeleteCategory(ctx, slug)
	if err != nil {
		if repository.IsChildRecordFound(err) {
			return domain.NewConstraintViolationError("category still has questions attached", err).
				WithContext("slug", slug)
		}
		return domain.NewDatabaseError("failed to delete category", err)
	}
	if !deleted {
		return domain.NewCategoryNotFoundError(slug)
	}

	logger.Get().Info("Category deleted",
		zap.Int64("id", existing.ID),
		zap.String("slug", slug))
	return nil
}

func toCategoryResponse(category *domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:    category.ID,
		Title: category.Title,
		Slug:  category.Slug,
	}
}
