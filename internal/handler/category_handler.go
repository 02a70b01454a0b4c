package handler

import (
	"strconv"

	"quiz-catalog/internal/domain"
	"quiz-catalog/internal/dto"
	"quiz-catalog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	service service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler instance
func NewCategoryHandler(service service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// parsePagination reads the limit/offset query parameters, falling back to
// the defaults when absent or unusable.
func parsePagination(c *fiber.Ctx) dto.Pagination {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return dto.Pagination{Limit: limit, Offset: offset}
}

// GetCategories godoc
// @Summary List categories
// @Description Returns categories ordered by id, windowed by limit and offset
// @Tags categories
// @Produce json
// @Param limit query int false "Number of items per page (default 10)"
// @Param offset query int false "Number of items to skip (default 0)"
// @Success 200 {array} dto.CategoryResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories(c.Context(), parsePagination(c))
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// GetCategory godoc
// @Summary Get a category
// @Description Returns the category identified by its slug
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /categories/{slug} [get]
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// CreateCategory godoc
// @Summary Create a category
// @Description Creates a category; the slug is derived from the title
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category to create"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	created, err := h.service.CreateCategory(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateCategory godoc
// @Summary Update a category
// @Description Partially updates the category identified by its slug
// @Tags categories
// @Accept json
// @Produce json
// @Param slug path string true "Category slug"
// @Param category body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /categories/{slug} [patch]
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	updated, err := h.service.UpdateCategory(c.Context(), c.Params("slug"), &req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Deletes the category identified by its slug
// @Tags categories
// @Param slug path string true "Category slug"
// @Success 204 "No Content"
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /categories/{slug} [delete]
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.Context(), c.Params("slug")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
