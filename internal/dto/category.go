package dto

// CategoryResponse represents a category in the API response
// @Description Category information
type CategoryResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// CreateCategoryRequest represents the body for creating a category
// @Description Request body for creating a category
type CreateCategoryRequest struct {
	Title string `json:"title"`
}

// UpdateCategoryRequest represents the body for partially updating a
// category. Pointer fields distinguish "not supplied" from "set to empty".
type UpdateCategoryRequest struct {
	Title *string `json:"title"`
}
