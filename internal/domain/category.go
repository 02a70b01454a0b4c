package domain

import "context"

// Category groups questions under a human-readable title. The slug is
// derived from the title and serves as the category's external identifier
// in routes; the numeric id never leaves the storage layer as a lookup key.
type Category struct {
	ID    int64
	Title string
	Slug  string
}

// NewCategory creates a Category with its derived slug.
func NewCategory(title, slug string) *Category {
	return &Category{
		Title: title,
		Slug:  slug,
	}
}

// CategoryRepository defines the interface for category persistence.
type CategoryRepository interface {
	// GetCategories returns categories ordered by ascending id, windowed
	// by limit and offset. An empty window yields an empty slice.
	GetCategories(ctx context.Context, limit, offset int) ([]*Category, error)

	// GetCategoryBySlug retrieves a category by its slug.
	// It returns (nil, nil) when no such category exists.
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)

	// SaveCategory persists a new category and returns the stored record
	// including its generated id.
	SaveCategory(ctx context.Context, category *Category) (*Category, error)

	// UpdateCategory rewrites the category currently identified by slug.
	// It returns (nil, nil) when the slug no longer matches a row.
	UpdateCategory(ctx context.Context, slug string, category *Category) (*Category, error)

	// DeleteCategory removes the category with the given slug and reports
	// whether a row was deleted.
	DeleteCategory(ctx context.Context, slug string) (bool, error)
}
