package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quiz-catalog/internal/domain"
	"quiz-catalog/internal/repository/models"
)

// categoryColumns aliases each column to its db tag. Oracle reports column
// names in upper case; the quoted aliases keep the scan targets stable.
const categoryColumns = `id "id", title "title", slug "slug"`

// CategoryDatabaseAdapter implements domain.CategoryRepository using sqlx.
type CategoryDatabaseAdapter struct {
	db DBTX
}

// NewCategoryDatabaseAdapter creates a new category repository over db.
// db may be a *sqlx.DB or a *sqlx.Tx; a transaction carried in the call
// context takes precedence either way.
func NewCategoryDatabaseAdapter(db DBTX) domain.CategoryRepository {
	return &CategoryDatabaseAdapter{db: db}
}

// GetCategories implements domain.CategoryRepository
func (a *CategoryDatabaseAdapter) GetCategories(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	ex := GetExecutor(ctx, a.db)
	var modelCategories []models.Category
	query := `SELECT ` + categoryColumns + `
	FROM categories
	ORDER BY id ASC
	OFFSET :1 ROWS FETCH NEXT :2 ROWS ONLY`

	if err := ex.SelectContext(ctx, &modelCategories, query, offset, limit); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	categories := make([]*domain.Category, 0, len(modelCategories))
	for i := range modelCategories {
		categories = append(categories, toDomainCategory(&modelCategories[i]))
	}
	return categories, nil
}

// GetCategoryBySlug implements domain.CategoryRepository
func (a *CategoryDatabaseAdapter) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	ex := GetExecutor(ctx, a.db)
	var modelCategory models.Category
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = :1`

	err := ex.GetContext(ctx, &modelCategory, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by slug %s: %w", slug, err)
	}
	return toDomainCategory(&modelCategory), nil
}

// SaveCategory implements domain.CategoryRepository
func (a *CategoryDatabaseAdapter) SaveCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	ex := GetExecutor(ctx, a.db)
	modelCategory := toModelCategory(category)
	if modelCategory == nil {
		return nil, fmt.Errorf("cannot save nil category")
	}

	query := `INSERT INTO categories (title, slug) VALUES (:1, :2)`
	if _, err := ex.ExecContext(ctx, query, modelCategory.Title, modelCategory.Slug); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	// The id comes from the identity column; read the row back through its
	// unique slug instead of relying on driver RETURNING support.
	created, err := a.GetCategoryBySlug(ctx, category.Slug)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("category %s vanished after insert", category.Slug)
	}
	return created, nil
}

// UpdateCategory implements domain.CategoryRepository. The row is matched by
// the slug the caller currently knows, so a concurrent rename or delete
// shows up as zero affected rows rather than clobbering another record.
func (a *CategoryDatabaseAdapter) UpdateCategory(ctx context.Context, slug string, category *domain.Category) (*domain.Category, error) {
	ex := GetExecutor(ctx, a.db)
	modelCategory := toModelCategory(category)
	if modelCategory == nil {
		return nil, fmt.Errorf("cannot update nil category")
	}

	query := `UPDATE categories SET title = :1, slug = :2 WHERE slug = :3`
	result, err := ex.ExecContext(ctx, query, modelCategory.Title, modelCategory.Slug, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", slug, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected for category %s: %w", slug, err)
	}
	if rows == 0 {
		return nil, nil
	}

	updated, err := a.GetCategoryBySlug(ctx, category.Slug)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("category %s vanished after update", category.Slug)
	}
	return updated, nil
}

// DeleteCategory implements domain.CategoryRepository. The foreign key on
// questions restricts the delete while child rows exist; that surfaces as
// ORA-02292 from the driver.
func (a *CategoryDatabaseAdapter) DeleteCategory(ctx context.Context, slug string) (bool, error) {
	ex := GetExecutor(ctx, a.db)
	result, err := ex.ExecContext(ctx, `DELETE FROM categories WHERE slug = :1`, slug)
	if err != nil {
		return false, fmt.Errorf("failed to delete category %s: %w", slug, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected for category %s: %w", slug, err)
	}
	return rows > 0, nil
}

func toDomainCategory(m *models.Category) *domain.Category {
	if m == nil {
		return nil
	}
	return &domain.Category{
		ID:    m.ID,
		Title: m.Title,
		Slug:  m.Slug,
	}
}

func toModelCategory(c *domain.Category) *models.Category {
	if c == nil {
		return nil
	}
	return &models.Category{
		ID:    c.ID,
		Title: c.Title,
		Slug:  c.Slug,
	}
}
