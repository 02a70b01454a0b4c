package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quiz-catalog/internal/domain"
	"quiz-catalog/internal/repository/models"
)

const questionColumns = `id "id", question "question", answer "answer", slug "slug", category_id "category_id"`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.
type QuestionDatabaseAdapter struct {
	db DBTX
}

// NewQuestionDatabaseAdapter creates a new question repository over db.
func NewQuestionDatabaseAdapter(db DBTX) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// GetQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestions(ctx context.Context) ([]*domain.Question, error) {
	ex := GetExecutor(ctx, a.db)
	var modelQuestions []models.Question
	query := `SELECT ` + questionColumns + `
	FROM questions
	ORDER BY id ASC`

	if err := ex.SelectContext(ctx, &modelQuestions, query); err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	return toDomainQuestions(modelQuestions), nil
}

// GetQuestionByID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	ex := GetExecutor(ctx, a.db)
	var modelQuestion models.Question
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = :1`

	err := ex.GetContext(ctx, &modelQuestion, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by id %d: %w", id, err)
	}
	return toDomainQuestion(&modelQuestion), nil
}

// GetQuestionsByCategoryID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionsByCategoryID(ctx context.Context, categoryID int64) ([]*domain.Question, error) {
	ex := GetExecutor(ctx, a.db)
	var modelQuestions []models.Question
	query := `SELECT ` + questionColumns + `
	FROM questions
	WHERE category_id = :1
	ORDER BY id ASC`

	if err := ex.SelectContext(ctx, &modelQuestions, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to get questions for category %d: %w", categoryID, err)
	}

	return toDomainQuestions(modelQuestions), nil
}

// SaveQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) SaveQuestion(ctx context.Context, question *domain.Question) (*domain.Question, error) {
	ex := GetExecutor(ctx, a.db)
	modelQuestion := toModelQuestion(question)
	if modelQuestion == nil {
		return nil, fmt.Errorf("cannot save nil question")
	}

	query := `INSERT INTO questions (question, answer, slug, category_id) VALUES (:1, :2, :3, :4)`
	_, err := ex.ExecContext(ctx, query,
		modelQuestion.Question,
		modelQuestion.Answer,
		modelQuestion.Slug,
		modelQuestion.CategoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save question: %w", err)
	}

	created, err := a.getQuestionBySlug(ctx, question.Slug)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("question %s vanished after insert", question.Slug)
	}
	return created, nil
}

// UpdateQuestion implements domain.QuestionRepository. Zero affected rows
// means the id no longer exists; the caller decides how to report that.
func (a *QuestionDatabaseAdapter) UpdateQuestion(ctx context.Context, id int64, question *domain.Question) (*domain.Question, error) {
	ex := GetExecutor(ctx, a.db)
	modelQuestion := toModelQuestion(question)
	if modelQuestion == nil {
		return nil, fmt.Errorf("cannot update nil question")
	}

	query := `UPDATE questions SET question = :1, answer = :2, slug = :3, category_id = :4 WHERE id = :5`
	result, err := ex.ExecContext(ctx, query,
		modelQuestion.Question,
		modelQuestion.Answer,
		modelQuestion.Slug,
		modelQuestion.CategoryID,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update question %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected for question %d: %w", id, err)
	}
	if rows == 0 {
		return nil, nil
	}

	updated, err := a.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("question %d vanished after update", id)
	}
	return updated, nil
}

// DeleteQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	ex := GetExecutor(ctx, a.db)
	result, err := ex.ExecContext(ctx, `DELETE FROM questions WHERE id = :1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete question %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected for question %d: %w", id, err)
	}
	return rows > 0, nil
}

// getQuestionBySlug reads a question back through its unique slug. Only the
// insert readback needs it, so it stays unexported.
func (a *QuestionDatabaseAdapter) getQuestionBySlug(ctx context.Context, slug string) (*domain.Question, error) {
	ex := GetExecutor(ctx, a.db)
	var modelQuestion models.Question
	query := `SELECT ` + questionColumns + ` FROM questions WHERE slug = :1`

	err := ex.GetContext(ctx, &modelQuestion, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by slug %s: %w", slug, err)
	}
	return toDomainQuestion(&modelQuestion), nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:         m.ID,
		Question:   m.Question,
		Answer:     m.Answer,
		Slug:       m.Slug,
		CategoryID: m.CategoryID,
	}
}

func toDomainQuestions(modelQuestions []models.Question) []*domain.Question {
	questions := make([]*domain.Question, 0, len(modelQuestions))
	for i := range modelQuestions {
		questions = append(questions, toDomainQuestion(&modelQuestions[i]))
	}
	return questions
}

func toModelQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	return &models.Question{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Slug:       q.Slug,
		CategoryID: q.CategoryID,
	}
}
