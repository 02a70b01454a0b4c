package domain

import "context"

// Question is a single catalog entry: free-text question and answer, the
// slug derived from the sanitized question text, and the owning category.
// Question and Answer are stored sanitized; raw markup never reaches the
// database.
type Question struct {
	ID         int64
	Question   string
	Answer     string
	Slug       string
	CategoryID int64
}

// NewQuestion creates a Question with its derived slug.
func NewQuestion(question, answer, slug string, categoryID int64) *Question {
	return &Question{
		Question:   question,
		Answer:     answer,
		Slug:       slug,
		CategoryID: categoryID,
	}
}

// QuestionRepository defines the interface for question persistence.
type QuestionRepository interface {
	// GetQuestions returns every question ordered by ascending id.
	GetQuestions(ctx context.Context) ([]*Question, error)

	// GetQuestionByID retrieves a question by its numeric id.
	// It returns (nil, nil) when no such question exists.
	GetQuestionByID(ctx context.Context, id int64) (*Question, error)

	// GetQuestionsByCategoryID returns the questions attached to a
	// category, ordered by ascending id. No questions yields an empty
	// slice, not nil.
	GetQuestionsByCategoryID(ctx context.Context, categoryID int64) ([]*Question, error)

	// SaveQuestion persists a new question and returns the stored record
	// including its generated id.
	SaveQuestion(ctx context.Context, question *Question) (*Question, error)

	// UpdateQuestion rewrites the question with the given id.
	// It returns (nil, nil) when the id no longer matches a row.
	UpdateQuestion(ctx context.Context, id int64, question *Question) (*Question, error)

	// DeleteQuestion removes the question with the given id and reports
	// whether a row was deleted.
	DeleteQuestion(ctx context.Context, id int64) (bool, error)
}
