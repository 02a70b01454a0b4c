package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"quiz-catalog/internal/domain"
	"quiz-catalog/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func setupQuestionTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func questionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "question", "answer", "slug", "category_id"})
}

// --- Tests for Converter Functions ---

func TestToDomainQuestion(t *testing.T) {
	modelQuestion := &models.Question{
		ID:         5,
		Question:   "What is CSS?",
		Answer:     "A styling language",
		Slug:       "what-is-css",
		CategoryID: 2,
	}

	domainQuestion := toDomainQuestion(modelQuestion)
	assert.NotNil(t, domainQuestion)
	assert.Equal(t, modelQuestion.ID, domainQuestion.ID)
	assert.Equal(t, modelQuestion.Question, domainQuestion.Question)
	assert.Equal(t, modelQuestion.Answer, domainQuestion.Answer)
	assert.Equal(t, modelQuestion.Slug, domainQuestion.Slug)
	assert.Equal(t, modelQuestion.CategoryID, domainQuestion.CategoryID)

	assert.Nil(t, toDomainQuestion(nil))
}

func TestToModelQuestion(t *testing.T) {
	domainQuestion := domain.NewQuestion("What is CSS?", "A styling language", "what-is-css", 2)

	modelQuestion := toModelQuestion(domainQuestion)
	assert.NotNil(t, modelQuestion)
	assert.Equal(t, domainQuestion.Question, modelQuestion.Question)
	assert.Equal(t, domainQuestion.Answer, modelQuestion.Answer)
	assert.Equal(t, domainQuestion.Slug, modelQuestion.Slug)
	assert.Equal(t, domainQuestion.CategoryID, modelQuestion.CategoryID)

	assert.Nil(t, toModelQuestion(nil))
}

// --- Tests for Adapter Methods ---

func TestQuestionAdapter_GetQuestions(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)
	defer db.Close()

	rows := questionRows().
		AddRow(1, "What is CSS?", "A styling language", "what-is-css", 2).
		AddRow(2, "What is HTML?", "A markup language", "what-is-html", 2)

	mock.ExpectQuery(`FROM questions\s+ORDER BY id ASC`).
		WillReturnRows(rows)

	questions, err := repo.GetQuestions(context.Background())

	assert.NoError(t, err)
	assert.Len(t, questions, 2)
	assert.Equal(t, "what-is-css", questions[0].Slug)
	assert.Equal(t, int64(2), questions[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionAdapter_GetQuestionByID(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectQuery(`FROM questions WHERE id = :1`).
		WithArgs(int64(5)).
		WillReturnRows(questionRows().AddRow(5, "What is CSS?", "A styling language", "what-is-css", 2))

	question, err := repo.GetQuestionByID(context.Background(), 5)

	assert.NoError(t, err)
	assert.NotNil(t, question)
	assert.Equal(t, int64(5), question.ID)
	assert.Equal(t, int64(2), question.CategoryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionAdapter_GetQuestionByID_NotFound(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectQuery(`FROM questions WHERE id = :1`).
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	question, err := repo.GetQuestionByID(context.Background(), 999)

	assert.NoError(t, err, "not found is signalled by (nil, nil), not an error")
	assert.Nil(t, question)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionAdapter_GetQuestionsByCategoryID(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)
	defer db.Close()

	rows := questionRows().
		AddRow(1, "What is CSS?", "A styling language", "what-is-css", 2)

	mock.ExpectQuery(`FROM questions\s+WHERE category_id = :1\s+ORDER BY id ASC`).
		WithArgs(int64(2)).
		WillReturnRows(rows)

	questions, err := repo.GetQuestionsByCategoryID(context.Background(), 2)

	assert.NoError(t, err)
	assert.Len(t, questions, 1)
	assert.Equal(t, int64(2), questions[0].CategoryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionAdapter_GetQuestionsByCategoryID_Empty(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectQuery(`FROM questions\s+WHERE category_id = :1\s+ORDER BY id ASC`).
		WithArgs(int64(7)).
		WillReturnRows(questionRows())

	questions, err := repo.GetQuestionsByCategoryID(context.Background(), 7)

	assert.NoError(t, err)
	assert.NotNil(t, questions, "a category without questions yields an empty slice, not nil")
	assert.Len(t, questions, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionAdapter_SaveQuestion(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO questions (question, answer, slug, category_id) VALUES (:1, :2, :3, :4)`)).
		WithArgs("What is CSS?", "A styling language", "what-is-css", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(`FROM questions WHERE slug = :1`).
		WithArgs("what-is-css").
		WillReturnRows(questionRows().AddRow(9, "What is CSS?", "A styling language", "what-is-css", 2))

	created, err := repo.SaveQuestion(context.Background(), domain.NewQuestion("What is CSS?", "A styling language", "what-is-css", 2))

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, int64(9), created.ID)
	assert.Equal(t, "what-is-css", created.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionAdapter_SaveQuestion_InsertError(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO questions (question, answer, slug, category_id) VALUES (:1, :2, :3, :4)`)).
		WithArgs("What is CSS?", "A styling language", "what-is-css", int64(404)).
		WillReturnError(errors.New("ORA-02291: integrity constraint (QUIZ_CATALOG.FK_QUESTIONS_CATEGORY) violated - parent key not found"))

	created, err := repo.SaveQuestion(context.Background(), domain.NewQuestion("What is CSS?", "A styling language", "what-is-css", 404))

	assert.Error(t, err)
	assert.Nil(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionAdapter_UpdateQuestion(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectExec(`UPDATE questions SET question = :1, answer = :2, slug = :3, category_id = :4 WHERE id = :5`).
		WithArgs("What is SCSS?", "A CSS preprocessor", "what-is-scss", int64(2), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(`FROM questions WHERE id = :1`).
		WithArgs(int64(9)).
		WillReturnRows(questionRows().AddRow(9, "What is SCSS?", "A CSS preprocessor", "what-is-scss", 2))

	updated, err := repo.UpdateQuestion(context.Background(), 9, domain.NewQuestion("What is SCSS?", "A CSS preprocessor", "what-is-scss", 2))

	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.Equal(t, "what-is-scss", updated.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionAdapter_UpdateQuestion_NoRows(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectExec(`UPDATE questions SET question = :1, answer = :2, slug = :3, category_id = :4 WHERE id = :5`).
		WithArgs("What is SCSS?", "A CSS preprocessor", "what-is-scss", int64(2), int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := repo.UpdateQuestion(context.Background(), 404, domain.NewQuestion("What is SCSS?", "A CSS preprocessor", "what-is-scss", 2))

	assert.NoError(t, err)
	assert.Nil(t, updated, "zero affected rows means the id no longer exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionAdapter_DeleteQuestion(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM questions WHERE id = :1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteQuestion(context.Background(), 9)

	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionAdapter_DeleteQuestion_NoRows(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM questions WHERE id = :1`).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteQuestion(context.Background(), 404)

	assert.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
