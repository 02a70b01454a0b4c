package handler

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"quiz-catalog/internal/config"
	"quiz-catalog/internal/domain"
	"quiz-catalog/internal/dto"
	"quiz-catalog/internal/logger"
	"quiz-catalog/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	// The error handler logs every translated error, so the logger must be
	// live before any request runs through the test apps.
	cfg := config.LoggerConfig{Env: "development", Level: "info"}
	if err := logger.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize logger for handler tests: %v", err)
	}

	exitCode := m.Run()

	_ = logger.Sync()
	os.Exit(exitCode)
}

// newCategoryApp wires a CategoryHandler around the mock service with the
// same routes and error handler main installs.
func newCategoryApp(mockService *MockCategoryService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	h := NewCategoryHandler(mockService)
	app.Get("/categories", h.GetCategories)
	app.Post("/categories", h.CreateCategory)
	app.Get("/categories/:slug", h.GetCategory)
	app.Patch("/categories/:slug", h.UpdateCategory)
	app.Delete("/categories/:slug", h.DeleteCategory)
	return app
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	err := json.NewDecoder(resp.Body).Decode(&body)
	assert.NoError(t, err)
	return body
}

func TestCategoryHandler_GetCategories(t *testing.T) {
	mockService := new(MockCategoryService)
	app := newCategoryApp(mockService)

	categories := []dto.CategoryResponse{
		{ID: 1, Title: "JavaScript", Slug: "javascript"},
		{ID: 2, Title: "Go", Slug: "go"},
	}
	mockService.On("GetCategories", mock.Anything, dto.Pagination{Limit: 10, Offset: 0}).Return(categories, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/categories", nil))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body []map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body, 2)
	assert.Equal(t, "javascript", body[0]["slug"])
	assert.Equal(t, float64(2), body[1]["id"])
	mockService.AssertExpectations(t)
}

func TestCategoryHandler_GetCategories_PaginationForwarded(t *testing.T) {
	mockService := new(MockCategoryService)
	app := newCategoryApp(mockService)

	mockService.On("GetCategories", mock.Anything, dto.Pagination{Limit: 5, Offset: 20}).Return([]dto.CategoryResponse{}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/categories?limit=5&offset=20", nil))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockService.AssertExpectations(t)
}

func TestCategoryHandler_GetCategories_UnusablePaginationFallsBack(t *testing.T) {
	mockService := new(MockCategoryService)
	app := newCategoryApp(mockService)

	// Negative and non-numeric values fall back to the defaults.
	mockService.On("GetCategories", mock.Anything, dto.Pagination{Limit: 10, Offset: 0}).Return([]dto.CategoryResponse{}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/categories?limit=-5&offset=abc", nil))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockService.AssertExpectations(t)
}

func TestCategoryHandler_GetCategory_Success(t *testing.T) {
	mockService := new(MockCategoryService)
	app := newCategoryApp(mockService)

	category := &dto.CategoryResponse{ID: 7, Title: "Networking", Slug: "networking"}
	mockService.On("GetCategoryBySlug", mock.Anything, "networking").Return(category, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/categories/networking", nil))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, map[string]interface{}{
		"id":    float64(7),
		"title": "Networking",
		"slug":  "networking",
	}, body)
	mockService.AssertExpectations(t)
}

func TestCategoryHandler_GetCategory_NotFound(t *testing.T) {
	mockService := new(MockCategoryService)
	app := newCategoryApp(mockService)

	mockService.On("GetCategoryBySlug", mock.Anything, "missing").Return(nil, domain.NewCategoryNotFoundError("missing"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/categories/missing", nil))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, map[string]interface{}{
		"code":    "NOT_FOUND",
		"message": `category "missing" not found`,
		"status":  float64(404),
		"details": map[string]interface{}{"slug": "missing"},
	}, body)
	mockService.AssertExpectations(t)
}

func TestCategoryHandler_CreateCategory_Success(t *testing.T) {
	mockService := new(MockCategoryService)
	app := newCategoryApp(mockService)

	created := &dto.CategoryResponse{ID: 3, Title: "Computer Science", Slug: "computer-science"}
	mockService.On("CreateCategory", mock.Anything, mock.MatchedBy(func(req *dto.CreateCategoryRequest) bool {
		return req.Title == "Computer Science"
	})).Return(created, nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/categories", dto.CreateCategoryRequest{Title: "Computer Science"}))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "computer-science", body["slug"])
	assert.Equal(t, float64(3), body["id"])
	mockService.AssertExpectations(t)
}

func TestCategoryHandler_CreateCategory_MalformedBody(t *testing.T) {
	mockService := new(MockCategoryService)
	app := newCategoryApp(mockService)

	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_INPUT", body["code"])
	assert.Equal(t, "invalid request body", body["message"])
	mockService.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
}

func TestCategoryHandler_CreateCategory_ValidationError(t *testing.T) {
	mockService := new(MockCategoryService)
	app := newCategoryApp(mockService)

	validationErrs := domain.ValidationErrors{domain.NewMissingFieldError("title")}
	mockService.On("CreateCategory", mock.Anything, mock.AnythingOfType("*dto.CreateCategoryRequest")).Return(nil, validationErrs)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/categories", dto.CreateCategoryRequest{Title: ""}))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, map[string]interface{}{
		"code":    "VALIDATION_ERROR",
		"message": "Request validation failed",
		"status":  float64(400),
		"errors": []interface{}{
			map[string]interface{}{"field": "title", "message": "is required"},
		},
	}, body)
	mockService.AssertExpectations(t)
}

func TestCategoryHandler_CreateCategory_DatabaseErrorIsOpaque(t *testing.T) {
	mockService := new(MockCategoryService)
	app := newCategoryApp(mockService)

	dbErr := domain.NewDatabaseError("failed to save category", assert.AnError)
	mockService.On("CreateCategory", mock.Anything, mock.AnythingOfType("*dto.CreateCategoryRequest")).Return(nil, dbErr)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/categories", dto.CreateCategoryRequest{Title: "Computer Science"}))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp)
	// Storage failures never leak their message to the client.
	assert.Equal(t, map[string]interface{}{
		"code":    "DATABASE_ERROR",
		"message": "Internal server error",
		"status":  float64(500),
	}, body)
	mockService.AssertExpectations(t)
}

func TestCategoryHandler_UpdateCategory_Success(t *testing.T) {
	mockService := new(MockCategoryService)
	app := newCategoryApp(mockService)

	newTitle := "React Native"
	updated := &dto.CategoryResponse{ID: 5, Title: "React Native", Slug: "react-native"}
	mockService.On("UpdateCategory", mock.Anything, "react", mock.MatchedBy(func(req *dto.UpdateCategoryRequest) bool {
		return req.Title != nil && *req.Title == "React Native"
	})).Return(updated, nil)

	resp, err := app.Test(jsonRequest(http.MethodPatch, "/categories/react", dto.UpdateCategoryRequest{Title: &newTitle}))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "react-native", body["slug"])
	mockService.AssertExpectations(t)
}

func TestCategoryHandler_DeleteCategory_Success(t *testing.T) {
	mockService := new(MockCategoryService)
	app := newCategoryApp(mockService)

	mockService.On("DeleteCategory", mock.Anything, "react").Return(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/categories/react", nil))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	mockService.AssertExpectations(t)
}

func TestCategoryHandler_DeleteCategory_NotFound(t *testing.T) {
	mockService := new(MockCategoryService)
	app := newCategoryApp(mockService)

	mockService.On("DeleteCategory", mock.Anything, "missing").Return(domain.NewCategoryNotFoundError("missing"))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/categories/missing", nil))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	mockService.AssertExpectations(t)
}
