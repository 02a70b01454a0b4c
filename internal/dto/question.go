package dto

// QuestionResponse represents a question in the API response
// @Description Question information
type QuestionResponse struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Slug       string `json:"slug"`
	CategoryID int64  `json:"categoryId"`
}

// CreateQuestionRequest represents the body for creating a question
// @Description Request body for creating a question
type CreateQuestionRequest struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	CategoryID int64  `json:"categoryId"`
}

// UpdateQuestionRequest represents the body for partially updating a
// question. Pointer fields distinguish "not supplied" from "set to empty".
type UpdateQuestionRequest struct {
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	CategoryID *int64  `json:"categoryId"`
}
