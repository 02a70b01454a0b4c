package dto

// Pagination defines the query parameters of windowed list requests.
type Pagination struct {
	Limit  int `query:"limit"`  // Number of items per page
	Offset int `query:"offset"` // Number of items to skip
}
