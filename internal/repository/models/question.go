package models

// Question is the database representation of a catalog question.
// CategoryID references categories.id; the foreign key restricts category
// deletion while questions remain attached.
type Question struct {
	ID         int64  `db:"id"`
	Question   string `db:"question"`
	Answer     string `db:"answer"`
	Slug       string `db:"slug"`
	CategoryID int64  `db:"category_id"`
}

// TableName returns the backing table.
func (Question) TableName() string {
	return "questions"
}
