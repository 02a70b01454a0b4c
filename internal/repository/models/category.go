package models

// Category is the database representation of a catalog category.
// Every column is NOT NULL; slugs and titles carry unique constraints.
type Category struct {
	ID    int64  `db:"id"`
	Title string `db:"title"`
	Slug  string `db:"slug"`
}

// TableName returns the backing table. sqlx does not need it; tooling that
// expects the ORM convention does.
func (Category) TableName() string {
	return "categories"
}
