package domain

// Category groups a user's notes. Ownership is by foreign key only;
// related entities are loaded through explicit repository calls.
type Category struct {
	ID     int64
	Name   string
	UserID int64
}

type Note struct {
	ID         int64
	Name       string
	Content    string
	CategoryID int64
}
