package models

// Class is a named grouping of students. Name may be blank. Deleting a
// class cascades to its users at the schema level.
type Class struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Audit
}
