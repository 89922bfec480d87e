package models

import "time"

// Audit carries the bookkeeping columns shared by entities: creation and
// modification timestamps plus an active flag. Embedded by value rather
// than inherited.
type Audit struct {
	CreatedOn    time.Time `json:"created_on" db:"created_on"`
	LastModified time.Time `json:"last_modified" db:"last_modified"`
	Active       bool      `json:"active" db:"active"`
}
