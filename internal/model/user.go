package model

import (
	"time"
)

// User is the local projection of the hosted identity store,
// holding only what notification dispatch and auth need.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  *string   `json:"full_name,omitempty" db:"full_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
