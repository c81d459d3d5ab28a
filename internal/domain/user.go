package domain

import "time"

// User represents a registered identity of the bookstore. IDs are assigned
// sequentially by the user repository and never reused.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
