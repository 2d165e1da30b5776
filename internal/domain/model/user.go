package model

import "time"

// User represents a registered account. PasswordHash never leaves the
// service boundary.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
