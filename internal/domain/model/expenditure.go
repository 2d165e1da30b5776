package model

import "time"

// Expenditure is a single expense record owned by exactly one user. UserID
// and Date are fixed at creation; only Description and Value may change
// afterwards.
type Expenditure struct {
	ID          int64
	UserID      int64
	Description string
	Value       float64
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
