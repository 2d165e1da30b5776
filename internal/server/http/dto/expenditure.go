package dto

import (
	"errors"
	"time"

	"github.com/expensio/expensio/internal/domain/model"
)

// ErrInvalidDate is returned when a date payload cannot be parsed.
var ErrInvalidDate = errors.New("invalid date format")

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// CreateExpenditureRequest describes a new expenditure payload.
type CreateExpenditureRequest struct {
	Description string  `json:"description" binding:"required,max=191"`
	Value       float64 `json:"value" binding:"required,gt=0"`
	Date        string  `json:"date" binding:"required"`
}

// ParsedDate interprets the date field as RFC3339 or a plain calendar day.
func (r CreateExpenditureRequest) ParsedDate() (time.Time, error) {
	return parseDate(r.Date)
}

// EditExpenditureRequest describes a partial update. Absent fields are kept.
type EditExpenditureRequest struct {
	Description *string  `json:"description" binding:"omitempty,max=191"`
	Value       *float64 `json:"value" binding:"omitempty,gt=0"`
}

// ExpenditureResponse represents a stored expenditure.
type ExpenditureResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Description string    `json:"description"`
	Value       float64   `json:"value"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MessageResponse carries a human-readable result message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries an error message or a list of validation messages.
type ErrorResponse struct {
	Message any `json:"message"`
}

// ToExpenditureResponse converts a domain record into its wire form.
func ToExpenditureResponse(expenditure *model.Expenditure) ExpenditureResponse {
	return ExpenditureResponse{
		ID:          expenditure.ID,
		UserID:      expenditure.UserID,
		Description: expenditure.Description,
		Value:       expenditure.Value,
		Date:        expenditure.Date,
		CreatedAt:   expenditure.CreatedAt,
		UpdatedAt:   expenditure.UpdatedAt,
	}
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
