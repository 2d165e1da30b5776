package repository

import (
	"context"
	"time"

	"github.com/expensio/expensio/internal/domain/model"
)

// ExpenditureUpdate carries the mutable fields of an expenditure. Nil means
// keep the stored value.
type ExpenditureUpdate struct {
	Description *string
	Value       *float64
}

// ExpenditureRepository describes persistence operations with expenditures.
// Update and Delete are filtered by owner: they return ErrNotFound when no
// such expenditure exists and ErrForbidden when it belongs to another user,
// without mutating anything in either case.
type ExpenditureRepository interface {
	Create(ctx context.Context, userID int64, description string, value float64, date time.Time) (*model.Expenditure, error)
	GetByID(ctx context.Context, id int64) (*model.Expenditure, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Expenditure, error)
	Update(ctx context.Context, id, userID int64, update ExpenditureUpdate) (*model.Expenditure, error)
	Delete(ctx context.Context, id, userID int64) error
}
