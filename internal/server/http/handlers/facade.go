package handlers

import (
	"context"
	"time"

	"github.com/expensio/expensio/internal/domain/model"
	"github.com/expensio/expensio/internal/domain/repository"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, string, error)
}

// ExpenditureFacade encapsulates expenditure operations exposed via HTTP.
type ExpenditureFacade interface {
	CreateExpenditure(ctx context.Context, userID int64, email, description string, value float64, date time.Time) (*model.Expenditure, error)
	Expenditure(ctx context.Context, userID, expenditureID int64) (*model.Expenditure, error)
	Expenditures(ctx context.Context, userID int64) ([]model.Expenditure, error)
	EditExpenditure(ctx context.Context, userID, expenditureID int64, update repository.ExpenditureUpdate) (*model.Expenditure, error)
	RemoveExpenditure(ctx context.Context, userID, expenditureID int64) error
}

// ExpenseFacade aggregates the full set of operations used across handlers.
type ExpenseFacade interface {
	AuthFacade
	ExpenditureFacade
}
