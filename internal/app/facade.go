package app

import (
	"context"
	"time"

	"github.com/expensio/expensio/internal/domain/model"
	"github.com/expensio/expensio/internal/domain/repository"
	"github.com/expensio/expensio/internal/usecase"
)

// ExpenseFacade aggregates application use cases behind the HTTP surface.
type ExpenseFacade struct {
	auth         *usecase.AuthUseCase
	expenditures *usecase.ExpenditureUseCase
}

func NewExpenseFacade(auth *usecase.AuthUseCase, expenditures *usecase.ExpenditureUseCase) *ExpenseFacade {
	return &ExpenseFacade{auth: auth, expenditures: expenditures}
}

func (f *ExpenseFacade) SignUp(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.SignUp(ctx, email, password)
	return token, err
}

func (f *ExpenseFacade) SignIn(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.SignIn(ctx, email, password)
	return token, err
}

func (f *ExpenseFacade) ParseToken(token string) (int64, string, error) {
	return f.auth.ParseToken(token)
}

func (f *ExpenseFacade) CreateExpenditure(ctx context.Context, userID int64, email, description string, value float64, date time.Time) (*model.Expenditure, error) {
	return f.expenditures.Create(ctx, userID, email, description, value, date)
}

func (f *ExpenseFacade) Expenditure(ctx context.Context, userID, expenditureID int64) (*model.Expenditure, error) {
	return f.expenditures.Find(ctx, userID, expenditureID)
}

func (f *ExpenseFacade) Expenditures(ctx context.Context, userID int64) ([]model.Expenditure, error) {
	return f.expenditures.List(ctx, userID)
}

func (f *ExpenseFacade) EditExpenditure(ctx context.Context, userID, expenditureID int64, update repository.ExpenditureUpdate) (*model.Expenditure, error) {
	return f.expenditures.Edit(ctx, userID, expenditureID, update)
}

func (f *ExpenseFacade) RemoveExpenditure(ctx context.Context, userID, expenditureID int64) error {
	return f.expenditures.Remove(ctx, userID, expenditureID)
}
