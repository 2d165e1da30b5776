package test

import (
	"context"
	"time"

	domainErrors "github.com/expensio/expensio/internal/domain/errors"
	"github.com/expensio/expensio/internal/domain/model"
	"github.com/expensio/expensio/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.Next++
	s.Users[email] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ExpenditureRepositoryStub keeps expenditures in-memory and honors the
// owner-filter contract of the real repository. Function overrides take
// precedence when set.
type ExpenditureRepositoryStub struct {
	CreateFn     func(context.Context, int64, string, float64, time.Time) (*model.Expenditure, error)
	GetByIDFn    func(context.Context, int64) (*model.Expenditure, error)
	ListByUserFn func(context.Context, int64) ([]model.Expenditure, error)
	UpdateFn     func(context.Context, int64, int64, repository.ExpenditureUpdate) (*model.Expenditure, error)
	DeleteFn     func(context.Context, int64, int64) error

	Expenditures map[int64]*model.Expenditure
	Next         int64
	Err          error
}

// NewExpenditureRepositoryStub constructs stub repository with initialized maps.
func NewExpenditureRepositoryStub() *ExpenditureRepositoryStub {
	return &ExpenditureRepositoryStub{
		Expenditures: make(map[int64]*model.Expenditure),
		Next:         1,
	}
}

// Create stores a new expenditure bound to userID.
func (s *ExpenditureRepositoryStub) Create(ctx context.Context, userID int64, description string, value float64, date time.Time) (*model.Expenditure, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, description, value, date)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Expenditures == nil {
		s.Expenditures = make(map[int64]*model.Expenditure)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	now := time.Now()
	expenditure := &model.Expenditure{
		ID:          s.Next,
		UserID:      userID,
		Description: description,
		Value:       value,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.Next++
	s.Expenditures[expenditure.ID] = expenditure
	return expenditure, nil
}

// GetByID fetches expenditure by identifier or returns not found.
func (s *ExpenditureRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Expenditure, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if expenditure, ok := s.Expenditures[id]; ok {
		return expenditure, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns all expenditures owned by userID.
func (s *ExpenditureRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Expenditure, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Expenditure
	for _, expenditure := range s.Expenditures {
		if expenditure.UserID == userID {
			result = append(result, *expenditure)
		}
	}
	return result, nil
}

// Update mutates description/value when the row belongs to userID.
func (s *ExpenditureRepositoryStub) Update(ctx context.Context, id, userID int64, update repository.ExpenditureUpdate) (*model.Expenditure, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, userID, update)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	expenditure, ok := s.Expenditures[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if expenditure.UserID != userID {
		return nil, domainErrors.ErrForbidden
	}
	if update.Description != nil {
		expenditure.Description = *update.Description
	}
	if update.Value != nil {
		expenditure.Value = *update.Value
	}
	expenditure.UpdatedAt = time.Now()
	return expenditure, nil
}

// Delete removes the row when it belongs to userID.
func (s *ExpenditureRepositoryStub) Delete(ctx context.Context, id, userID int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id, userID)
	}
	if s.Err != nil {
		return s.Err
	}
	expenditure, ok := s.Expenditures[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if expenditure.UserID != userID {
		return domainErrors.ErrForbidden
	}
	delete(s.Expenditures, id)
	return nil
}
