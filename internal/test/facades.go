package test

import (
	"context"
	"sync"
	"time"

	"github.com/expensio/expensio/internal/domain/model"
	"github.com/expensio/expensio/internal/domain/repository"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	SignUpFn     func(context.Context, string, string) (string, error)
	SignInFn     func(context.Context, string, string) (string, error)
	ParseTokenFn func(string) (int64, string, error)
}

// SignUp delegates to the override or returns a fixed token.
func (s AuthFacadeStub) SignUp(ctx context.Context, email, password string) (string, error) {
	if s.SignUpFn != nil {
		return s.SignUpFn(ctx, email, password)
	}
	return "token", nil
}

// SignIn delegates to the override or returns a fixed token.
func (s AuthFacadeStub) SignIn(ctx context.Context, email, password string) (string, error) {
	if s.SignInFn != nil {
		return s.SignInFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken delegates to the override or accepts any token as user 1.
func (s AuthFacadeStub) ParseToken(token string) (int64, string, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return 1, "user@example.com", nil
}

// ExpenditureFacadeStub simulates expenditure operations.
type ExpenditureFacadeStub struct {
	CreateFn func(context.Context, int64, string, string, float64, time.Time) (*model.Expenditure, error)
	FindFn   func(context.Context, int64, int64) (*model.Expenditure, error)
	ListFn   func(context.Context, int64) ([]model.Expenditure, error)
	EditFn   func(context.Context, int64, int64, repository.ExpenditureUpdate) (*model.Expenditure, error)
	RemoveFn func(context.Context, int64, int64) error
}

// CreateExpenditure delegates to the override or echoes the input.
func (s ExpenditureFacadeStub) CreateExpenditure(ctx context.Context, userID int64, email, description string, value float64, date time.Time) (*model.Expenditure, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, email, description, value, date)
	}
	return &model.Expenditure{ID: 1, UserID: userID, Description: description, Value: value, Date: date}, nil
}

// Expenditure delegates to the override or returns a canned record.
func (s ExpenditureFacadeStub) Expenditure(ctx context.Context, userID, expenditureID int64) (*model.Expenditure, error) {
	if s.FindFn != nil {
		return s.FindFn(ctx, userID, expenditureID)
	}
	return &model.Expenditure{ID: expenditureID, UserID: userID}, nil
}

// Expenditures delegates to the override or returns one canned record.
func (s ExpenditureFacadeStub) Expenditures(ctx context.Context, userID int64) ([]model.Expenditure, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return []model.Expenditure{{ID: 1, UserID: userID, Description: "lunch", Value: 12.5}}, nil
}

// EditExpenditure delegates to the override or echoes the update.
func (s ExpenditureFacadeStub) EditExpenditure(ctx context.Context, userID, expenditureID int64, update repository.ExpenditureUpdate) (*model.Expenditure, error) {
	if s.EditFn != nil {
		return s.EditFn(ctx, userID, expenditureID, update)
	}
	expenditure := &model.Expenditure{ID: expenditureID, UserID: userID}
	if update.Description != nil {
		expenditure.Description = *update.Description
	}
	if update.Value != nil {
		expenditure.Value = *update.Value
	}
	return expenditure, nil
}

// RemoveExpenditure delegates to the override or succeeds.
func (s ExpenditureFacadeStub) RemoveExpenditure(ctx context.Context, userID, expenditureID int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, expenditureID)
	}
	return nil
}

// ExpenseFacadeStub combines auth and expenditure stubs for router tests.
type ExpenseFacadeStub struct {
	AuthFacadeStub
	ExpenditureFacadeStub
}

// NotificationCall stores information about NotifyCreated invocations.
type NotificationCall struct {
	Email       string
	Expenditure *model.Expenditure
}

// NotifierStub records enqueued notifications.
type NotifierStub struct {
	mu    sync.Mutex
	Calls []NotificationCall
}

// NotifyCreated records the notification request.
func (s *NotifierStub) NotifyCreated(email string, expenditure *model.Expenditure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, NotificationCall{Email: email, Expenditure: expenditure})
}

// Notifications returns a snapshot of recorded calls.
func (s *NotifierStub) Notifications() []NotificationCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]NotificationCall(nil), s.Calls...)
}

// PublisherStub records published events.
type PublisherStub struct {
	mu        sync.Mutex
	Published []*model.Expenditure
	Err       error
}

// ExpenditureCreated records the event or returns the configured error.
func (s *PublisherStub) ExpenditureCreated(_ context.Context, expenditure *model.Expenditure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Published = append(s.Published, expenditure)
	return nil
}

// Events returns a snapshot of recorded events.
func (s *PublisherStub) Events() []*model.Expenditure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.Expenditure(nil), s.Published...)
}

// SenderStub records mail deliveries for dispatcher tests.
type SenderStub struct {
	mu     sync.Mutex
	SendFn func(context.Context, string, *model.Expenditure) error
	Sent   []NotificationCall
}

// Send records the delivery or delegates to the override.
func (s *SenderStub) Send(ctx context.Context, to string, expenditure *model.Expenditure) error {
	s.mu.Lock()
	s.Sent = append(s.Sent, NotificationCall{Email: to, Expenditure: expenditure})
	fn := s.SendFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, to, expenditure)
	}
	return nil
}

// Deliveries returns a snapshot of recorded sends.
func (s *SenderStub) Deliveries() []NotificationCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]NotificationCall(nil), s.Sent...)
}
