package usecase

import (
	"context"
	"log/slog"
	"time"

	domainErrors "github.com/expensio/expensio/internal/domain/errors"
	"github.com/expensio/expensio/internal/domain/model"
	"github.com/expensio/expensio/internal/domain/repository"
)

// CreationNotifier enqueues a best-effort mail notification for a freshly
// created expenditure.
type CreationNotifier interface {
	NotifyCreated(email string, expenditure *model.Expenditure)
}

// EventPublisher emits expenditure lifecycle events.
type EventPublisher interface {
	ExpenditureCreated(ctx context.Context, expenditure *model.Expenditure) error
}

// ExpenditureUseCase encapsulates expenditure lifecycle and ownership rules.
type ExpenditureUseCase struct {
	expenditures repository.ExpenditureRepository
	notifier     CreationNotifier
	events       EventPublisher
	logger       *slog.Logger
	now          func() time.Time
}

// NewExpenditureUseCase constructs ExpenditureUseCase.
func NewExpenditureUseCase(expenditures repository.ExpenditureRepository, notifier CreationNotifier, events EventPublisher, logger *slog.Logger) *ExpenditureUseCase {
	return &ExpenditureUseCase{
		expenditures: expenditures,
		notifier:     notifier,
		events:       events,
		logger:       logger,
		now:          time.Now,
	}
}

// Create validates the date and persists a new expenditure bound to userID.
// The date check runs before the insert, so a rejected expenditure is never
// written. Exactly one notification is enqueued per successful create; the
// created event is published best-effort.
func (u *ExpenditureUseCase) Create(ctx context.Context, userID int64, email, description string, value float64, date time.Time) (*model.Expenditure, error) {
	if date.After(u.now()) {
		return nil, domainErrors.ErrFutureDate
	}

	expenditure, err := u.expenditures.Create(ctx, userID, description, value, date)
	if err != nil {
		return nil, err
	}

	u.notifier.NotifyCreated(email, expenditure)

	if err := u.events.ExpenditureCreated(ctx, expenditure); err != nil {
		u.logger.Error("publish expenditure created failed",
			slog.Int64("expenditure_id", expenditure.ID),
			slog.String("error", err.Error()),
		)
	}

	return expenditure, nil
}

// Find returns the expenditure when it exists and belongs to userID.
func (u *ExpenditureUseCase) Find(ctx context.Context, userID, expenditureID int64) (*model.Expenditure, error) {
	expenditure, err := u.expenditures.GetByID(ctx, expenditureID)
	if err != nil {
		return nil, err
	}
	if expenditure.UserID != userID {
		return nil, domainErrors.ErrForbidden
	}
	return expenditure, nil
}

// List returns every expenditure owned by userID, newest date first.
func (u *ExpenditureUseCase) List(ctx context.Context, userID int64) ([]model.Expenditure, error) {
	return u.expenditures.ListByUser(ctx, userID)
}

// Edit applies a partial description/value update; the repository enforces
// ownership before anything is mutated.
func (u *ExpenditureUseCase) Edit(ctx context.Context, userID, expenditureID int64, update repository.ExpenditureUpdate) (*model.Expenditure, error) {
	return u.expenditures.Update(ctx, expenditureID, userID, update)
}

// Remove deletes the expenditure when it belongs to userID.
func (u *ExpenditureUseCase) Remove(ctx context.Context, userID, expenditureID int64) error {
	return u.expenditures.Delete(ctx, expenditureID, userID)
}
