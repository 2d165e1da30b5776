package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domainErrors "github.com/expensio/expensio/internal/domain/errors"
	"github.com/expensio/expensio/internal/domain/repository"
	testhelpers "github.com/expensio/expensio/internal/test"
	"github.com/expensio/expensio/internal/usecase"
)

func newFacade() (*ExpenseFacade, *testhelpers.UserRepositoryStub, *testhelpers.ExpenditureRepositoryStub, *testhelpers.NotifierStub) {
	userRepo := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, string, error) { return 99, "user@example.com", nil }}
	authUC := usecase.NewAuthUseCase(userRepo, testhelpers.HasherStub{}, strategy)

	expenditureRepo := testhelpers.NewExpenditureRepositoryStub()
	notifier := &testhelpers.NotifierStub{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	expenditureUC := usecase.NewExpenditureUseCase(expenditureRepo, notifier, &testhelpers.PublisherStub{}, logger)

	facade := NewExpenseFacade(authUC, expenditureUC)
	return facade, userRepo, expenditureRepo, notifier
}

func TestExpenseFacadeAuth(t *testing.T) {
	facade, users, _, _ := newFacade()
	token, err := facade.SignUp(context.Background(), "user@example.com", "pass")
	if err != nil {
		t.Fatalf("signup returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	stored, err := users.GetByEmail(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.Email != "user@example.com" {
		t.Fatalf("unexpected stored email %q", stored.Email)
	}

	token, err = facade.SignIn(context.Background(), "user@example.com", "pass")
	if err != nil {
		t.Fatalf("signin returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	id, email, err := facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 || email != "user@example.com" {
		t.Fatalf("unexpected identity %d %q", id, email)
	}
}

func TestExpenseFacadeExpenditures(t *testing.T) {
	facade, _, _, notifier := newFacade()
	ctx := context.Background()
	date := time.Now().Add(-time.Hour)

	created, err := facade.CreateExpenditure(ctx, 7, "user@example.com", "lunch", 12.5, date)
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if created.UserID != 7 || created.Description != "lunch" {
		t.Fatalf("unexpected record %+v", created)
	}
	if len(notifier.Notifications()) != 1 {
		t.Fatalf("expected one notification")
	}

	found, err := facade.Expenditure(ctx, 7, created.ID)
	if err != nil {
		t.Fatalf("find returned error: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected id %d, got %d", created.ID, found.ID)
	}

	list, err := facade.Expenditures(ctx, 7)
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected list result: %v err=%v", list, err)
	}

	newValue := 20.0
	edited, err := facade.EditExpenditure(ctx, 7, created.ID, repository.ExpenditureUpdate{Value: &newValue})
	if err != nil {
		t.Fatalf("edit returned error: %v", err)
	}
	if edited.Value != newValue || edited.Description != "lunch" {
		t.Fatalf("unexpected edited record %+v", edited)
	}

	if err := facade.RemoveExpenditure(ctx, 7, created.ID); err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	if _, err := facade.Expenditure(ctx, 7, created.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found after removal, got %v", err)
	}
}
