package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expensio/expensio/internal/domain/model"
	"github.com/expensio/expensio/internal/server/http/handlers"
	testhelpers "github.com/expensio/expensio/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.ExpenseFacadeStub{
		ExpenditureFacadeStub: testhelpers.ExpenditureFacadeStub{
			ListFn: func(context.Context, int64) ([]model.Expenditure, error) {
				return []model.Expenditure{{ID: 1, UserID: 1, Description: "lunch", Value: 12.5, Date: time.Unix(0, 0)}}, nil
			},
		},
	}
	engine := Setup(facade, logger)

	body, _ := json.Marshal(map[string]string{"email": "user@example.com", "password": "pass"})
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for signup, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/expenditure", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for list, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/expenditure", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", resp.Code)
	}
}

var _ handlers.ExpenseFacade = (*testhelpers.ExpenseFacadeStub)(nil)
