package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/expensio/expensio/internal/domain/model"
	testhelpers "github.com/expensio/expensio/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewMailDispatcherDefaults(t *testing.T) {
	d := NewMailDispatcher(&testhelpers.SenderStub{}, 0, 0, 0, discardLogger())
	if d.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", d.workers)
	}
	if cap(d.jobs) != 1 {
		t.Fatalf("expected queue capacity default to 1, got %d", cap(d.jobs))
	}
	if d.sendTimeout != 10*time.Second {
		t.Fatalf("expected send timeout default to 10s, got %v", d.sendTimeout)
	}
}

func TestMailDispatcherDelivers(t *testing.T) {
	sender := &testhelpers.SenderStub{}
	d := NewMailDispatcher(sender, 4, 2, time.Second, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	exp := &model.Expenditure{ID: 7, UserID: 3, Description: "coffee", Value: 4.5}
	d.NotifyCreated("user@example.com", exp)

	deadline := time.After(500 * time.Millisecond)
	for {
		if len(sender.Deliveries()) > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for mail delivery")
		case <-time.After(5 * time.Millisecond):
		}
	}

	d.Stop()
	sent := sender.Deliveries()
	if len(sent) != 1 {
		t.Fatalf("expected one delivery, got %d", len(sent))
	}
	if sent[0].Email != "user@example.com" {
		t.Fatalf("unexpected recipient %q", sent[0].Email)
	}
	if sent[0].Expenditure.ID != exp.ID {
		t.Fatalf("unexpected expenditure id %d", sent[0].Expenditure.ID)
	}
}

func TestMailDispatcherDropsWhenSaturated(t *testing.T) {
	sender := &testhelpers.SenderStub{}
	d := NewMailDispatcher(sender, 1, 1, time.Second, discardLogger())

	exp := &model.Expenditure{ID: 1}
	// Workers are not started, so only the queue capacity is available.
	d.NotifyCreated("a@example.com", exp)
	d.NotifyCreated("b@example.com", exp)

	if got := len(d.jobs); got != 1 {
		t.Fatalf("expected saturated queue to hold 1 job, got %d", got)
	}
}

func TestMailDispatcherSurvivesSendFailure(t *testing.T) {
	sender := &testhelpers.SenderStub{
		SendFn: func(context.Context, string, *model.Expenditure) error {
			return errors.New("smtp down")
		},
	}
	d := NewMailDispatcher(sender, 4, 1, time.Second, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.NotifyCreated("a@example.com", &model.Expenditure{ID: 1})
	d.NotifyCreated("b@example.com", &model.Expenditure{ID: 2})

	deadline := time.After(500 * time.Millisecond)
	for {
		if len(sender.Deliveries()) == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for deliveries after failure")
		case <-time.After(5 * time.Millisecond):
		}
	}
	d.Stop()
}

func TestMailDispatcherStopIsIdempotent(t *testing.T) {
	d := NewMailDispatcher(&testhelpers.SenderStub{}, 1, 1, time.Second, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	d.Stop()
	d.Stop()
}
