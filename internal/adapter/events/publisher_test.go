package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/fx/fxtest"

	"github.com/expensio/expensio/internal/config"
	"github.com/expensio/expensio/internal/domain/model"
)

type writerStub struct {
	written []kafka.Message
	writeFn func(ctx context.Context, msgs ...kafka.Message) error
	closed  bool
}

func (w *writerStub) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.written = append(w.written, msgs...)
	if w.writeFn != nil {
		return w.writeFn(ctx, msgs...)
	}
	return nil
}

func (w *writerStub) Close() error {
	w.closed = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewKafkaPublisher(t *testing.T) {
	publisher := NewKafkaPublisher([]string{"broker:9092"}, "expenditure.events", discardLogger())
	writer, ok := publisher.writer.(*kafka.Writer)
	if !ok {
		t.Fatalf("expected kafka writer, got %T", publisher.writer)
	}
	if writer.Topic != "expenditure.events" {
		t.Fatalf("unexpected topic: %q", writer.Topic)
	}
}

func TestKafkaPublisherExpenditureCreated(t *testing.T) {
	stub := &writerStub{}
	publisher := &KafkaPublisher{writer: stub, logger: discardLogger()}

	date := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	err := publisher.ExpenditureCreated(context.Background(), &model.Expenditure{
		ID: 11, UserID: 3, Description: "lunch", Value: 12.5, Date: date,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stub.written) != 1 {
		t.Fatalf("expected single message, got %d", len(stub.written))
	}
	msg := stub.written[0]
	if string(msg.Key) != "3" {
		t.Fatalf("unexpected key: %q", string(msg.Key))
	}

	var event expenditureCreated
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if event.ID != 11 || event.UserID != 3 || event.Description != "lunch" || event.Value != 12.5 {
		t.Fatalf("unexpected event: %+v", event)
	}
	if !event.Date.Equal(date) {
		t.Fatalf("unexpected date: %s", event.Date)
	}
}

func TestKafkaPublisherWriteError(t *testing.T) {
	stub := &writerStub{writeFn: func(context.Context, ...kafka.Message) error {
		return errors.New("broker unavailable")
	}}
	publisher := &KafkaPublisher{writer: stub, logger: discardLogger()}

	if err := publisher.ExpenditureCreated(context.Background(), &model.Expenditure{ID: 1}); err == nil {
		t.Fatal("expected error")
	}
}

func TestKafkaPublisherClose(t *testing.T) {
	stub := &writerStub{}
	publisher := &KafkaPublisher{writer: stub, logger: discardLogger()}
	if err := publisher.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stub.closed {
		t.Fatal("expected writer to be closed")
	}
}

func TestNopPublisher(t *testing.T) {
	if err := (NopPublisher{}).ExpenditureCreated(context.Background(), &model.Expenditure{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewPublisherSelection(t *testing.T) {
	lc := fxtest.NewLifecycle(t)

	publisher := newPublisher(publisherParams{Lifecycle: lc, Config: &config.Config{}, Logger: discardLogger()})
	if _, ok := publisher.(NopPublisher); !ok {
		t.Fatalf("expected NopPublisher without brokers, got %T", publisher)
	}

	publisher = newPublisher(publisherParams{
		Lifecycle: lc,
		Config:    &config.Config{KafkaBrokers: []string{"broker:9092"}, KafkaTopic: "expenditure.events"},
		Logger:    discardLogger(),
	})
	if _, ok := publisher.(*KafkaPublisher); !ok {
		t.Fatalf("expected KafkaPublisher with brokers, got %T", publisher)
	}
}
