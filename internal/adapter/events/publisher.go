package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/expensio/expensio/internal/domain/model"
)

// Publisher emits domain events for downstream consumers.
type Publisher interface {
	ExpenditureCreated(ctx context.Context, expenditure *model.Expenditure) error
}

// messageWriter is the subset of kafka.Writer used here; tests substitute a
// stub.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// expenditureCreated mirrors the JSON payload written to the topic.
type expenditureCreated struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Description string    `json:"description"`
	Value       float64   `json:"value"`
	Date        time.Time `json:"date"`
}

// KafkaPublisher publishes expenditure events to a Kafka topic, keyed by the
// owning user so one user's events stay ordered.
type KafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewKafkaPublisher creates a publisher writing to the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: logger,
	}
}

// ExpenditureCreated publishes a single creation event.
func (p *KafkaPublisher) ExpenditureCreated(ctx context.Context, expenditure *model.Expenditure) error {
	payload, err := json.Marshal(expenditureCreated{
		ID:          expenditure.ID,
		UserID:      expenditure.UserID,
		Description: expenditure.Description,
		Value:       expenditure.Value,
		Date:        expenditure.Date,
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(expenditure.UserID, 10)),
		Value: payload,
	})
}

// Close releases the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) ExpenditureCreated(context.Context, *model.Expenditure) error {
	return nil
}
