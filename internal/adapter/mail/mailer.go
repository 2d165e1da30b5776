package mail

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/expensio/expensio/internal/config"
	"github.com/expensio/expensio/internal/domain/model"
)

// Sender delivers a creation notification to the expenditure owner.
type Sender interface {
	Send(ctx context.Context, to string, expenditure *model.Expenditure) error
}

// dialer is the subset of gomail.Dialer used by SMTPSender; tests substitute
// a stub.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender implements Sender over an SMTP transport.
type SMTPSender struct {
	dialer dialer
	from   string
	logger *slog.Logger
}

// NewSMTPSender creates an SMTP sender from mail transport configuration.
func NewSMTPSender(cfg config.SMTP, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// Send composes and delivers the notification. Delivery runs in a goroutine
// so the context deadline bounds a slow SMTP server.
func (s *SMTPSender) Send(ctx context.Context, to string, expenditure *model.Expenditure) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Expenditure recorded")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nA new expenditure was recorded on your account.\n\nDescription: %s\nValue: %.2f\nDate: %s\n",
		to, expenditure.Description, expenditure.Value, expenditure.Date.Format("2006-01-02"),
	))

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NopSender is used when no SMTP transport is configured.
type NopSender struct {
	logger *slog.Logger
}

// NewNopSender creates a sender that only logs.
func NewNopSender(logger *slog.Logger) *NopSender {
	return &NopSender{logger: logger}
}

func (s *NopSender) Send(_ context.Context, to string, expenditure *model.Expenditure) error {
	s.logger.Debug("mail disabled, dropping notification",
		slog.String("to", to),
		slog.Int64("expenditure_id", expenditure.ID),
	)
	return nil
}
