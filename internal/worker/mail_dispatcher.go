package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/expensio/expensio/internal/domain/model"
)

// Sender is the mail delivery capability required by the dispatcher.
type Sender interface {
	Send(ctx context.Context, to string, expenditure *model.Expenditure) error
}

type notification struct {
	email       string
	expenditure *model.Expenditure
}

// MailDispatcher delivers creation notifications in the background. Delivery
// is best-effort: failures are logged, never surfaced to the request that
// produced them, and a saturated queue drops the notification.
type MailDispatcher struct {
	sender      Sender
	sendTimeout time.Duration
	workers     int
	logger      *slog.Logger

	jobs   chan notification
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewMailDispatcher constructs a dispatcher with a bounded queue.
func NewMailDispatcher(sender Sender, queueSize, workers int, sendTimeout time.Duration, logger *slog.Logger) *MailDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}
	return &MailDispatcher{
		sender:      sender,
		sendTimeout: sendTimeout,
		workers:     workers,
		logger:      logger,
		jobs:        make(chan notification, queueSize),
	}
}

// Start launches background delivery workers.
func (d *MailDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop waits for all workers to finish.
func (d *MailDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// NotifyCreated enqueues a notification without blocking the caller.
func (d *MailDispatcher) NotifyCreated(email string, expenditure *model.Expenditure) {
	select {
	case d.jobs <- notification{email: email, expenditure: expenditure}:
	default:
		d.logger.Warn("mail queue full, dropping notification",
			slog.String("to", email),
			slog.Int64("expenditure_id", expenditure.ID),
		)
	}
}

func (d *MailDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-d.jobs:
			if !ok {
				return
			}
			d.deliver(ctx, job)
		}
	}
}

func (d *MailDispatcher) deliver(ctx context.Context, job notification) {
	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	if err := d.sender.Send(sendCtx, job.email, job.expenditure); err != nil {
		d.logger.Error("mail delivery failed",
			slog.String("to", job.email),
			slog.Int64("expenditure_id", job.expenditure.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	d.logger.Debug("mail delivered",
		slog.String("to", job.email),
		slog.Int64("expenditure_id", job.expenditure.ID),
	)
}
