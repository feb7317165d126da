package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nross83/storefront/internal/adapter/mailer"
)

const sendTimeout = 15 * time.Second

// MailDispatcher delivers notifications in the background. Enqueue never
// blocks the caller: when the queue is full, the message is dropped and
// logged. Delivery failures never propagate to the triggering operation.
type MailDispatcher struct {
	client  mailer.Client
	workers int
	logger  *slog.Logger

	jobs   chan mailer.Message
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewMailDispatcher constructs the dispatcher with a bounded queue.
func NewMailDispatcher(client mailer.Client, queueSize, workers int, logger *slog.Logger) *MailDispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	if workers <= 0 {
		workers = 1
	}
	return &MailDispatcher{
		client:  client,
		workers: workers,
		logger:  logger,
		jobs:    make(chan mailer.Message, queueSize),
	}
}

// Start launches background delivery.
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

// Stop waits for in-flight deliveries to finish. Queued messages that no
// worker picked up yet are dropped.
func (d *MailDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Enqueue hands a message to the background workers without blocking.
func (d *MailDispatcher) Enqueue(msg mailer.Message) {
	select {
	case d.jobs <- msg:
	default:
		d.logger.Warn("mail queue full, dropping message",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
		)
	}
}

func (d *MailDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-d.jobs:
			d.deliver(ctx, msg)
		}
	}
}

func (d *MailDispatcher) deliver(ctx context.Context, msg mailer.Message) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.client.Send(sendCtx, msg); err != nil {
		d.logger.Error("mail delivery failed",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
			slog.String("error", err.Error()),
		)
	}
}
