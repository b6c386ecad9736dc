package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"examreg/internal/platform/privacy"
	"examreg/internal/registration/models"
	"examreg/pkg/platform/validation"
	"examreg/pkg/requestcontext"
)

const defaultTimeout = 30 * time.Second

// Dispatcher sends confirmations on detached goroutines. The request that
// triggered a dispatch never waits for it; Wait lets shutdown and tests drain.
type Dispatcher struct {
	mailer  Mailer
	from    string
	timeout time.Duration
	logger  *slog.Logger
	metrics *Metrics

	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithTimeout bounds each delivery attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

func NewDispatcher(mailer Mailer, from string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		mailer:  mailer,
		from:    from,
		timeout: defaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch schedules the confirmation for a persisted record and returns
// immediately. Records without a valid email are skipped.
func (d *Dispatcher) Dispatch(ctx context.Context, record *models.Record) {
	requestID := requestcontext.RequestID(ctx)
	email := record.Payload.Email()

	if !validation.IsEmail(email) {
		d.logger.WarnContext(ctx, "confirmation email skipped: invalid recipient",
			"request_id", requestID,
			"record_id", record.ID,
			"outcome", OutcomeSkipped,
		)
		d.metrics.observe(OutcomeSkipped, 0)
		return
	}

	msg, err := Render(d.from, record)
	if err != nil {
		d.logger.ErrorContext(ctx, "confirmation email not rendered",
			"request_id", requestID,
			"record_id", record.ID,
			"error", err,
			"outcome", OutcomeFailed,
		)
		d.metrics.observe(OutcomeFailed, 0)
		return
	}

	// The request context is cancelled once the response is written, so the
	// send runs on a detached context that keeps request-scoped values.
	sendCtx := context.WithoutCancel(ctx)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.WarnContext(ctx, "confirmation email dropped: dispatcher closed",
			"request_id", requestID,
			"record_id", record.ID,
			"outcome", OutcomeSkipped,
		)
		d.metrics.observe(OutcomeSkipped, 0)
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	d.metrics.inFlight(1)
	go func() {
		defer d.wg.Done()
		defer d.metrics.inFlight(-1)
		d.send(sendCtx, record, msg)
	}()
}

func (d *Dispatcher) send(ctx context.Context, record *models.Record, msg *Message) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	err := d.mailer.Send(ctx, msg)
	elapsed := time.Since(start)

	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"record_id", record.ID,
		"transaction_id", record.TransactionID,
		"recipient", privacy.MaskEmail(msg.To),
		"duration_ms", elapsed.Milliseconds(),
	}
	if err != nil {
		d.logger.ErrorContext(ctx, "confirmation email failed",
			append(attrs, "outcome", OutcomeFailed, "error", err)...)
		d.metrics.observe(OutcomeFailed, elapsed)
		return
	}
	d.logger.InfoContext(ctx, "confirmation email sent", append(attrs, "outcome", OutcomeSent)...)
	d.metrics.observe(OutcomeSent, elapsed)
}

// Close stops accepting dispatches and waits for in-flight deliveries.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return d.Wait(ctx)
}

// Wait blocks until every scheduled delivery has finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
