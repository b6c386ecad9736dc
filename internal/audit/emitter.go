package audit

import (
	"context"
	"log/slog"
	"sync"
)

const defaultBuffer = 256

// Emitter queues events and publishes them on a background goroutine so the
// request path never waits on a sink. When the buffer is full the event is
// dropped and logged.
type Emitter struct {
	publisher Publisher
	events    chan Event
	logger    *slog.Logger
	wg        sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

type EmitterOption func(*Emitter)

func WithBuffer(size int) EmitterOption {
	return func(e *Emitter) {
		if size > 0 {
			e.events = make(chan Event, size)
		}
	}
}

func WithEmitterLogger(logger *slog.Logger) EmitterOption {
	return func(e *Emitter) {
		e.logger = logger
	}
}

func NewEmitter(publisher Publisher, opts ...EmitterOption) *Emitter {
	e := &Emitter{
		publisher: publisher,
		events:    make(chan Event, defaultBuffer),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.wg.Add(1)
	go e.run()
	return e
}

func (e *Emitter) run() {
	defer e.wg.Done()
	for event := range e.events {
		if err := e.publisher.Publish(context.Background(), event); err != nil {
			e.logger.Error("failed to publish audit event",
				"error", err,
				"type", event.Type,
				"request_id", event.RequestID,
			)
		}
	}
}

// Emit never blocks. Events emitted after Close are dropped.
func (e *Emitter) Emit(ctx context.Context, event Event) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		e.logger.WarnContext(ctx, "audit emitter closed, event dropped",
			"type", event.Type,
			"request_id", event.RequestID,
		)
		return
	}
	select {
	case e.events <- event:
	default:
		e.logger.WarnContext(ctx, "audit buffer full, event dropped",
			"type", event.Type,
			"request_id", event.RequestID,
		)
	}
}

// Close stops accepting events and waits for the queue to drain or ctx to end.
func (e *Emitter) Close(ctx context.Context) error {
	e.mu.Lock()
	if !e.closed {
		e.closed = true
		close(e.events)
	}
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
