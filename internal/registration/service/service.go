// Package service orchestrates a registration: verify the payment signature,
// persist the record, then hand it to the notifier. The HTTP response depends
// only on verification and persistence.
package service

import (
	"context"
	"log/slog"
	"time"

	"examreg/internal/audit"
	"examreg/internal/platform/tracer"
	"examreg/internal/registration/metrics"
	"examreg/internal/registration/models"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// Store persists records. Save must create a new record on every call.
type Store interface {
	Save(ctx context.Context, record *models.Record) (models.RecordID, error)
}

// Notifier schedules the confirmation email. Dispatch must not block on delivery.
type Notifier interface {
	Dispatch(ctx context.Context, record *models.Record)
}

type SignatureVerifier interface {
	Verify(orderID, paymentID, claimed string) bool
}

type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event)
}

// User-facing messages.
const (
	MsgInvalidSignature = "Invalid signature"
	MsgPersistFailed    = "Failed to save registration details."
)

const defaultStoreTimeout = 5 * time.Second

type Service struct {
	store        Store
	notifier     Notifier
	verifier     SignatureVerifier
	storeTimeout time.Duration
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       tracer.Tracer
	auditor      AuditEmitter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithAuditor(a AuditEmitter) Option {
	return func(s *Service) {
		s.auditor = a
	}
}

// WithStoreTimeout bounds each Save call.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

func New(store Store, notifier Notifier, verifier SignatureVerifier, opts ...Option) *Service {
	svc := &Service{
		store:        store,
		notifier:     notifier,
		verifier:     verifier,
		storeTimeout: defaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.tracer == nil {
		svc.tracer = tracer.NewNoop()
	}
	return svc
}
