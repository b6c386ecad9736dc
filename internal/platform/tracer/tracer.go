// Package tracer is a small tracing facade so services can emit spans without
// importing OpenTelemetry directly.
//
// Implementations:
//   - NoopTracer: tests and local runs
//   - OTelTracer: OpenTelemetry adapter over the global provider
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Span is an active trace span. End must be called exactly once.
type Span interface {
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
//
//	ctx, span := t.Start(ctx, tracer.SpanVerifyPayment, tracer.String(tracer.AttrOrderID, orderID))
//	defer span.End(err)
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration records value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// HashEmail returns a short SHA-256 prefix so traces can be correlated per
// registrant without carrying the address.
func HashEmail(email string) string {
	if email == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:8])
}

// Span names.
const (
	SpanVerifyPayment  = "registration.verify_payment"
	SpanRegister       = "registration.register"
	SpanSignatureCheck = "registration.signature_check"
	SpanPersist        = "registration.persist"
	SpanNotify         = "registration.notify"
	SpanProviderCreate = "payment.create_order"
)

// Attribute keys.
const (
	AttrOrderID       = "payment.order_id"
	AttrTransactionID = "registration.transaction_id"
	AttrRecordID      = "registration.record_id"
	AttrEmailHash     = "registration.email_hash"
	AttrSignatureOK   = "payment.signature_valid"
	AttrStoreDriver   = "store.driver"
)

// Event names.
const (
	EventAuditEmitted       = "audit.emitted"
	EventNotificationQueued = "notification.queued"
)
