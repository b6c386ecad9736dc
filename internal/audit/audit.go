// Package audit records registration lifecycle events. Events are enriched
// with request metadata and fanned out to one or more publishers.
package audit

import (
	"context"
	"strings"
	"time"

	"github.com/mssola/useragent"

	"examreg/internal/platform/privacy"
	"examreg/pkg/requestcontext"
)

type EventType string

const (
	EventRegistrationCommitted     EventType = "registration.committed"
	EventSignatureRejected         EventType = "payment.signature_rejected"
	EventRegistrationPersistFailed EventType = "registration.persist_failed"
)

// Path names which endpoint produced a registration.
const (
	PathPayment   = "payment"
	PathNoPayment = "no_payment"
)

// Event is transport-agnostic so publishers can fan out.
type Event struct {
	Type          EventType `json:"type"`
	TransactionID string    `json:"transaction_id,omitempty"`
	OrderID       string    `json:"order_id,omitempty"`
	RecordID      string    `json:"record_id,omitempty"`
	Path          string    `json:"path"`
	RequestID     string    `json:"request_id,omitempty"`
	ClientIP      string    `json:"client_ip,omitempty"`
	UserAgent     string    `json:"user_agent,omitempty"`
	Browser       string    `json:"browser,omitempty"`
	OS            string    `json:"os,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Publisher delivers one event to a sink.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NewEvent stamps an event with the request metadata carried by ctx. The
// client IP is anonymised before it leaves the process.
func NewEvent(ctx context.Context, typ EventType, path string) Event {
	ua := requestcontext.UserAgent(ctx)
	browser, os := describeAgent(ua)
	return Event{
		Type:      typ,
		Path:      path,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  privacy.AnonymizeIP(requestcontext.ClientIP(ctx)),
		UserAgent: ua,
		Browser:   browser,
		OS:        os,
		Timestamp: requestcontext.Now(ctx),
	}
}

func describeAgent(raw string) (browser, os string) {
	if strings.TrimSpace(raw) == "" {
		return "", ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if major, _, _ := strings.Cut(version, "."); major != "" && name != "" {
		name += " " + major
	}
	return strings.TrimSpace(name), strings.TrimSpace(ua.OS())
}
