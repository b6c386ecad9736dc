// Package models holds the registration domain types shared by store, service and handler.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// NoPaymentTransactionID marks records created through the no-payment path.
const NoPaymentTransactionID = "N/A"

// Fields the core reads from an otherwise opaque payload.
const (
	FieldFullName      = "fullName"
	FieldEmail         = "email"
	FieldMobileNumber  = "mobileNumber"
	FieldCountry       = "country"
	FieldExamType      = "examType"
	FieldState         = "state"
	FieldCity          = "city"
	FieldTransactionID = "transactionId"
)

// ErrNestedValue is returned when a payload field is an object or array.
var ErrNestedValue = errors.New("payload values must be scalars")

// RecordID is the store-generated identifier of a persisted record.
type RecordID string

func (id RecordID) String() string { return string(id) }

// Payload is the registrant's form submission. Values are kept as strings;
// JSON numbers and booleans are stored in their literal form and null drops the key.
type Payload map[string]string

func (p Payload) FullName() string { return p[FieldFullName] }
func (p Payload) Email() string    { return p[FieldEmail] }

// Clone returns a copy so callers cannot mutate a persisted record's payload.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// UnmarshalJSON accepts a flat JSON object of scalars. A JSON null leaves the
// payload untouched.
func (p *Payload) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("payload: %w", err)
	}
	out := make(Payload, len(raw))
	for k, v := range raw {
		s, keep, err := scalarString(v)
		if err != nil {
			return fmt.Errorf("payload field %q: %w", k, err)
		}
		if keep {
			out[k] = s
		}
	}
	*p = out
	return nil
}

func scalarString(v json.RawMessage) (string, bool, error) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return "", false, nil
	}
	switch v[0] {
	case 'n':
		return "", false, nil
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			return "", false, err
		}
		return strconv.FormatBool(b), true, nil
	case '{', '[':
		return "", false, ErrNestedValue
	default:
		var n json.Number
		if err := json.Unmarshal(v, &n); err != nil {
			return "", false, err
		}
		return n.String(), true, nil
	}
}

// Record is a persisted registration. Records are append-only.
type Record struct {
	ID            RecordID
	TransactionID string
	Payload       Payload
	CreatedAt     time.Time
}

// Document flattens the payload with the transaction id, matching the stored shape.
// The record's own transaction id wins over any "transactionId" key in the payload.
func (r *Record) Document() map[string]string {
	doc := make(map[string]string, len(r.Payload)+1)
	for k, v := range r.Payload {
		doc[k] = v
	}
	doc[FieldTransactionID] = r.TransactionID
	return doc
}

// IsPaid reports whether the record came through the payment path.
func (r *Record) IsPaid() bool {
	return r.TransactionID != NoPaymentTransactionID
}

// PaymentCallback is the provider's claim that an order was paid.
type PaymentCallback struct {
	OrderID   string
	PaymentID string
	Signature string
	Payload   Payload
}
