// Package store persists registration records. Every backend is append-only:
// Save always creates a new record, even for a transaction id already stored.
//
// Error contract:
//   - FindByID returns ErrNotFound for an unknown id
//   - infrastructure failures are returned wrapped with context
package store

import (
	"errors"
	"time"

	"examreg/internal/registration/models"
)

// ErrNotFound is returned when a record id is unknown.
var ErrNotFound = errors.New("registration not found")

// ErrNilRecord is returned when Save is called without a record.
var ErrNilRecord = errors.New("registration record is required")

// recordJSON is the serialized form used by the redis backend.
type recordJSON struct {
	ID            string            `json:"id"`
	TransactionID string            `json:"transaction_id"`
	Payload       map[string]string `json:"payload"`
	CreatedAt     int64             `json:"created_at"` // Unix nano
}

func recordToJSON(r *models.Record) *recordJSON {
	return &recordJSON{
		ID:            string(r.ID),
		TransactionID: r.TransactionID,
		Payload:       r.Payload,
		CreatedAt:     r.CreatedAt.UnixNano(),
	}
}

func recordFromJSON(j *recordJSON) *models.Record {
	payload := models.Payload(j.Payload)
	if payload == nil {
		payload = models.Payload{}
	}
	return &models.Record{
		ID:            models.RecordID(j.ID),
		TransactionID: j.TransactionID,
		Payload:       payload,
		CreatedAt:     time.Unix(0, j.CreatedAt).UTC(),
	}
}

func createdAt(r *models.Record) time.Time {
	if r.CreatedAt.IsZero() {
		return time.Now().UTC()
	}
	return r.CreatedAt.UTC()
}
