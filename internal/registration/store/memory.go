package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"examreg/internal/registration/models"
)

// InMemoryStore keeps records in a map, for tests and local development.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[models.RecordID]*models.Record
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{records: make(map[models.RecordID]*models.Record)}
}

func (s *InMemoryStore) Save(_ context.Context, record *models.Record) (models.RecordID, error) {
	if record == nil {
		return "", ErrNilRecord
	}
	stored := &models.Record{
		ID:            models.RecordID(uuid.NewString()),
		TransactionID: record.TransactionID,
		Payload:       record.Payload.Clone(),
		CreatedAt:     createdAt(record),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[stored.ID] = stored
	return stored.ID, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id models.RecordID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("find %s: %w", id, ErrNotFound)
	}
	cp := *r
	cp.Payload = r.Payload.Clone()
	return &cp, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

// CountByTransactionID is used by tests asserting duplicate-delivery behaviour.
func (s *InMemoryStore) CountByTransactionID(_ context.Context, transactionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.records {
		if r.TransactionID == transactionID {
			n++
		}
	}
	return n
}
