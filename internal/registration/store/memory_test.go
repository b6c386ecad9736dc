package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"examreg/internal/registration/models"
	"examreg/internal/registration/store"
)

type InMemoryStoreSuite struct {
	contractSuite
	memory *store.InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.memory = store.NewInMemory()
	s.Store = s.memory
	s.Unknown = "00000000-0000-0000-0000-000000000000"
}

func (s *InMemoryStoreSuite) TestStoredPayloadIsIsolatedFromCaller() {
	ctx := context.Background()
	rec := newRecord("pay_1")

	id, err := s.memory.Save(ctx, rec)
	s.Require().NoError(err)
	rec.Payload[models.FieldFullName] = "mutated"

	got, err := s.memory.FindByID(ctx, id)
	s.Require().NoError(err)
	s.Equal("Asha Rao", got.Payload.FullName())

	got.Payload[models.FieldFullName] = "mutated again"
	again, _ := s.memory.FindByID(ctx, id)
	s.Equal("Asha Rao", again.Payload.FullName())
}
