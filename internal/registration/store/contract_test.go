package store_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"examreg/internal/registration/models"
	"examreg/internal/registration/store"
	"examreg/pkg/testutil"
)

type recordStore interface {
	Save(ctx context.Context, record *models.Record) (models.RecordID, error)
	FindByID(ctx context.Context, id models.RecordID) (*models.Record, error)
	Count(ctx context.Context) (int64, error)
}

// contractSuite holds the behaviour every backend must share. Backend suites
// embed it and set Store in SetupTest after resetting their storage.
type contractSuite struct {
	suite.Suite
	Store   recordStore
	Unknown models.RecordID
}

func newRecord(transactionID string) *models.Record {
	return &models.Record{
		TransactionID: transactionID,
		Payload: models.Payload{
			models.FieldFullName: "Asha Rao",
			models.FieldEmail:    "asha@example.com",
			models.FieldExamType: "offline",
			models.FieldCity:     "Pune",
		},
		CreatedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
	}
}

func (s *contractSuite) TestSaveThenFind() {
	ctx := context.Background()

	id, err := s.Store.Save(ctx, newRecord("pay_123"))
	s.Require().NoError(err)
	s.NotEmpty(id)

	got, err := s.Store.FindByID(ctx, id)
	s.Require().NoError(err)
	s.Equal(id, got.ID)
	s.Equal("pay_123", got.TransactionID)
	s.Equal("Asha Rao", got.Payload.FullName())
	s.Equal("Pune", got.Payload[models.FieldCity])
	s.True(got.CreatedAt.Equal(time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)))
}

func (s *contractSuite) TestDuplicateTransactionCreatesTwoRecords() {
	ctx := context.Background()

	first, err := s.Store.Save(ctx, newRecord("pay_dup"))
	s.Require().NoError(err)
	second, err := s.Store.Save(ctx, newRecord("pay_dup"))
	s.Require().NoError(err)

	s.NotEqual(first, second)
	n, err := s.Store.Count(ctx)
	s.Require().NoError(err)
	s.EqualValues(2, n)
}

func (s *contractSuite) TestNoPaymentSentinelIsStored() {
	ctx := context.Background()

	id, err := s.Store.Save(ctx, newRecord(models.NoPaymentTransactionID))
	s.Require().NoError(err)

	got, err := s.Store.FindByID(ctx, id)
	s.Require().NoError(err)
	s.Equal("N/A", got.TransactionID)
	s.False(got.IsPaid())
}

func (s *contractSuite) TestFindUnknown() {
	_, err := s.Store.FindByID(context.Background(), s.Unknown)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *contractSuite) TestSaveNil() {
	_, err := s.Store.Save(context.Background(), nil)
	s.ErrorIs(err, store.ErrNilRecord)
}

func (s *contractSuite) TestConcurrentSavesAllPersist() {
	ctx := context.Background()

	ids, errs := testutil.RunConcurrentCollect(20, func(int) (models.RecordID, error) {
		return s.Store.Save(ctx, newRecord("pay_race"))
	})
	s.Require().Empty(errs)

	seen := make(map[models.RecordID]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	s.Len(seen, 20)

	n, err := s.Store.Count(ctx)
	s.Require().NoError(err)
	s.EqualValues(20, n)
}
