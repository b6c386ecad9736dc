package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"examreg/internal/registration/models"
)

const (
	recordKeyPrefix = "registration:"
	// indexKey is a sorted set of record ids scored by creation time.
	indexKey = "registrations:by_created_at"
)

// RedisStore keeps one JSON value per record plus a creation-time index.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func recordKey(id string) string {
	return recordKeyPrefix + id
}

func (s *RedisStore) Save(ctx context.Context, record *models.Record) (models.RecordID, error) {
	if record == nil {
		return "", ErrNilRecord
	}
	stored := *record
	stored.ID = models.RecordID(uuid.NewString())
	stored.CreatedAt = createdAt(record)

	data, err := json.Marshal(recordToJSON(&stored))
	if err != nil {
		return "", fmt.Errorf("encode registration: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, recordKey(string(stored.ID)), data, 0)
		pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(stored.CreatedAt.UnixNano()), Member: string(stored.ID)})
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("save registration: %w", err)
	}
	return stored.ID, nil
}

func (s *RedisStore) FindByID(ctx context.Context, id models.RecordID) (*models.Record, error) {
	data, err := s.client.Get(ctx, recordKey(string(id))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("find %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	var j recordJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("decode registration: %w", err)
	}
	return recordFromJSON(&j), nil
}

func (s *RedisStore) Count(ctx context.Context) (int64, error) {
	n, err := s.client.ZCard(ctx, indexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}
