//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"examreg/internal/registration/store"
	"examreg/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	contractSuite
	redis *containers.RedisContainer
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.Store = store.NewRedis(s.redis.Client)
	s.Unknown = "missing"
}

func (s *RedisStoreSuite) TestIndexTracksEverySave() {
	ctx := context.Background()
	id, err := s.Store.Save(ctx, newRecord("pay_idx"))
	s.Require().NoError(err)

	members, err := s.redis.Client.ZRange(ctx, "registrations:by_created_at", 0, -1).Result()
	s.Require().NoError(err)
	s.Equal([]string{string(id)}, members)

	exists, err := s.redis.Client.Exists(ctx, "registration:"+string(id)).Result()
	s.Require().NoError(err)
	s.EqualValues(1, exists)
}
