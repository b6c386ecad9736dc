package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"examreg/internal/platform/config"
	"examreg/internal/platform/database"
	"examreg/internal/platform/health"
	"examreg/internal/platform/mongo"
	"examreg/internal/platform/redis"
	"examreg/internal/registration/service"
	"examreg/internal/registration/store"
	"examreg/migrations"
)

// storeBackend is the selected registration store and the clients it holds open.
type storeBackend struct {
	store service.Store
	redis *redis.Client
	close func(ctx context.Context)
}

func openStore(ctx context.Context, cfg config.Server, reg prometheus.Registerer, h *health.Handler, log *slog.Logger) (*storeBackend, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn("using in-memory registration store; records are lost on restart")
		return &storeBackend{store: store.NewInMemory(), close: func(context.Context) {}}, nil

	case config.StorePostgres:
		pool, err := database.New(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if pool == nil {
			return nil, fmt.Errorf("STORE_DRIVER=postgres requires DATABASE_URL")
		}
		if err := database.Migrate(ctx, pool.DB(), migrations.FS); err != nil {
			pool.Close() //nolint:errcheck // best-effort cleanup on init failure
			return nil, err
		}
		h.RegisterCheck("postgres", pool.Health)
		return &storeBackend{
			store: store.NewPostgres(pool.DB()),
			close: func(context.Context) {
				if err := pool.Close(); err != nil {
					log.Warn("close database", "error", err)
				}
			},
		}, nil

	case config.StoreMongo:
		client, err := mongo.New(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("STORE_DRIVER=mongo requires MONGODB_URI")
		}
		h.RegisterCheck("mongo", client.Health)
		return &storeBackend{
			store: store.NewMongo(client.Database()),
			close: func(ctx context.Context) {
				if err := client.Close(ctx); err != nil {
					log.Warn("close mongo", "error", err)
				}
			},
		}, nil

	case config.StoreRedis:
		client, err := redis.New(ctx, cfg.Redis, redis.NewPoolMetrics(reg))
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("STORE_DRIVER=redis requires REDIS_URL")
		}
		h.RegisterCheck("redis", client.Health)
		return &storeBackend{
			store: store.NewRedis(client.Client),
			redis: client,
			close: func(context.Context) {
				if err := client.Close(); err != nil {
					log.Warn("close redis", "error", err)
				}
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
