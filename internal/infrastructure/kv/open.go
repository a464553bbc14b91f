package kv

import (
	"context"
	"fmt"

	"github.com/matespatagonicos/storefront/internal/core/ports"
	mongodb "github.com/matespatagonicos/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/matespatagonicos/storefront/internal/infrastructure/db/redis"
	"github.com/matespatagonicos/storefront/internal/pkg/config"
)

// Open connects the configured backend. The returned close function releases
// its connections.
func Open(ctx context.Context, cfg *config.Config) (ports.KeyValueStore, func(context.Context) error, error) {
	switch cfg.KVBackend {
	case config.BackendMemory:
		return NewMemory(), func(context.Context) error { return nil }, nil

	case config.BackendRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		return redisdb.NewKVStore(client), func(context.Context) error { return client.Close() }, nil

	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		return mongodb.NewKVStore(db), client.Disconnect, nil

	default:
		return nil, nil, fmt.Errorf("kv: unsupported backend %q", cfg.KVBackend)
	}
}
