package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/accredly/console-api/config"
	"github.com/accredly/console-api/internal/adapters/memkv"
	redisadapter "github.com/accredly/console-api/internal/adapters/redis"
	"github.com/accredly/console-api/internal/ports"
	"github.com/accredly/console-api/internal/settings"
	"github.com/accredly/console-api/internal/tokenstore"
)

// Stores bundles the storage-backed dependencies built at startup.
type Stores struct {
	// Durable survives restarts; Session lives only as long as the process.
	Durable ports.KeyValue
	Session ports.KeyValue

	Tokens *tokenstore.Store
	Prefs  settings.Repository

	// RedisClient is non-nil only in redis mode; callers own Close.
	RedisClient *redis.Client
}

// BuildStores constructs both storage scopes, the token store, and the
// settings repository. In memory mode everything lives in the process.
func BuildStores(cfg config.StorageConfig, logger *slog.Logger) (*Stores, error) {
	session := memkv.New()

	var durable ports.KeyValue
	var client *redis.Client

	switch cfg.Mode {
	case config.StorageModeMemory:
		durable = memkv.New()
	case config.StorageModeRedis:
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}

		durable = redisadapter.NewKVStoreWithPrefix(client, cfg.KeyPrefix)
		logger.Info("durable storage connected", "addr", cfg.Redis.Addr, "prefix", cfg.KeyPrefix)
	default:
		return nil, fmt.Errorf("unknown storage mode %q", cfg.Mode)
	}

	return &Stores{
		Durable:     durable,
		Session:     session,
		Tokens:      tokenstore.New(durable, session),
		Prefs:       settings.NewKVRepository(durable),
		RedisClient: client,
	}, nil
}

// Close releases the stores' external connections.
func (s *Stores) Close() error {
	if s.RedisClient != nil {
		return s.RedisClient.Close()
	}
	return nil
}
