package stream

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Hemanth-2OOT/Care-cloud/internal/engine"
	"github.com/Hemanth-2OOT/Care-cloud/internal/stream/redis"
)

type Config struct {
	Provider    string // redis for now, the switch leaves room for more
	RedisConfig *redis.StreamConfig
}

// NewConsumer builds the consumer for the configured provider. An empty
// provider falls back to redis.
func NewConsumer(
	ctx context.Context,
	cfg *Config,
	eng *engine.Engine,
	logger *zerolog.Logger,
) (Consumer, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := redis.Connect(ctx, cfg.RedisConfig)
		if err != nil {
			return nil, err
		}

		return redis.NewConsumer(
			client,
			cfg.RedisConfig.Stream,
			cfg.RedisConfig.Group,
			cfg.RedisConfig.ConsumerName,
			eng,
			logger,
		), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
