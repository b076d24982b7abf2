package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	redisconn "github.com/Hemanth-2OOT/Care-cloud/internal/redis"
)

const connectRetries = 5

type StreamConfig struct {
	Addr         string
	Password     string
	Stream       string
	Group        string
	ConsumerName string
}

func NewStreamConfig(addr string, password string, stream string, group string, consumerName string) *StreamConfig {
	return &StreamConfig{
		Addr:         addr,
		Password:     password,
		Stream:       stream,
		Group:        group,
		ConsumerName: consumerName,
	}
}

// Connect dials the Redis behind cfg.
func Connect(ctx context.Context, cfg *StreamConfig) (*redis.Client, error) {
	return redisconn.ConnectRedis(ctx, cfg.Addr, cfg.Password, connectRetries)
}
