package redis

import (
	"context"
	"fmt"

	redisV9 "github.com/redis/go-redis/v9"

	"github.com/huynhanx03/batchcollector/pkg/settings"
	"github.com/huynhanx03/batchcollector/pkg/utils"
)

// NewConnection connects to Redis and verifies the connection with a PING
// bounded by the dial timeout. cfg is not modified.
func NewConnection(ctx context.Context, cfg *settings.Redis) (*Engine, error) {
	resolved := withDefaults(*cfg)
	client := redisV9.NewClient(newOptions(resolved))

	pingCtx, cancel := context.WithTimeout(ctx, utils.ToDuration(resolved.DialTimeout))
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w: %v", ErrConnectionFailed, ErrPingFailed, err)
	}

	return &Engine{client: client}, nil
}
