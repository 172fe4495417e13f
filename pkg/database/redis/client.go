package redis

import (
	"cmp"
	"net"
	"strconv"

	redisV9 "github.com/redis/go-redis/v9"

	"github.com/huynhanx03/batchcollector/pkg/settings"
	"github.com/huynhanx03/batchcollector/pkg/utils"
)

const (
	defaultPoolSize        = 10
	defaultMinIdleConns    = 5
	defaultPoolTimeout     = 5
	defaultDialTimeout     = 5
	defaultReadTimeout     = 3
	defaultWriteTimeout    = 3
	defaultMaxRetries      = 3
	defaultMinRetryBackoff = 300 // millis
	defaultMaxRetryBackoff = 500 // millis
)

// Engine owns the go-redis client the list sink writes through.
type Engine struct {
	client *redisV9.Client
}

// Close closes the Redis client
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Client returns the underlying redis client
func (e *Engine) Client() *redisV9.Client {
	return e.client
}

// withDefaults fills the zero fields of cfg. Negative values are kept so
// that MaxRetries -1 still disables retries.
func withDefaults(cfg settings.Redis) settings.Redis {
	cfg.PoolSize = cmp.Or(cfg.PoolSize, defaultPoolSize)
	cfg.MinIdleConns = cmp.Or(cfg.MinIdleConns, defaultMinIdleConns)
	cfg.PoolTimeout = cmp.Or(cfg.PoolTimeout, defaultPoolTimeout)
	cfg.DialTimeout = cmp.Or(cfg.DialTimeout, defaultDialTimeout)
	cfg.ReadTimeout = cmp.Or(cfg.ReadTimeout, defaultReadTimeout)
	cfg.WriteTimeout = cmp.Or(cfg.WriteTimeout, defaultWriteTimeout)
	cfg.MaxRetries = cmp.Or(cfg.MaxRetries, defaultMaxRetries)
	cfg.MinRetryBackoff = cmp.Or(cfg.MinRetryBackoff, defaultMinRetryBackoff)
	cfg.MaxRetryBackoff = cmp.Or(cfg.MaxRetryBackoff, defaultMaxRetryBackoff)
	return cfg
}

func newOptions(cfg settings.Redis) *redisV9.Options {
	addr := cfg.Host
	if cfg.Port > 0 {
		addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	}

	return &redisV9.Options{
		Addr:            addr,
		Password:        cfg.Password,
		DB:              cfg.Database,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		MaxRetries:      cfg.MaxRetries,
		DialTimeout:     utils.ToDuration(cfg.DialTimeout),
		ReadTimeout:     utils.ToDuration(cfg.ReadTimeout),
		WriteTimeout:    utils.ToDuration(cfg.WriteTimeout),
		PoolTimeout:     utils.ToDuration(cfg.PoolTimeout),
		MinRetryBackoff: utils.ToDurationMs(cfg.MinRetryBackoff),
		MaxRetryBackoff: utils.ToDurationMs(cfg.MaxRetryBackoff),
	}
}
