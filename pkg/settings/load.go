package settings

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
	"github.com/sethvargo/go-envconfig"

	"github.com/huynhanx03/batchcollector/pkg/mq/batcher"
	"github.com/huynhanx03/batchcollector/pkg/utils"
)

const (
	SinkLog           = "log"
	SinkKafka         = "kafka"
	SinkRedis         = "redis"
	SinkElasticsearch = "elasticsearch"
	SinkMongoDB       = "mongodb"
)

var (
	ErrLoadFailed    = errors.New("failed to load configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

var validate = validator.New()

// Load reads the configuration from the environment and validates it.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, pkgerrors.Wrap(ErrLoadFailed, err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the settings required by the selected sink.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return pkgerrors.Wrap(ErrInvalidConfig, err.Error())
	}

	switch c.Sink.Kind {
	case SinkKafka:
		if len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "" {
			return pkgerrors.Wrap(ErrInvalidConfig, "kafka sink requires brokers and a topic")
		}
	case SinkRedis:
		if c.Redis.Host == "" || c.Redis.Key == "" {
			return pkgerrors.Wrap(ErrInvalidConfig, "redis sink requires a host and a key")
		}
	case SinkElasticsearch:
		if len(c.Elasticsearch.Addresses) == 0 || c.Elasticsearch.Index == "" {
			return pkgerrors.Wrap(ErrInvalidConfig, "elasticsearch sink requires addresses and an index")
		}
	case SinkMongoDB:
		if c.MongoDB.Host == "" || c.MongoDB.Database == "" || c.MongoDB.Collection == "" {
			return pkgerrors.Wrap(ErrInvalidConfig, "mongodb sink requires a host, a database and a collection")
		}
	}
	return nil
}

// RateLimiting converts the batching settings into a collector configuration.
func (b Batching) RateLimiting() batcher.RateLimitingConfiguration {
	cfg := batcher.NewRateLimitingConfiguration(b.MaxNumberOfItems, b.MaxTimeBetweenPostsSeconds)
	if b.MinTimeBetweenPostsSeconds >= 0 {
		cfg = cfg.WithMinTimeBetweenPosts(b.MinTimeBetweenPostsSeconds)
	}
	return cfg
}

// TickInterval returns the period of the collector's tick source.
func (b Batching) TickInterval() time.Duration {
	return utils.ToDurationMs(b.TickIntervalMs)
}
