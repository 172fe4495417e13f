package mongodb

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/huynhanx03/batchcollector/pkg/settings"
	"github.com/huynhanx03/batchcollector/pkg/utils"
)

const defaultTimeout = 10 // seconds

// New connects to MongoDB and pings the primary.
func New(ctx context.Context, cfg *settings.MongoDB) (*mongo.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	clientOpts := options.Client().
		ApplyURI(BuildURI(cfg)).
		SetConnectTimeout(utils.ToDuration(timeout)).
		SetServerSelectionTimeout(utils.ToDuration(timeout))
	if cfg.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		clientOpts.SetMinPoolSize(cfg.MinPoolSize)
	}
	if cfg.MaxConnIdleTime > 0 {
		clientOpts.SetMaxConnIdleTime(time.Duration(cfg.MaxConnIdleTime) * time.Second)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectFailed, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, utils.ToDuration(timeout))
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: %v", ErrPingFailed, err)
	}

	return client, nil
}

// Disconnect closes every connection of client.
func Disconnect(ctx context.Context, client *mongo.Client) error {
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrDisconnectFailed, err)
	}
	return nil
}

// BuildURI builds the connection string for cfg.
func BuildURI(cfg *settings.MongoDB) string {
	u := url.URL{
		Scheme: "mongodb",
		Host:   cfg.Host,
	}
	if cfg.Port > 0 {
		u.Host = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	}
	if cfg.Username != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	}
	return u.String()
}
