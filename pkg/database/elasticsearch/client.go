package elasticsearch

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/huynhanx03/batchcollector/pkg/settings"
)

// New creates an Elasticsearch client and checks the cluster is reachable.
func New(ctx context.Context, cfg settings.Elasticsearch) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClientCreateFailed, err)
	}

	res, err := esapi.InfoRequest{}.Do(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPingFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrPingFailed, res.Status())
	}

	return client, nil
}
