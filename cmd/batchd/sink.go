package main

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/batchcollector/pkg/database/elasticsearch"
	"github.com/huynhanx03/batchcollector/pkg/database/mongodb"
	"github.com/huynhanx03/batchcollector/pkg/database/redis"
	"github.com/huynhanx03/batchcollector/pkg/ingest"
	"github.com/huynhanx03/batchcollector/pkg/mq/batcher"
	"github.com/huynhanx03/batchcollector/pkg/mq/kafka"
	"github.com/huynhanx03/batchcollector/pkg/settings"
)

// sink is the consumer of the collector and the release of its connection.
type sink struct {
	consumer batcher.Consumer[ingest.Item]
	close    func(ctx context.Context) error
}

func noClose(context.Context) error { return nil }

func newSink(ctx context.Context, cfg *settings.Config, log *zap.Logger) (*sink, error) {
	switch cfg.Sink.Kind {
	case settings.SinkLog:
		return &sink{consumer: logConsumer(log), close: noClose}, nil

	case settings.SinkKafka:
		producer, err := kafka.NewSyncProducer(cfg.Kafka)
		if err != nil {
			return nil, err
		}
		p := kafka.NewProducer[ingest.Item](producer, cfg.Kafka.Topic, kafka.WithKey(ingest.ItemID))
		return &sink{
			consumer: p,
			close:    func(context.Context) error { return p.Close() },
		}, nil

	case settings.SinkRedis:
		engine, err := redis.NewConnection(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &sink{
			consumer: redis.NewListSink[ingest.Item](engine.Client(), cfg.Redis.Key, cfg.Redis.MaxLen),
			close:    func(context.Context) error { return engine.Close() },
		}, nil

	case settings.SinkElasticsearch:
		client, err := elasticsearch.New(ctx, cfg.Elasticsearch)
		if err != nil {
			return nil, err
		}
		return &sink{
			consumer: elasticsearch.NewBulkSink[ingest.Item](client, cfg.Elasticsearch.Index,
				elasticsearch.WithDocumentID(ingest.ItemID),
			),
			close: noClose,
		}, nil

	case settings.SinkMongoDB:
		client, err := mongodb.New(ctx, &cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		collection := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		return &sink{
			consumer: mongodb.NewInsertSink[ingest.Item](collection),
			close:    func(ctx context.Context) error { return mongodb.Disconnect(ctx, client) },
		}, nil
	}

	return nil, errors.Errorf("unknown sink %q", cfg.Sink.Kind)
}

// logConsumer writes a summary of each batch to the log.
func logConsumer(log *zap.Logger) batcher.Consumer[ingest.Item] {
	return batcher.ConsumerFunc[ingest.Item](func(ctx context.Context, batch *batcher.Batch[ingest.Item]) error {
		first, _ := batch.Front()
		last, _ := batch.Back()
		log.Info("batch delivered",
			zap.Int("batch_size", batch.Len()),
			zap.String("first_id", first.ID),
			zap.String("last_id", last.ID),
		)
		return nil
	})
}
