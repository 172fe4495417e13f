package redis

import (
	"context"
	"encoding/json"
	"fmt"

	redisV9 "github.com/redis/go-redis/v9"

	"github.com/huynhanx03/batchcollector/pkg/mq/batcher"
)

// ListSink appends every batch to a Redis list, one JSON element per item.
type ListSink[T any] struct {
	client redisV9.Cmdable
	key    string
	maxLen int64
}

var _ batcher.Consumer[struct{}] = (*ListSink[struct{}])(nil)

// NewListSink creates a sink writing to key. When maxLen is positive the list
// is trimmed to its newest maxLen elements after each batch.
func NewListSink[T any](client redisV9.Cmdable, key string, maxLen int64) *ListSink[T] {
	return &ListSink[T]{
		client: client,
		key:    key,
		maxLen: maxLen,
	}
}

// Consume pushes the batch in a single transaction.
func (s *ListSink[T]) Consume(ctx context.Context, batch *batcher.Batch[T]) error {
	values := make([]any, 0, batch.Len())
	for _, item := range batch.All() {
		b, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMarshalFailed, err)
		}
		values = append(values, b)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.key, values...)
	if s.maxLen > 0 {
		pipe.LTrim(ctx, s.key, -s.maxLen, -1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrPushFailed, err)
	}
	return nil
}
