package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/huynhanx03/batchcollector/pkg/mq/batcher"
)

// InsertSink stores every batch with one ordered InsertMany.
type InsertSink[T any] struct {
	collection Inserter
}

var _ batcher.Consumer[struct{}] = (*InsertSink[struct{}])(nil)

// NewInsertSink creates a sink writing into collection.
func NewInsertSink[T any](collection Inserter) *InsertSink[T] {
	return &InsertSink[T]{collection: collection}
}

// Consume inserts the batch in item order. With an ordered insert the
// documents before a failing one stay written.
func (s *InsertSink[T]) Consume(ctx context.Context, batch *batcher.Batch[T]) error {
	docs := make([]interface{}, 0, batch.Len())
	for _, item := range batch.All() {
		docs = append(docs, item)
	}

	if _, err := s.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("%w: %v", ErrInsertFailed, err)
	}
	return nil
}
