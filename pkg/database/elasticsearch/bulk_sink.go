package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/huynhanx03/batchcollector/pkg/mq/batcher"
)

// BulkSink indexes every batch with one _bulk request.
type BulkSink[T any] struct {
	client     ElasticClient
	index      string
	documentID func(T) string
	refresh    string
}

var _ batcher.Consumer[struct{}] = (*BulkSink[struct{}])(nil)

// BulkOption configures a BulkSink.
type BulkOption[T any] func(*BulkSink[T])

// WithDocumentID sets the _id of each document. Without it Elasticsearch
// generates ids.
func WithDocumentID[T any](fn func(T) string) BulkOption[T] {
	return func(s *BulkSink[T]) {
		s.documentID = fn
	}
}

// WithRefresh sets the refresh parameter of each bulk request.
func WithRefresh[T any](refresh string) BulkOption[T] {
	return func(s *BulkSink[T]) {
		s.refresh = refresh
	}
}

// NewBulkSink creates a sink indexing into index.
func NewBulkSink[T any](client ElasticClient, index string, opts ...BulkOption[T]) *BulkSink[T] {
	s := &BulkSink[T]{
		client: client,
		index:  index,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type bulkAction struct {
	Index bulkMeta `json:"index"`
}

type bulkMeta struct {
	Index string `json:"_index"`
	ID    string `json:"_id,omitempty"`
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error,omitempty"`
	} `json:"items"`
}

// Consume writes the batch. Documents rejected individually by the cluster
// are reported as ErrBulkItemsFailed.
func (s *BulkSink[T]) Consume(ctx context.Context, batch *batcher.Batch[T]) error {
	body, err := s.encode(batch)
	if err != nil {
		return err
	}

	req := esapi.BulkRequest{
		Body:    bytes.NewReader(body),
		Refresh: s.refresh,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBulkRequestFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: %s", ErrBulkRequestFailed, res.Status())
	}

	var response bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	if !response.Errors {
		return nil
	}

	failed := 0
	var firstReason string
	for _, item := range response.Items {
		for _, result := range item {
			if result.Error == nil {
				continue
			}
			if failed == 0 {
				firstReason = result.Error.Type + ": " + result.Error.Reason
			}
			failed++
		}
	}
	return fmt.Errorf("%w: %d of %d documents, first: %s", ErrBulkItemsFailed, failed, batch.Len(), firstReason)
}

// encode builds the NDJSON body: one action line and one source line per item.
func (s *BulkSink[T]) encode(batch *batcher.Batch[T]) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	for _, item := range batch.All() {
		action := bulkAction{Index: bulkMeta{Index: s.index}}
		if s.documentID != nil {
			action.Index.ID = s.documentID(item)
		}

		// Encode terminates each value with a newline.
		if err := enc.Encode(action); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMarshalFailed, err)
		}
		if err := enc.Encode(item); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMarshalFailed, err)
		}
	}
	return buf.Bytes(), nil
}
