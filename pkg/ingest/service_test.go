package ingest

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"

	"github.com/huynhanx03/batchcollector/pkg/common/apperr"
	"github.com/huynhanx03/batchcollector/pkg/common/http/response"
	"github.com/huynhanx03/batchcollector/pkg/mq/batcher"
)

var epoch = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestService(c batcher.BatchCollector[Item]) *Service {
	return NewService("orders", c, &sequentialIDs{}, clockz.NewFakeClockAt(epoch), nil)
}

func TestService_PushItems(t *testing.T) {
	stub := &stubCollector{}
	svc := newTestService(stub)

	res, err := svc.PushItems(context.Background(), &PushItemsRequest{Items: []ItemInput{
		{Payload: map[string]any{"n": 1}},
		{ID: "client-7", Source: "web", Payload: map[string]any{"n": 2}},
		{Payload: map[string]any{"n": 3}},
	}})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Accepted)
	assert.Equal(t, []string{"id-1", "client-7", "id-2"}, res.IDs)

	require.Len(t, stub.pushed, 3)
	for i, it := range stub.pushed {
		assert.Equal(t, res.IDs[i], it.ID)
		assert.True(t, epoch.Equal(it.ReceivedAt))
	}
	assert.Equal(t, "web", stub.pushed[1].Source)
	assert.Equal(t, 2, stub.pushed[1].Payload["n"])
}

func TestService_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{name: "destroyed", err: batcher.ErrDestroyed, wantStatus: http.StatusServiceUnavailable, wantCode: response.CodeUnavailable},
		{name: "wrapped_destroyed", err: errors.Join(errors.New("ctx"), batcher.ErrDestroyed), wantStatus: http.StatusServiceUnavailable, wantCode: response.CodeUnavailable},
		{name: "other", err: errors.New("disk on fire"), wantStatus: http.StatusInternalServerError, wantCode: response.CodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&stubCollector{err: tt.err})
			ctx := context.Background()

			_, pushErr := svc.PushItems(ctx, &PushItemsRequest{Items: []ItemInput{{Payload: map[string]any{}}}})
			_, flushErr := svc.FlushCurrent(ctx)
			_, flushAllErr := svc.FlushAll(ctx)
			_, statusErr := svc.Status(ctx)

			for _, err := range []error{pushErr, flushErr, flushAllErr, statusErr} {
				var appErr *apperr.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
				assert.Equal(t, tt.wantCode, appErr.Code)
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestService_Flush(t *testing.T) {
	stub := &stubCollector{}
	svc := newTestService(stub)

	cur, err := svc.FlushCurrent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ScopeCurrent, cur.Scope)

	all, err := svc.FlushAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ScopeAll, all.Scope)

	assert.Equal(t, []string{ScopeCurrent, ScopeAll}, stub.flushes)
}

func TestService_Status(t *testing.T) {
	stub := &stubCollector{stats: batcher.Stats{CurrentBatchSize: 4, QueuedBatches: 2}}
	svc := newTestService(stub)

	res, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "orders", res.Collector)
	assert.Equal(t, 4, res.CurrentBatchSize)
	assert.Equal(t, 2, res.QueuedBatches)
	assert.Nil(t, res.LastPostAt)

	stub.stats.LastPostAt = epoch
	res, err = svc.Status(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res.LastPostAt)
	assert.True(t, epoch.Equal(*res.LastPostAt))
}
