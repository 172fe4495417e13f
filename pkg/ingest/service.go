package ingest

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/huynhanx03/batchcollector/pkg/common/apperr"
	"github.com/huynhanx03/batchcollector/pkg/common/http/response"
	"github.com/huynhanx03/batchcollector/pkg/mq/batcher"
	"github.com/huynhanx03/batchcollector/pkg/timer"
)

const (
	serviceName = "ingest"

	ScopeCurrent = "current"
	ScopeAll     = "all"
)

// IDGenerator assigns ids to items submitted without one.
type IDGenerator interface {
	GenerateString() string
}

// Service exposes one collector to HTTP producers.
type Service struct {
	name      string
	collector batcher.BatchCollector[Item]
	ids       IDGenerator
	clock     timer.Clock
	logger    *zap.Logger
}

// NewService creates a Service. name identifies the collector in status replies.
func NewService(name string, collector batcher.BatchCollector[Item], ids IDGenerator, clock timer.Clock, logger *zap.Logger) *Service {
	if clock == nil {
		clock = timer.RealClock
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		name:      name,
		collector: collector,
		ids:       ids,
		clock:     clock,
		logger:    logger,
	}
}

// PushItems stamps the items and pushes them, in request order, with one call.
func (s *Service) PushItems(ctx context.Context, req *PushItemsRequest) (*PushItemsResponse, error) {
	now := s.clock.Now().UTC()

	items := make([]Item, len(req.Items))
	ids := make([]string, len(req.Items))
	for i, in := range req.Items {
		id := in.ID
		if id == "" {
			id = s.ids.GenerateString()
		}
		items[i] = Item{
			ID:         id,
			Source:     in.Source,
			Payload:    in.Payload,
			ReceivedAt: now,
		}
		ids[i] = id
	}

	if err := s.collector.PushItems(items...); err != nil {
		return nil, s.mapError(err, apperr.MsgPushFailed)
	}

	return &PushItemsResponse{Accepted: len(items), IDs: ids}, nil
}

// FlushCurrent posts the current batch right away.
func (s *Service) FlushCurrent(ctx context.Context) (*FlushResponse, error) {
	if err := s.collector.ForcePostCurrentBatch(); err != nil {
		return nil, s.mapError(err, apperr.MsgFlushFailed)
	}
	return &FlushResponse{Scope: ScopeCurrent}, nil
}

// FlushAll posts every held batch right away.
func (s *Service) FlushAll(ctx context.Context) (*FlushResponse, error) {
	if err := s.collector.ForcePostRemainingBatches(); err != nil {
		return nil, s.mapError(err, apperr.MsgFlushFailed)
	}
	return &FlushResponse{Scope: ScopeAll}, nil
}

// Status reports the collector state.
func (s *Service) Status(ctx context.Context) (*StatusResponse, error) {
	stats, err := s.collector.Stats()
	if err != nil {
		return nil, s.mapError(err, apperr.MsgStatusFailed)
	}

	res := &StatusResponse{
		Collector:        s.name,
		CurrentBatchSize: stats.CurrentBatchSize,
		QueuedBatches:    stats.QueuedBatches,
	}
	if !stats.LastPostAt.IsZero() {
		last := stats.LastPostAt
		res.LastPostAt = &last
	}
	return res, nil
}

func (s *Service) mapError(err error, msg string) error {
	if errors.Is(err, batcher.ErrDestroyed) {
		return apperr.MapError(serviceName, err, response.CodeUnavailable, apperr.MsgUnavailable, http.StatusServiceUnavailable)
	}

	s.logger.Error("collector operation failed", zap.Error(err))
	return apperr.MapError(serviceName, err, response.CodeInternalServer, msg, http.StatusInternalServerError)
}
