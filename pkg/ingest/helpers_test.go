package ingest

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/huynhanx03/batchcollector/pkg/mq/batcher"
)

type sequentialIDs struct {
	n atomic.Int64
}

func (s *sequentialIDs) GenerateString() string {
	return "id-" + strconv.FormatInt(s.n.Add(1), 10)
}

// stubCollector records calls and returns err from every operation.
type stubCollector struct {
	mu        sync.Mutex
	pushed    []Item
	flushes   []string
	stats     batcher.Stats
	err       error
	destroyed bool
}

var _ batcher.BatchCollector[Item] = (*stubCollector)(nil)

func (s *stubCollector) PushItems(items ...Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.pushed = append(s.pushed, items...)
	return nil
}

func (s *stubCollector) ForcePostCurrentBatch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.flushes = append(s.flushes, ScopeCurrent)
	return nil
}

func (s *stubCollector) ForcePostRemainingBatches() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.flushes = append(s.flushes, ScopeAll)
	return nil
}

func (s *stubCollector) IsCurrentBatchEmpty() (bool, error) {
	return s.stats.CurrentBatchSize == 0, s.err
}

func (s *stubCollector) IsPostingQueueEmpty() (bool, error) {
	return s.stats.QueuedBatches == 0, s.err
}

func (s *stubCollector) Stats() (batcher.Stats, error) {
	return s.stats, s.err
}

func (s *stubCollector) Destroy() {
	s.mu.Lock()
	s.destroyed = true
	s.mu.Unlock()
}
