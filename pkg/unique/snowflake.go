package unique

import (
	"errors"
	"sync"

	"github.com/huynhanx03/batchcollector/pkg/encoding"
	"github.com/huynhanx03/batchcollector/pkg/settings"
	"github.com/huynhanx03/batchcollector/pkg/timer"
)

var (
	ErrWorkerOutOfRange = errors.New("worker id exceeds maximum allowed by configuration")
	ErrInvalidLayout    = errors.New("total bits must be greater than node + step bits")
)

// SnowflakeNode generates time ordered 63-bit ids:
// millisecond timestamp | worker id | per-millisecond sequence.
type SnowflakeNode struct {
	mu        sync.Mutex
	timestamp int64
	worker    int64
	step      int64

	epoch     int64
	stepMax   int64
	timeShift uint8
	nodeShift uint8
	limitMask int64

	clock timer.Clock
}

// NewSnowflakeNode validates the bit layout of cfg and creates a generator.
func NewSnowflakeNode(cfg settings.IDs, clock timer.Clock) (*SnowflakeNode, error) {
	if clock == nil {
		clock = timer.RealClock
	}

	totalBits := cfg.TotalBits
	if totalBits == 0 || totalBits > 63 {
		totalBits = 63
	}
	if totalBits <= cfg.NodeBits+cfg.StepBits {
		return nil, ErrInvalidLayout
	}

	nodeMax := int64(-1 ^ (-1 << cfg.NodeBits))
	if cfg.WorkerID < 0 || cfg.WorkerID > nodeMax {
		return nil, ErrWorkerOutOfRange
	}

	return &SnowflakeNode{
		worker:    cfg.WorkerID,
		epoch:     cfg.Epoch,
		stepMax:   int64(-1 ^ (-1 << cfg.StepBits)),
		timeShift: cfg.NodeBits + cfg.StepBits,
		nodeShift: cfg.StepBits,
		limitMask: int64(uint64(1)<<totalBits - 1),
		clock:     clock,
	}, nil
}

// Generate returns the next id. Ids from one node strictly increase, even
// if the clock steps backwards.
func (n *SnowflakeNode) Generate() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.clock.Now().UnixMilli()
	if now < n.timestamp {
		now = n.timestamp
	}

	if now == n.timestamp {
		n.step = (n.step + 1) & n.stepMax
		if n.step == 0 {
			// Sequence exhausted: borrow the next millisecond.
			now++
		}
	} else {
		n.step = 0
	}
	n.timestamp = now

	id := ((now - n.epoch) << n.timeShift) | (n.worker << n.nodeShift) | n.step
	return id & n.limitMask
}

// GenerateString returns the next id as a fixed-width base62 string that
// sorts in generation order.
func (n *SnowflakeNode) GenerateString() string {
	return encoding.EncodeBase62Fixed(uint64(n.Generate()))
}
