package snowflake

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

const (
	NodeBits      = 10
	SequenceBits  = 12
	TimestampBits = 41

	MaxNodeID    = -1 ^ (-1 << NodeBits)
	MaxSequence  = -1 ^ (-1 << SequenceBits)
	MaxTimestamp = -1 ^ (-1 << TimestampBits)

	NodeShift      = SequenceBits
	TimestampShift = NodeBits + SequenceBits

	// 序列号用尽后轮询时钟的间隔
	stallInterval = time.Millisecond / 8
)

// DefaultEpoch 2020-01-01T00:00:00Z
var DefaultEpoch = time.UnixMilli(1577836800000).UTC()

// tick 本次读到的时间相对上次时间戳的分类
type tick int

const (
	newTick tick = iota
	sameTick
	rollback
)

// Generator 雪花ID生成器，可并发使用
type Generator struct {
	mu            sync.Mutex
	nodeID        int64
	epoch         int64
	lastTimestamp int64
	sequence      int64

	clock           Clock
	policy          RollbackPolicy
	maxRollbackWait time.Duration
	observer        Observer
}

// New 创建生成器，nodeID 必须在 [0, MaxNodeID] 内
func New(nodeID int64, opts ...Option) (*Generator, error) {
	if nodeID < 0 || nodeID > MaxNodeID {
		return nil, errors.Wrapf(ErrInvalidNodeID, "node id %d not in [0, %d]", nodeID, MaxNodeID)
	}

	o := newOptions(opts)
	return &Generator{
		nodeID:          nodeID,
		epoch:           o.epoch.UnixMilli(),
		clock:           o.clock,
		policy:          o.policy,
		maxRollbackWait: o.maxRollbackWait,
		observer:        o.observer,
	}, nil
}

// NodeID 返回节点ID
func (g *Generator) NodeID() int64 {
	return g.nodeID
}

// Epoch 返回时间戳字段的纪元
func (g *Generator) Epoch() time.Time {
	return time.UnixMilli(g.epoch).UTC()
}

// Generate 生成下一个ID
func (g *Generator) Generate() (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.next()
}

// GenerateN 在一次加锁内生成 n 个递增ID
func (g *Generator) GenerateN(n int) ([]uint64, error) {
	if n <= 0 {
		return []uint64{}, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	ids := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		id, err := g.next()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// next 调用方必须持有 g.mu
func (g *Generator) next() (uint64, error) {
	var waited time.Duration

	for {
		now := g.clock.Millis()

		switch g.classify(now) {
		case newTick:
			if err := g.checkRange(now); err != nil {
				return 0, err
			}
			g.lastTimestamp = now
			g.sequence = 0
			return g.pack(), nil

		case sameTick:
			if g.sequence < MaxSequence {
				g.sequence++
				return g.pack(), nil
			}
			g.observer.SequenceExhausted(g.nodeID, g.lastTimestamp)
			g.waitNextMillis(g.lastTimestamp)

		case rollback:
			drift := time.Duration(g.lastTimestamp-now) * time.Millisecond
			if g.policy == RollbackReject || waited+drift > g.maxRollbackWait {
				g.observer.ClockRollback(g.nodeID, drift, true)
				return 0, errors.Wrapf(ErrClockRollback, "last %d, now %d, drift %v, policy %s",
					g.lastTimestamp, now, drift, g.policy)
			}
			g.observer.ClockRollback(g.nodeID, drift, false)
			g.clock.Sleep(drift)
			waited += drift
		}
	}
}

func (g *Generator) classify(now int64) tick {
	switch {
	case now > g.lastTimestamp:
		return newTick
	case now == g.lastTimestamp:
		return sameTick
	default:
		return rollback
	}
}

func (g *Generator) checkRange(now int64) error {
	elapsed := now - g.epoch
	if elapsed < 0 || elapsed > MaxTimestamp {
		return errors.Wrapf(ErrTimestampOverflow, "now %d, epoch %d", now, g.epoch)
	}
	return nil
}

// waitNextMillis 等待时钟离开 ts，回拨交给下一轮 classify 处理
func (g *Generator) waitNextMillis(ts int64) {
	for g.clock.Millis() == ts {
		g.clock.Sleep(stallInterval)
	}
}

func (g *Generator) pack() uint64 {
	return uint64(g.lastTimestamp-g.epoch)<<TimestampShift |
		uint64(g.nodeID)<<NodeShift |
		uint64(g.sequence)
}
