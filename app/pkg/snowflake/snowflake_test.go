package snowflake

import (
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock 手动推进的时钟，Sleep 会推进时间
type manualClock struct {
	mu     sync.Mutex
	nanos  int64
	sleeps int
}

func newManualClock(ms int64) *manualClock {
	return &manualClock{nanos: ms * int64(time.Millisecond)}
}

func (c *manualClock) Millis() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nanos / int64(time.Millisecond)
}

func (c *manualClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nanos += int64(d)
	c.sleeps++
}

func (c *manualClock) Set(ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nanos = ms * int64(time.Millisecond)
}

func (c *manualClock) Sleeps() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sleeps
}

type recordingObserver struct {
	mu        sync.Mutex
	exhausted int
	rollbacks []time.Duration
	rejected  int
}

func (o *recordingObserver) SequenceExhausted(int64, int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.exhausted++
}

func (o *recordingObserver) ClockRollback(_ int64, drift time.Duration, rejected bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rollbacks = append(o.rollbacks, drift)
	if rejected {
		o.rejected++
	}
}

func decompose(id uint64) (ts, node, seq int64) {
	ts = int64(id >> TimestampShift)
	node = int64(id>>NodeShift) & MaxNodeID
	seq = int64(id) & MaxSequence
	return
}

var testStart = DefaultEpoch.UnixMilli() + 1000

func TestNew_NodeIDRange(t *testing.T) {
	for n := int64(0); n <= MaxNodeID; n++ {
		g, err := New(n)
		require.NoError(t, err)
		assert.Equal(t, n, g.NodeID())
	}

	for _, n := range []int64{-1, MaxNodeID + 1, 1 << 20, -1 << 40} {
		g, err := New(n)
		assert.Nil(t, g)
		assert.True(t, errors.Is(err, ErrInvalidNodeID), "node %d: %v", n, err)
	}
}

func TestNew_Defaults(t *testing.T) {
	g, err := New(1)
	require.NoError(t, err)

	assert.Equal(t, DefaultEpoch, g.Epoch())
	assert.Equal(t, int64(1577836800000), g.Epoch().UnixMilli())
	assert.Equal(t, RollbackWait, g.policy)
	assert.Equal(t, DefaultMaxRollbackWait, g.maxRollbackWait)
}

func TestGenerate_ReferenceLayout(t *testing.T) {
	clock := newManualClock(123456789)
	g, err := New(777, WithEpoch(time.UnixMilli(0)), WithClock(clock))
	require.NoError(t, err)

	var id uint64
	for i := 0; i <= 1234; i++ {
		id, err = g.Generate()
		require.NoError(t, err)
	}

	assert.Equal(t, uint64(517815307113682), id)
	ts, node, seq := decompose(id)
	assert.Equal(t, int64(123456789), ts)
	assert.Equal(t, int64(777), node)
	assert.Equal(t, int64(1234), seq)
}

func TestGenerate_StrictlyIncreasing(t *testing.T) {
	g, err := New(5)
	require.NoError(t, err)

	last, err := g.Generate()
	require.NoError(t, err)
	for i := 0; i < 100000; i++ {
		id, err := g.Generate()
		require.NoError(t, err)
		if id <= last {
			t.Fatalf("id %d not greater than %d", id, last)
		}
		last = id
	}
}

func TestGenerate_NodeIDRecovered(t *testing.T) {
	for _, n := range []int64{0, 1, 511, MaxNodeID} {
		g, err := New(n)
		require.NoError(t, err)

		for i := 0; i < 1000; i++ {
			id, err := g.Generate()
			require.NoError(t, err)
			_, node, _ := decompose(id)
			if node != n {
				t.Fatalf("expected node %d, got %d", n, node)
			}
			assert.Zero(t, id>>63)
		}
	}
}

func TestGenerate_RapidCallsNoDuplicates(t *testing.T) {
	g, err := New(42)
	require.NoError(t, err)

	const total = 5000
	seen := make(map[uint64]struct{}, total)
	ids := make([]uint64, 0, total)
	for i := 0; i < total; i++ {
		id, err := g.Generate()
		require.NoError(t, err)
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id %d at call %d", id, i)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	// 单毫秒最多 4096 个，5000 个必然跨越至少 1ms
	first, _, _ := decompose(ids[0])
	last, _, _ := decompose(ids[total-1])
	assert.GreaterOrEqual(t, last-first, int64(1))
}

func TestGenerate_SequenceExhaustedStalls(t *testing.T) {
	clock := newManualClock(testStart)
	observer := &recordingObserver{}
	g, err := New(123, WithClock(clock), WithObserver(observer))
	require.NoError(t, err)

	first, err := g.Generate()
	require.NoError(t, err)
	firstTs, _, firstSeq := decompose(first)
	assert.Equal(t, int64(0), firstSeq)

	for seq := int64(1); seq <= MaxSequence; seq++ {
		id, err := g.Generate()
		require.NoError(t, err)
		ts, _, s := decompose(id)
		require.Equal(t, seq, s)
		require.Equal(t, firstTs, ts)
	}
	assert.Zero(t, clock.Sleeps())

	rolled, err := g.Generate()
	require.NoError(t, err)
	ts, _, seq := decompose(rolled)
	assert.Equal(t, firstTs+1, ts)
	assert.Equal(t, int64(0), seq)
	assert.Equal(t, 8, clock.Sleeps())
	assert.Equal(t, 1, observer.exhausted)
}

func TestGenerate_SharedClockDistinctNodes(t *testing.T) {
	clock := newManualClock(testStart)
	a, err := New(1, WithClock(clock))
	require.NoError(t, err)
	b, err := New(2, WithClock(clock))
	require.NoError(t, err)

	seen := make(map[uint64]struct{})
	for i := 0; i < 20000; i++ {
		for _, g := range []*Generator{a, b} {
			id, err := g.Generate()
			require.NoError(t, err)
			if _, ok := seen[id]; ok {
				t.Fatalf("collision on id %d", id)
			}
			seen[id] = struct{}{}
		}
		if i%1000 == 0 {
			clock.Sleep(time.Millisecond)
		}
	}
	assert.Len(t, seen, 40000)
}

func TestGenerate_RollbackWait(t *testing.T) {
	clock := newManualClock(testStart)
	observer := &recordingObserver{}
	g, err := New(7, WithClock(clock), WithObserver(observer))
	require.NoError(t, err)

	before, err := g.Generate()
	require.NoError(t, err)

	// 回拨 3ms，在默认 5ms 范围内等待
	clock.Set(testStart - 3)
	after, err := g.Generate()
	require.NoError(t, err)

	assert.Greater(t, after, before)
	beforeTs, _, _ := decompose(before)
	afterTs, _, seq := decompose(after)
	assert.Equal(t, beforeTs, afterTs)
	assert.Equal(t, int64(1), seq)
	assert.Equal(t, testStart, clock.Millis())
	assert.Equal(t, []time.Duration{3 * time.Millisecond}, observer.rollbacks)
	assert.Zero(t, observer.rejected)
}

func TestGenerate_RollbackWaitExceedsBound(t *testing.T) {
	clock := newManualClock(testStart)
	observer := &recordingObserver{}
	g, err := New(7, WithClock(clock), WithObserver(observer))
	require.NoError(t, err)

	before, err := g.Generate()
	require.NoError(t, err)

	clock.Set(testStart - 10)
	id, err := g.Generate()
	assert.Zero(t, id)
	assert.True(t, errors.Is(err, ErrClockRollback))
	assert.Zero(t, clock.Sleeps())
	assert.Equal(t, 1, observer.rejected)

	// 拒绝时不修改状态，时钟恢复后继续递增
	clock.Set(testStart + 1)
	after, err := g.Generate()
	require.NoError(t, err)
	assert.Greater(t, after, before)
}

func TestGenerate_RollbackReject(t *testing.T) {
	clock := newManualClock(testStart)
	g, err := New(7, WithClock(clock), WithRollbackPolicy(RollbackReject))
	require.NoError(t, err)

	before, err := g.Generate()
	require.NoError(t, err)

	clock.Set(testStart - 1)
	_, err = g.Generate()
	assert.True(t, errors.Is(err, ErrClockRollback))
	assert.Zero(t, clock.Sleeps())

	clock.Set(testStart)
	after, err := g.Generate()
	require.NoError(t, err)
	assert.Greater(t, after, before)
}

func TestGenerate_RollbackZeroWaitRejects(t *testing.T) {
	clock := newManualClock(testStart)
	g, err := New(7, WithClock(clock), WithMaxRollbackWait(0))
	require.NoError(t, err)

	_, err = g.Generate()
	require.NoError(t, err)

	clock.Set(testStart - 1)
	_, err = g.Generate()
	assert.True(t, errors.Is(err, ErrClockRollback))
}

func TestGenerate_TimestampRange(t *testing.T) {
	clock := newManualClock(DefaultEpoch.UnixMilli() - 1)
	g, err := New(3, WithClock(clock))
	require.NoError(t, err)

	_, err = g.Generate()
	assert.True(t, errors.Is(err, ErrTimestampOverflow))

	clock.Set(DefaultEpoch.UnixMilli() + MaxTimestamp)
	id, err := g.Generate()
	require.NoError(t, err)
	ts, node, _ := decompose(id)
	assert.Equal(t, int64(MaxTimestamp), ts)
	assert.Equal(t, int64(3), node)
	assert.Zero(t, id>>63)

	clock.Set(DefaultEpoch.UnixMilli() + MaxTimestamp + 1)
	_, err = g.Generate()
	assert.True(t, errors.Is(err, ErrTimestampOverflow))
}

func TestGenerate_Concurrent(t *testing.T) {
	g, err := New(9)
	require.NoError(t, err)

	const workers, perWorker = 100, 100
	results := make(chan uint64, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id, err := g.Generate()
				if err != nil {
					t.Error(err)
					return
				}
				results <- id
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[uint64]struct{}, workers*perWorker)
	for id := range results {
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestGenerateN(t *testing.T) {
	clock := newManualClock(testStart)
	g, err := New(11, WithClock(clock))
	require.NoError(t, err)

	ids, err := g.GenerateN(0)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = g.GenerateN(5000)
	require.NoError(t, err)
	require.Len(t, ids, 5000)
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("ids[%d]=%d not greater than ids[%d]=%d", i, ids[i], i-1, ids[i-1])
		}
	}

	next, err := g.Generate()
	require.NoError(t, err)
	assert.Greater(t, next, ids[len(ids)-1])
}

func TestParseRollbackPolicy(t *testing.T) {
	tests := []struct {
		in     string
		policy RollbackPolicy
		ok     bool
	}{
		{"", RollbackWait, true},
		{"wait", RollbackWait, true},
		{"reject", RollbackReject, true},
		{"panic", RollbackWait, false},
	}

	for _, tt := range tests {
		policy, ok := ParseRollbackPolicy(tt.in)
		assert.Equal(t, tt.policy, policy, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
	assert.Equal(t, "reject", RollbackReject.String())
}

func BenchmarkGenerate(b *testing.B) {
	g, _ := New(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.Generate()
	}
}

func BenchmarkGenerate_Parallel(b *testing.B) {
	g, _ := New(1)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = g.Generate()
		}
	})
}
