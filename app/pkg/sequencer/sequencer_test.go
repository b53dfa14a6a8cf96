package sequencer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cnirrad/snowflake/app/pkg/snowflake"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	ms atomic.Int64
}

func (c *stepClock) Millis() int64 { return c.ms.Load() }

func (c *stepClock) Sleep(d time.Duration) {
	if d < time.Millisecond {
		d = time.Millisecond
	}
	c.ms.Add(d.Milliseconds())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		conf    Conf
		wantErr error
	}{
		{"defaults", Conf{NodeId: 1}, nil},
		{"full", Conf{NodeId: 1023, Epoch: "2024-01-01T00:00:00Z", RollbackPolicy: "reject", MaxRollbackWait: "10ms"}, nil},
		{"node out of range", Conf{NodeId: 1024}, snowflake.ErrInvalidNodeID},
		{"negative node", Conf{NodeId: -1}, snowflake.ErrInvalidNodeID},
		{"bad epoch", Conf{NodeId: 1, Epoch: "yesterday"}, nil},
		{"bad policy", Conf{NodeId: 1, RollbackPolicy: "ignore"}, nil},
		{"bad wait", Conf{NodeId: 1, MaxRollbackWait: "-1ms"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.conf)
			switch {
			case tt.wantErr != nil:
				assert.True(t, errors.Is(err, tt.wantErr), "%v", err)
				assert.Nil(t, s)
			case tt.name == "defaults" || tt.name == "full":
				require.NoError(t, err)
				assert.Equal(t, tt.conf.NodeId, s.NodeID())
			default:
				assert.Error(t, err)
			}
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew(Conf{NodeId: 4096}) })
	assert.NotPanics(t, func() { MustNew(Conf{NodeId: 12}) })
}

func TestNextID_EpochApplied(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &stepClock{}
	clock.ms.Store(epoch.UnixMilli() + 42)

	s, err := New(Conf{NodeId: 3, Epoch: epoch.Format(time.RFC3339)}, snowflake.WithClock(clock))
	require.NoError(t, err)

	id, err := s.NextID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id>>snowflake.TimestampShift)
	assert.Equal(t, uint64(3), (id>>snowflake.NodeShift)&snowflake.MaxNodeID)
}

func TestNextID_ContextDone(t *testing.T) {
	s := MustNew(Conf{NodeId: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.NextID(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.NextIDs(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNextID_RejectPolicy(t *testing.T) {
	clock := &stepClock{}
	clock.ms.Store(snowflake.DefaultEpoch.UnixMilli() + 100)

	s, err := New(Conf{NodeId: 1, RollbackPolicy: "reject"}, snowflake.WithClock(clock))
	require.NoError(t, err)

	_, err = s.NextID(context.Background())
	require.NoError(t, err)

	clock.ms.Add(-2)
	_, err = s.NextID(context.Background())
	assert.True(t, errors.Is(err, snowflake.ErrClockRollback))
	assert.Contains(t, err.Error(), "node 1")
}

func TestNextIDs(t *testing.T) {
	s := MustNew(Conf{NodeId: 8})

	ids, err := s.NextIDs(context.Background(), 4097)
	require.NoError(t, err)
	require.Len(t, ids, 4097)

	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("ids not increasing at %d", i)
		}
	}
}
