package sequencer

import (
	"context"
	"time"

	"github.com/cnirrad/snowflake/app/pkg/snowflake"
	"github.com/pkg/errors"
)

// Sequencer 业务侧ID发号器，封装一个雪花生成器
type Sequencer struct {
	gen *snowflake.Generator
}

// New 根据配置创建发号器，opts 追加在配置项之后
func New(c Conf, opts ...snowflake.Option) (*Sequencer, error) {
	options, err := c.options()
	if err != nil {
		return nil, err
	}

	gen, err := snowflake.New(c.NodeId, append(options, opts...)...)
	if err != nil {
		return nil, errors.Wrapf(err, "sequencer: %+v", c)
	}

	return &Sequencer{gen: gen}, nil
}

// MustNew 同 New，出错时 panic
func MustNew(c Conf, opts ...snowflake.Option) *Sequencer {
	s, err := New(c, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// NodeID 返回节点ID
func (s *Sequencer) NodeID() int64 {
	return s.gen.NodeID()
}

// NextID 生成一个ID
func (s *Sequencer) NextID(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	id, err := s.gen.Generate()
	if err != nil {
		return 0, errors.Wrapf(err, "node %d", s.gen.NodeID())
	}
	return id, nil
}

// NextIDs 批量生成 n 个递增ID
func (s *Sequencer) NextIDs(ctx context.Context, n int) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids, err := s.gen.GenerateN(n)
	if err != nil {
		return nil, errors.Wrapf(err, "node %d, count %d", s.gen.NodeID(), n)
	}
	return ids, nil
}

func (c Conf) options() ([]snowflake.Option, error) {
	var opts []snowflake.Option

	if c.Epoch != "" {
		epoch, err := time.Parse(time.RFC3339, c.Epoch)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid epoch %q", c.Epoch)
		}
		opts = append(opts, snowflake.WithEpoch(epoch))
	}

	policy, ok := snowflake.ParseRollbackPolicy(c.RollbackPolicy)
	if !ok {
		return nil, errors.Errorf("invalid rollback policy %q", c.RollbackPolicy)
	}
	opts = append(opts, snowflake.WithRollbackPolicy(policy))

	if c.MaxRollbackWait != "" {
		wait, err := time.ParseDuration(c.MaxRollbackWait)
		if err != nil || wait < 0 {
			return nil, errors.Errorf("invalid max rollback wait %q", c.MaxRollbackWait)
		}
		opts = append(opts, snowflake.WithMaxRollbackWait(wait))
	}

	return opts, nil
}
