package svc

import (
	"github.com/cnirrad/snowflake/app/idgen/internal/config"
	"github.com/cnirrad/snowflake/app/idgen/internal/monitor"
	"github.com/cnirrad/snowflake/app/pkg/sequencer"
	"github.com/cnirrad/snowflake/app/pkg/snowflake"
	"github.com/zeromicro/go-zero/core/logx"
)

type ServiceContext struct {
	Config    config.Config
	Sequencer *sequencer.Sequencer
	Metrics   *monitor.MetricsCollector
}

// NewServiceContext 节点ID等配置非法时 panic
func NewServiceContext(c config.Config, opts ...snowflake.Option) *ServiceContext {
	metrics := monitor.NewMetricsCollector()

	// 指标收集器放在最前，调用方传入的 Observer 可覆盖
	opts = append([]snowflake.Option{snowflake.WithObserver(metrics)}, opts...)
	seq := sequencer.MustNew(c.Snowflake, opts...)

	logx.Infof("Sequencer initialized: node=%d, epoch=%s, rollback=%s, maxRollbackWait=%s",
		seq.NodeID(), c.Snowflake.Epoch, c.Snowflake.RollbackPolicy, c.Snowflake.MaxRollbackWait)

	return &ServiceContext{
		Config:    c,
		Sequencer: seq,
		Metrics:   metrics,
	}
}
