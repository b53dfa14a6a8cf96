package monitor

import (
	"strconv"
	"time"

	"github.com/cnirrad/snowflake/app/pkg/snowflake"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/zeromicro/go-zero/core/logx"
)

var (
	// 发号指标
	idsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "idgen_ids_generated_total",
		Help: "Total number of ids generated",
	}, []string{"method"})

	generateErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "idgen_generate_errors_total",
		Help: "Total number of failed id generations",
	}, []string{"method", "reason"})

	generateLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "idgen_generate_latency_seconds",
		Help:    "Id generation latency distribution",
		Buckets: prometheus.ExponentialBuckets(0.000001, 2, 16), // 1微秒到32毫秒
	}, []string{"method"})

	batchSizeHistogram = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "idgen_batch_size",
		Help:    "Batch generation size distribution",
		Buckets: prometheus.ExponentialBuckets(1, 2, 13), // 1到4096
	})

	// 生成器事件
	sequenceExhausted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "idgen_sequence_exhausted_total",
		Help: "Times the per-millisecond sequence was exhausted and the generator stalled",
	}, []string{"node"})

	clockRollbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "idgen_clock_rollback_total",
		Help: "Clock rollbacks observed by the generator",
	}, []string{"node", "outcome"})

	clockRollbackDrift = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "idgen_clock_rollback_drift_seconds",
		Help:    "Observed backward clock drift",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1毫秒到2秒
	})
)

const (
	MethodNextId  = "NextId"
	MethodNextIds = "NextIds"

	outcomeWaited   = "waited"
	outcomeRejected = "rejected"
)

// MetricsCollector 指标收集器，同时作为生成器的 Observer
type MetricsCollector struct{}

var _ snowflake.Observer = (*MetricsCollector)(nil)

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{}
}

// RecordGenerated 记录一次成功发号
func (m *MetricsCollector) RecordGenerated(method string, count int, latency time.Duration) {
	idsGenerated.WithLabelValues(method).Add(float64(count))
	generateLatency.WithLabelValues(method).Observe(latency.Seconds())
	if method == MethodNextIds {
		batchSizeHistogram.Observe(float64(count))
	}
}

// RecordError 记录发号失败
func (m *MetricsCollector) RecordError(method string, reason string) {
	generateErrors.WithLabelValues(method, reason).Inc()
}

// SequenceExhausted 序列号用尽
func (m *MetricsCollector) SequenceExhausted(nodeID int64, ts int64) {
	sequenceExhausted.WithLabelValues(strconv.FormatInt(nodeID, 10)).Inc()
	logx.Debugf("sequence exhausted, node=%d ts=%d, waiting for next millisecond", nodeID, ts)
}

// ClockRollback 时钟回拨
func (m *MetricsCollector) ClockRollback(nodeID int64, drift time.Duration, rejected bool) {
	outcome := outcomeWaited
	if rejected {
		outcome = outcomeRejected
	}
	clockRollbacks.WithLabelValues(strconv.FormatInt(nodeID, 10), outcome).Inc()
	clockRollbackDrift.Observe(drift.Seconds())

	if rejected {
		logx.Errorf("clock moved backwards by %v on node %d, id generation rejected", drift, nodeID)
	} else {
		logx.Slowf("clock moved backwards by %v on node %d, waiting for clock to catch up", drift, nodeID)
	}
}
