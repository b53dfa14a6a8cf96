package monitor

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/zeromicro/go-zero/core/logx"
)

func TestMetricsCollector_RecordGenerated(t *testing.T) {
	m := NewMetricsCollector()

	before := testutil.ToFloat64(idsGenerated.WithLabelValues(MethodNextIds))
	m.RecordGenerated(MethodNextIds, 128, time.Millisecond)
	after := testutil.ToFloat64(idsGenerated.WithLabelValues(MethodNextIds))

	if after-before != 128 {
		t.Errorf("Expected 128 ids recorded, got %v", after-before)
	}
}

func TestMetricsCollector_RecordError(t *testing.T) {
	m := NewMetricsCollector()

	before := testutil.ToFloat64(generateErrors.WithLabelValues(MethodNextId, "clock_rollback"))
	m.RecordError(MethodNextId, "clock_rollback")
	after := testutil.ToFloat64(generateErrors.WithLabelValues(MethodNextId, "clock_rollback"))

	if after-before != 1 {
		t.Errorf("Expected 1 error recorded, got %v", after-before)
	}
}

func TestMetricsCollector_Observer(t *testing.T) {
	logx.Disable()
	m := NewMetricsCollector()

	m.SequenceExhausted(17, 1000)
	if v := testutil.ToFloat64(sequenceExhausted.WithLabelValues("17")); v != 1 {
		t.Errorf("Expected 1 exhaustion, got %v", v)
	}

	m.ClockRollback(17, 3*time.Millisecond, false)
	m.ClockRollback(17, 30*time.Millisecond, true)
	m.ClockRollback(17, 40*time.Millisecond, true)

	if v := testutil.ToFloat64(clockRollbacks.WithLabelValues("17", outcomeWaited)); v != 1 {
		t.Errorf("Expected 1 waited rollback, got %v", v)
	}
	if v := testutil.ToFloat64(clockRollbacks.WithLabelValues("17", outcomeRejected)); v != 2 {
		t.Errorf("Expected 2 rejected rollbacks, got %v", v)
	}
}
