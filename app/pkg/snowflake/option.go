package snowflake

import "time"

// RollbackPolicy 时钟回拨处理策略
type RollbackPolicy int

const (
	// RollbackWait 阻塞等待时钟追上上次时间戳，总等待不超过 MaxRollbackWait
	RollbackWait RollbackPolicy = iota
	// RollbackReject 直接返回 ErrClockRollback
	RollbackReject
)

// DefaultMaxRollbackWait RollbackWait 策略下单次调用允许的最长等待
const DefaultMaxRollbackWait = 5 * time.Millisecond

func (p RollbackPolicy) String() string {
	switch p {
	case RollbackWait:
		return "wait"
	case RollbackReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseRollbackPolicy 解析配置中的策略名
func ParseRollbackPolicy(s string) (RollbackPolicy, bool) {
	switch s {
	case "", "wait":
		return RollbackWait, true
	case "reject":
		return RollbackReject, true
	default:
		return RollbackWait, false
	}
}

// Observer 接收生成器内部事件，用于监控
type Observer interface {
	// SequenceExhausted 同一毫秒序列号用尽，生成器将阻塞到下一毫秒
	SequenceExhausted(nodeID int64, ts int64)
	// ClockRollback 检测到时钟回拨，rejected 表示本次调用返回了错误
	ClockRollback(nodeID int64, drift time.Duration, rejected bool)
}

type nopObserver struct{}

func (nopObserver) SequenceExhausted(int64, int64)            {}
func (nopObserver) ClockRollback(int64, time.Duration, bool) {}

type options struct {
	epoch           time.Time
	clock           Clock
	policy          RollbackPolicy
	maxRollbackWait time.Duration
	observer        Observer
}

// Option 生成器选项
type Option func(*options)

// WithEpoch 自定义纪元，不同纪元的 ID 之间不可比较
func WithEpoch(epoch time.Time) Option {
	return func(o *options) {
		o.epoch = epoch
	}
}

// WithClock 替换时钟，主要用于测试
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithRollbackPolicy 设置时钟回拨策略
func WithRollbackPolicy(policy RollbackPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithMaxRollbackWait 设置 RollbackWait 策略的最长等待
func WithMaxRollbackWait(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.maxRollbackWait = d
		}
	}
}

// WithObserver 设置事件观察者
func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		epoch:           DefaultEpoch,
		clock:           SystemClock(),
		policy:          RollbackWait,
		maxRollbackWait: DefaultMaxRollbackWait,
		observer:        nopObserver{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
