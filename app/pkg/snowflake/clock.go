package snowflake

import "time"

// Clock 墙上时钟
type Clock interface {
	// Millis 返回 Unix 毫秒时间戳
	Millis() int64
	// Sleep 阻塞调用方 d
	Sleep(d time.Duration)
}

type systemClock struct{}

// SystemClock 返回基于 time.Now 的系统时钟
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Millis() int64 {
	return time.Now().UnixMilli()
}

func (systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
