package snowflake

import "github.com/pkg/errors"

var (
	// ErrInvalidNodeID 节点ID 超出 10 位范围
	ErrInvalidNodeID = errors.New("snowflake: node id out of range")
	// ErrClockRollback 检测到时钟回拨且未能在允许范围内恢复
	ErrClockRollback = errors.New("snowflake: clock moved backwards")
	// ErrTimestampOverflow 当前时间不在 41 位时间戳可表示的范围内
	ErrTimestampOverflow = errors.New("snowflake: timestamp out of range")
)
