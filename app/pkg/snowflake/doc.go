// Package snowflake 实现 64 位雪花 ID 生成器。
//
// ID 布局（高位到低位）：
//
//	| 1 bit 保留 | 41 bit 毫秒时间戳(相对 Epoch) | 10 bit 节点ID | 12 bit 序列号 |
//
// 默认 Epoch 为 2020-01-01T00:00:00Z，41 位时间戳约可使用 69 年，
// 超出后 Generate 返回 ErrTimestampOverflow。
//
// 同一毫秒内序列号用尽（4096 个）时，Generate 阻塞到下一毫秒。
// 时钟回拨按 RollbackPolicy 处理：RollbackWait 在 MaxRollbackWait 内等待时钟追上，
// RollbackReject 直接返回 ErrClockRollback。
//
// 节点ID 由调用方分配并保证全局唯一，生成器不做协调。
package snowflake
