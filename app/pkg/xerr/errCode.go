package xerr

// 成功返回
const OK uint32 = 200

// 全局错误码
const (
	SERVER_COMMON_ERROR  uint32 = 100001
	REQUEST_PARAM_ERROR  uint32 = 100002
	CLOCK_ROLLBACK_ERROR uint32 = 100003
)
