package xerr

var message map[uint32]string

func init() {
	message = make(map[uint32]string)
	message[OK] = "SUCCESS"
	message[SERVER_COMMON_ERROR] = "server internal error"
	message[REQUEST_PARAM_ERROR] = "invalid request parameter"
	message[CLOCK_ROLLBACK_ERROR] = "clock moved backwards, please retry later"
}

// MapErrMsg 错误码对应的默认信息
func MapErrMsg(errcode uint32) string {
	if msg, ok := message[errcode]; ok {
		return msg
	}
	return message[SERVER_COMMON_ERROR]
}

// IsCodeErr 是否为已定义的错误码
func IsCodeErr(errcode uint32) bool {
	_, ok := message[errcode]
	return ok
}
