package types

type IdResp struct {
	Id    uint64 `json:"id"`
	IdStr string `json:"idStr"` // 前端 JS 精度不足 64 位时使用
}

type IdsReq struct {
	Count int `form:"count,default=10,range=[1:4096]"`
}

type IdsResp struct {
	Ids    []uint64 `json:"ids"`
	IdStrs []string `json:"idStrs"`
}

type ErrorResp struct {
	Code uint32 `json:"code"`
	Msg  string `json:"msg"`
}
