package handler

import (
	"net/http"

	"github.com/cnirrad/snowflake/app/gateway/internal/logic"
	"github.com/cnirrad/snowflake/app/gateway/internal/svc"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func nextIdHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewNextIdLogic(r.Context(), svcCtx)
		resp, err := l.NextId()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
