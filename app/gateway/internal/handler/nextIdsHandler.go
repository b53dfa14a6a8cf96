package handler

import (
	"net/http"

	"github.com/cnirrad/snowflake/app/gateway/internal/logic"
	"github.com/cnirrad/snowflake/app/gateway/internal/svc"
	"github.com/cnirrad/snowflake/app/gateway/internal/types"
	"github.com/cnirrad/snowflake/app/pkg/xerr"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func nextIdsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.IdsReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, xerr.NewErrCodeMsg(xerr.REQUEST_PARAM_ERROR, err.Error()))
			return
		}

		l := logic.NewNextIdsLogic(r.Context(), svcCtx)
		resp, err := l.NextIds(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
