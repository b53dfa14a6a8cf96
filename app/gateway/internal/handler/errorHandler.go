package handler

import (
	"context"
	"net/http"

	"github.com/cnirrad/snowflake/app/gateway/internal/middleware"
	"github.com/cnirrad/snowflake/app/gateway/internal/types"
	"github.com/cnirrad/snowflake/app/pkg/xerr"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorHandler 统一错误响应，通过 httpx.SetErrorHandlerCtx 注册
func ErrorHandler(ctx context.Context, err error) (int, any) {
	causeErr := errors.Cause(err)

	switch e := causeErr.(type) {
	case *middleware.RateLimitError:
		return http.StatusTooManyRequests, e
	case *middleware.CircuitBreakerError:
		return http.StatusServiceUnavailable, e
	case *xerr.CodeError:
		return httpStatus(e.GetErrCode()), &types.ErrorResp{Code: e.GetErrCode(), Msg: e.GetErrMsg()}
	}

	logx.WithContext(ctx).Errorf("[GATEWAY-ERR] %+v", err)

	if st, ok := status.FromError(causeErr); ok {
		code := uint32(st.Code())
		if xerr.IsCodeErr(code) {
			return httpStatus(code), &types.ErrorResp{Code: code, Msg: st.Message()}
		}
		switch st.Code() {
		case codes.Unavailable, codes.DeadlineExceeded:
			return http.StatusServiceUnavailable, &types.ErrorResp{
				Code: xerr.SERVER_COMMON_ERROR,
				Msg:  "id service unavailable",
			}
		}
	}

	return http.StatusInternalServerError, &types.ErrorResp{
		Code: xerr.SERVER_COMMON_ERROR,
		Msg:  xerr.MapErrMsg(xerr.SERVER_COMMON_ERROR),
	}
}

func httpStatus(code uint32) int {
	switch code {
	case xerr.REQUEST_PARAM_ERROR:
		return http.StatusBadRequest
	case xerr.CLOCK_ROLLBACK_ERROR:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
