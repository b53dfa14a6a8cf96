package logic

import (
	"context"

	"github.com/cnirrad/snowflake/app/pkg/snowflake"
	"github.com/cnirrad/snowflake/app/pkg/xerr"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("idgen")

// generateError 将生成器错误转换为业务错误码，reason 用于指标标签
func generateError(err error) (*xerr.CodeError, string) {
	switch {
	case errors.Is(err, snowflake.ErrClockRollback):
		return xerr.NewErrCode(xerr.CLOCK_ROLLBACK_ERROR), "clock_rollback"
	case errors.Is(err, snowflake.ErrTimestampOverflow):
		return xerr.NewErrCode(xerr.SERVER_COMMON_ERROR), "timestamp_overflow"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return xerr.NewErrMsg("request canceled"), "canceled"
	default:
		return xerr.NewErrCode(xerr.SERVER_COMMON_ERROR), "internal"
	}
}
