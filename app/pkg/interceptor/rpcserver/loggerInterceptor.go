package rpcserver

import (
	"context"

	"github.com/cnirrad/snowflake/app/pkg/xerr"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LoggerInterceptor rpc服务端错误日志，并将业务错误码转换为 grpc status
func LoggerInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	resp, err = handler(ctx, req)
	if err != nil {
		err = toStatus(ctx, info.FullMethod, err)
	}
	return resp, err
}

// StreamLoggerInterceptor 流式接口的错误日志
func StreamLoggerInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	err := handler(srv, ss)
	if err != nil {
		err = toStatus(ss.Context(), info.FullMethod, err)
	}
	return err
}

func toStatus(ctx context.Context, method string, err error) error {
	logx.WithContext(ctx).Errorf("[RPC-SRV-ERR] method=%s | %+v", method, err)

	if e, ok := errors.Cause(err).(*xerr.CodeError); ok {
		return status.Error(codes.Code(e.GetErrCode()), e.GetErrMsg())
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Code(xerr.SERVER_COMMON_ERROR), xerr.MapErrMsg(xerr.SERVER_COMMON_ERROR))
}
