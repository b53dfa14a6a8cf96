package rpctrace

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/timex"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	// TraceIDKey 链路追踪ID的key
	TraceIDKey = "x-trace-id"
	// DefaultTimeout 默认超时时间
	DefaultTimeout = 3 * time.Second
	// SlowThreshold 慢请求阈值，发号正常在微秒级
	SlowThreshold = 50 * time.Millisecond
)

// UnaryServerInterceptor 服务端一元拦截器
// 提供链路追踪、超时控制、慢请求日志等功能
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := timex.Now()

		traceID := extractTraceID(ctx)

		ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()

		ctx = logx.ContextWithFields(ctx, logx.Field("traceId", traceID))

		resp, err := handler(ctx, req)

		logRequest(ctx, info.FullMethod, timex.Since(start), err)

		return resp, err
	}
}

// StreamServerInterceptor 服务端流式拦截器
func StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := timex.Now()
		ctx := ss.Context()

		traceID := extractTraceID(ctx)
		ctx = logx.ContextWithFields(ctx, logx.Field("traceId", traceID))

		wrapped := &wrappedServerStream{ServerStream: ss, ctx: ctx}

		err := handler(srv, wrapped)

		logRequest(ctx, info.FullMethod, timex.Since(start), err)

		return err
	}
}

// UnaryClientInterceptor 客户端一元拦截器
// 提供链路追踪传递、超时控制等功能
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := timex.Now()

		ctx = injectTraceID(ctx)

		// 添加超时控制（如果没有设置的话）
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
			defer cancel()
		}

		err := invoker(ctx, method, req, reply, cc, opts...)

		logRequest(ctx, method, timex.Since(start), err)

		return err
	}
}

// StreamClientInterceptor 客户端流式拦截器，只负责传递 trace id
// 流的生命周期由调用方的 ctx 控制
func StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		ctx = injectTraceID(ctx)

		cs, err := streamer(ctx, desc, cc, method, opts...)
		if err != nil {
			logRequest(ctx, method, 0, err)
		}
		return cs, err
	}
}

// wrappedServerStream 包装的ServerStream
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}

// extractTraceID 从context中提取trace id
func extractTraceID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return generateTraceID()
	}

	values := md.Get(TraceIDKey)
	if len(values) == 0 {
		return generateTraceID()
	}

	return values[0]
}

// injectTraceID 向context中注入trace id
func injectTraceID(ctx context.Context) context.Context {
	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		md = metadata.New(nil)
	}

	if len(md.Get(TraceIDKey)) == 0 {
		md = metadata.Join(md, metadata.Pairs(TraceIDKey, generateTraceID()))
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func generateTraceID() string {
	return uuid.NewString()
}

// logRequest 记录请求日志
func logRequest(ctx context.Context, method string, duration time.Duration, err error) {
	if err != nil {
		code := status.Code(err)
		if code == codes.DeadlineExceeded {
			logx.WithContext(ctx).Slowf("[gRPC] timeout | method=%s | duration=%v | error=%v",
				method, duration, err)
		} else {
			logx.WithContext(ctx).Errorf("[gRPC] error | method=%s | duration=%v | error=%v",
				method, duration, err)
		}
		return
	}

	if duration > SlowThreshold {
		logx.WithContext(ctx).Slowf("[gRPC] slow | method=%s | duration=%v", method, duration)
	} else {
		logx.WithContext(ctx).Debugf("[gRPC] success | method=%s | duration=%v", method, duration)
	}
}
