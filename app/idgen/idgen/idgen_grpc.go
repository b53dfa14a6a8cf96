// Package idgen 定义 idgen.IdGen gRPC 服务，消息使用 protobuf 内置类型。
package idgen

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	IdGen_NextId_FullMethodName  = "/idgen.IdGen/NextId"
	IdGen_NextIds_FullMethodName = "/idgen.IdGen/NextIds"
)

// IdGenClient 客户端接口
type IdGenClient interface {
	NextId(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
	NextIds(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (IdGen_NextIdsClient, error)
}

type idGenClient struct {
	cc grpc.ClientConnInterface
}

func NewIdGenClient(cc grpc.ClientConnInterface) IdGenClient {
	return &idGenClient{cc}
}

func (c *idGenClient) NextId(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	out := new(wrapperspb.UInt64Value)
	err := c.cc.Invoke(ctx, IdGen_NextId_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *idGenClient) NextIds(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (IdGen_NextIdsClient, error) {
	stream, err := c.cc.NewStream(ctx, &IdGen_ServiceDesc.Streams[0], IdGen_NextIds_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &idGenNextIdsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type IdGen_NextIdsClient interface {
	Recv() (*wrapperspb.UInt64Value, error)
	grpc.ClientStream
}

type idGenNextIdsClient struct {
	grpc.ClientStream
}

func (x *idGenNextIdsClient) Recv() (*wrapperspb.UInt64Value, error) {
	m := new(wrapperspb.UInt64Value)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// IdGenServer 服务端接口
type IdGenServer interface {
	NextId(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error)
	NextIds(*wrapperspb.UInt32Value, IdGen_NextIdsServer) error
	mustEmbedUnimplementedIdGenServer()
}

// UnimplementedIdGenServer 需嵌入到服务实现中
type UnimplementedIdGenServer struct{}

func (UnimplementedIdGenServer) NextId(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method NextId not implemented")
}

func (UnimplementedIdGenServer) NextIds(*wrapperspb.UInt32Value, IdGen_NextIdsServer) error {
	return status.Errorf(codes.Unimplemented, "method NextIds not implemented")
}

func (UnimplementedIdGenServer) mustEmbedUnimplementedIdGenServer() {}

func RegisterIdGenServer(s grpc.ServiceRegistrar, srv IdGenServer) {
	s.RegisterService(&IdGen_ServiceDesc, srv)
}

func _IdGen_NextId_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IdGenServer).NextId(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: IdGen_NextId_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IdGenServer).NextId(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _IdGen_NextIds_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(wrapperspb.UInt32Value)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(IdGenServer).NextIds(m, &idGenNextIdsServer{stream})
}

type IdGen_NextIdsServer interface {
	Send(*wrapperspb.UInt64Value) error
	grpc.ServerStream
}

type idGenNextIdsServer struct {
	grpc.ServerStream
}

func (x *idGenNextIdsServer) Send(m *wrapperspb.UInt64Value) error {
	return x.ServerStream.SendMsg(m)
}

// IdGen_ServiceDesc idgen.IdGen 服务描述
var IdGen_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "idgen.IdGen",
	HandlerType: (*IdGenServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "NextId",
			Handler:    _IdGen_NextId_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "NextIds",
			Handler:       _IdGen_NextIds_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "idgen.proto",
}
