package idgenservice

import (
	"context"
	"io"

	"github.com/cnirrad/snowflake/app/idgen/idgen"

	"github.com/zeromicro/go-zero/zrpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type (
	IdGen interface {
		NextId(ctx context.Context, opts ...grpc.CallOption) (uint64, error)
		// NextIds 读取整个流，返回按生成顺序排列的ID
		NextIds(ctx context.Context, count uint32, opts ...grpc.CallOption) ([]uint64, error)
	}

	defaultIdGen struct {
		cli zrpc.Client
	}
)

func NewIdGen(cli zrpc.Client) IdGen {
	return &defaultIdGen{
		cli: cli,
	}
}

func (m *defaultIdGen) NextId(ctx context.Context, opts ...grpc.CallOption) (uint64, error) {
	client := idgen.NewIdGenClient(m.cli.Conn())
	resp, err := client.NextId(ctx, &emptypb.Empty{}, opts...)
	if err != nil {
		return 0, err
	}
	return resp.GetValue(), nil
}

func (m *defaultIdGen) NextIds(ctx context.Context, count uint32, opts ...grpc.CallOption) ([]uint64, error) {
	client := idgen.NewIdGenClient(m.cli.Conn())
	stream, err := client.NextIds(ctx, wrapperspb.UInt32(count), opts...)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, count)
	for {
		msg, err := stream.Recv()
		if err == io.EOF {
			return ids, nil
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, msg.GetValue())
	}
}
