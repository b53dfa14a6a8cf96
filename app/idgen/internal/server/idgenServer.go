package server

import (
	"context"

	"github.com/cnirrad/snowflake/app/idgen/idgen"
	"github.com/cnirrad/snowflake/app/idgen/internal/logic"
	"github.com/cnirrad/snowflake/app/idgen/internal/svc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type IdGenServer struct {
	svcCtx *svc.ServiceContext
	idgen.UnimplementedIdGenServer
}

func NewIdGenServer(svcCtx *svc.ServiceContext) *IdGenServer {
	return &IdGenServer{
		svcCtx: svcCtx,
	}
}

func (s *IdGenServer) NextId(ctx context.Context, in *emptypb.Empty) (*wrapperspb.UInt64Value, error) {
	l := logic.NewNextIdLogic(ctx, s.svcCtx)
	return l.NextId(in)
}

func (s *IdGenServer) NextIds(in *wrapperspb.UInt32Value, stream idgen.IdGen_NextIdsServer) error {
	l := logic.NewNextIdsLogic(stream.Context(), s.svcCtx)
	return l.NextIds(in, stream)
}
