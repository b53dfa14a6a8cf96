package logic

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/cnirrad/snowflake/app/gateway/internal/svc"
	"github.com/cnirrad/snowflake/app/gateway/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type NextIdLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewNextIdLogic(ctx context.Context, svcCtx *svc.ServiceContext) *NextIdLogic {
	return &NextIdLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *NextIdLogic) NextId() (*types.IdResp, error) {
	id, err := l.svcCtx.IdGenRpc.NextId(l.ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "NextId")
	}

	return &types.IdResp{
		Id:    id,
		IdStr: strconv.FormatUint(id, 10),
	}, nil
}
