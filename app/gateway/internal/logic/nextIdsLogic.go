package logic

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/cnirrad/snowflake/app/gateway/internal/svc"
	"github.com/cnirrad/snowflake/app/gateway/internal/types"
	"github.com/cnirrad/snowflake/app/pkg/xerr"

	"github.com/zeromicro/go-zero/core/logx"
)

var ErrInvalidCount = xerr.NewErrCodeMsg(xerr.REQUEST_PARAM_ERROR, "invalid count")

type NextIdsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewNextIdsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *NextIdsLogic {
	return &NextIdsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *NextIdsLogic) validate(req *types.IdsReq) error {
	if req.Count <= 0 || req.Count > l.svcCtx.Config.Gateway.MaxBatch {
		return errors.Wrapf(ErrInvalidCount, "count %d not in [1, %d]", req.Count, l.svcCtx.Config.Gateway.MaxBatch)
	}
	return nil
}

func (l *NextIdsLogic) NextIds(req *types.IdsReq) (*types.IdsResp, error) {
	if err := l.validate(req); err != nil {
		return nil, err
	}

	ids, err := l.svcCtx.IdGenRpc.NextIds(l.ctx, uint32(req.Count))
	if err != nil {
		return nil, errors.Wrapf(err, "NextIds: %+v", req)
	}
	if len(ids) != req.Count {
		l.Errorf("idgen returned %d ids, want %d", len(ids), req.Count)
	}

	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, strconv.FormatUint(id, 10))
	}

	return &types.IdsResp{
		Ids:    ids,
		IdStrs: strs,
	}, nil
}
