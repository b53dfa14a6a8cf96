package logic

import (
	"context"

	"github.com/cnirrad/snowflake/app/idgen/idgen"
	"github.com/cnirrad/snowflake/app/idgen/internal/monitor"
	"github.com/cnirrad/snowflake/app/idgen/internal/svc"
	"github.com/cnirrad/snowflake/app/pkg/xerr"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/timex"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type NextIdsLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewNextIdsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *NextIdsLogic {
	return &NextIdsLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *NextIdsLogic) NextIds(in *wrapperspb.UInt32Value, stream idgen.IdGen_NextIdsServer) error {
	count := int(in.GetValue())
	if count <= 0 || count > l.svcCtx.Config.IdGen.MaxBatch {
		l.svcCtx.Metrics.RecordError(monitor.MethodNextIds, "invalid_count")
		return errors.Wrapf(xerr.NewErrCode(xerr.REQUEST_PARAM_ERROR), "count %d not in [1, %d]",
			count, l.svcCtx.Config.IdGen.MaxBatch)
	}

	ctx, span := tracer.Start(l.ctx, monitor.MethodNextIds)
	defer span.End()
	span.SetAttributes(
		attribute.Int64("idgen.node", l.svcCtx.Sequencer.NodeID()),
		attribute.Int("idgen.count", count),
	)

	start := timex.Now()
	ids, err := l.svcCtx.Sequencer.NextIDs(ctx, count)
	if err != nil {
		span.RecordError(err)
		codeErr, reason := generateError(err)
		l.svcCtx.Metrics.RecordError(monitor.MethodNextIds, reason)
		return errors.Wrapf(codeErr, "sequencer next ids failed, count: %d, err: %v", count, err)
	}
	l.svcCtx.Metrics.RecordGenerated(monitor.MethodNextIds, len(ids), timex.Since(start))

	for _, id := range ids {
		if err := stream.Send(wrapperspb.UInt64(id)); err != nil {
			// 客户端断开时已发出的ID直接丢弃，不会被复用
			l.Errorf("send id failed after generation, count: %d, err: %v", count, err)
			return err
		}
	}

	return nil
}
