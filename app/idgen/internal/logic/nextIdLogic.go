package logic

import (
	"context"

	"github.com/cnirrad/snowflake/app/idgen/internal/monitor"
	"github.com/cnirrad/snowflake/app/idgen/internal/svc"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/timex"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type NextIdLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewNextIdLogic(ctx context.Context, svcCtx *svc.ServiceContext) *NextIdLogic {
	return &NextIdLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *NextIdLogic) NextId(in *emptypb.Empty) (*wrapperspb.UInt64Value, error) {
	ctx, span := tracer.Start(l.ctx, monitor.MethodNextId)
	defer span.End()
	span.SetAttributes(attribute.Int64("idgen.node", l.svcCtx.Sequencer.NodeID()))

	start := timex.Now()
	id, err := l.svcCtx.Sequencer.NextID(ctx)
	if err != nil {
		span.RecordError(err)
		codeErr, reason := generateError(err)
		l.svcCtx.Metrics.RecordError(monitor.MethodNextId, reason)
		return nil, errors.Wrapf(codeErr, "sequencer next id failed, err: %v", err)
	}

	l.svcCtx.Metrics.RecordGenerated(monitor.MethodNextId, 1, timex.Since(start))
	return wrapperspb.UInt64(id), nil
}
