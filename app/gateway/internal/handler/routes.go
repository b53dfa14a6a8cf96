package handler

import (
	"net/http"

	"github.com/cnirrad/snowflake/app/gateway/internal/svc"
	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{serverCtx.Metrics, serverCtx.RateLimiter, serverCtx.Breaker},
			[]rest.Route{
				{
					Method:  http.MethodGet,
					Path:    "/id",
					Handler: nextIdHandler(serverCtx),
				},
				{
					Method:  http.MethodGet,
					Path:    "/ids",
					Handler: nextIdsHandler(serverCtx),
				},
			}...,
		),
		rest.WithPrefix("/api/v1"),
	)

	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/metrics",
				Handler: metricsHandler(),
			},
		},
	)
}
