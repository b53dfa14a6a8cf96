package svc

import (
	"github.com/cnirrad/snowflake/app/gateway/internal/config"
	"github.com/cnirrad/snowflake/app/gateway/internal/middleware"
	"github.com/cnirrad/snowflake/app/idgen/idgenservice"
	"github.com/cnirrad/snowflake/app/pkg/interceptor/rpctrace"
	"github.com/zeromicro/go-zero/core/breaker"
	"github.com/zeromicro/go-zero/core/limit"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/zrpc"
	"google.golang.org/grpc"
)

type ServiceContext struct {
	Config       config.Config
	Metrics      rest.Middleware
	RateLimiter  rest.Middleware
	Breaker      rest.Middleware
	IdGenRpc     idgenservice.IdGen
	RedisClient  *redis.Redis
	IdLimiter *limit.TokenLimiter
}

func NewServiceContext(c config.Config) *ServiceContext {
	client := zrpc.MustNewClient(c.IdGenRpc,
		zrpc.WithUnaryClientInterceptor(rpctrace.UnaryClientInterceptor()),
		zrpc.WithDialOption(grpc.WithChainStreamInterceptor(rpctrace.StreamClientInterceptor())),
	)

	return newServiceContext(c, idgenservice.NewIdGen(client))
}

func newServiceContext(c config.Config, idGen idgenservice.IdGen) *ServiceContext {
	svcCtx := &ServiceContext{
		Config:   c,
		Metrics:  middleware.NewMetricsMiddleware().Handle,
		IdGenRpc: idGen,
	}

	// 初始化Redis客户端
	if c.RedisConf.Host != "" {
		svcCtx.RedisClient = redis.MustNewRedis(c.RedisConf)
		logx.Info("Redis client initialized")
	}

	// 初始化限流器 - 使用go-zero的令牌桶限流，未启用时中间件直接放行
	if c.RateLimit.Enabled && svcCtx.RedisClient != nil {
		svcCtx.IdLimiter = limit.NewTokenLimiter(
			c.RateLimit.Rate,
			c.RateLimit.Burst,
			svcCtx.RedisClient,
			"idgen:ratelimit",
		)
		logx.Infof("Rate limiter initialized: rate=%d, burst=%d", c.RateLimit.Rate, c.RateLimit.Burst)
	}
	svcCtx.RateLimiter = middleware.NewRateLimitMiddleware(svcCtx.IdLimiter).Handle

	// 初始化熔断器 - 使用go-zero的Google SRE熔断器
	var brk breaker.Breaker
	if c.Breaker.Enabled {
		brk = breaker.NewBreaker(breaker.WithName("gateway"))
		logx.Info("Circuit breaker initialized")
	}
	svcCtx.Breaker = middleware.NewBreakerMiddleware(brk).Handle

	return svcCtx
}
