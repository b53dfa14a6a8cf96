package config

import (
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/zrpc"
)

type Config struct {
	rest.RestConf
	IdGenRpc  zrpc.RpcClientConf
	Gateway   GatewayConfig
	RedisConf redis.RedisConf `json:",optional"`
	RateLimit RateLimitConfig
	Breaker   BreakerConfig
}

type GatewayConfig struct {
	MaxBatch int `json:",default=1000,range=[1:4096]"`
}

type RateLimitConfig struct {
	Enabled bool `json:",default=false"`
	Rate    int  `json:",default=10000"`
	Burst   int  `json:",default=20000"`
}

type BreakerConfig struct {
	Enabled bool `json:",default=true"`
}
