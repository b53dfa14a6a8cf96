package config

import (
	"github.com/cnirrad/snowflake/app/pkg/sequencer"
	"github.com/zeromicro/go-zero/zrpc"
)

type Config struct {
	zrpc.RpcServerConf
	Snowflake sequencer.Conf
	IdGen     IdGenConfig
}

type IdGenConfig struct {
	MaxBatch int `json:",default=4096,range=[1:65536]"`
}
