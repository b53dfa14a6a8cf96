package main

import (
	"flag"
	"fmt"

	"github.com/cnirrad/snowflake/app/idgen/idgen"
	"github.com/cnirrad/snowflake/app/idgen/internal/config"
	"github.com/cnirrad/snowflake/app/idgen/internal/server"
	"github.com/cnirrad/snowflake/app/idgen/internal/svc"
	"github.com/cnirrad/snowflake/app/pkg/interceptor/rpcserver"
	"github.com/cnirrad/snowflake/app/pkg/interceptor/rpctrace"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/zrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

var configFile = flag.String("f", "etc/idgen.yaml", "the config file")

func main() {
	flag.Parse()

	logx.MustSetup(logx.LogConf{Stat: false, Encoding: "plain"})

	var c config.Config
	conf.MustLoad(*configFile, &c)
	ctx := svc.NewServiceContext(c)

	s := zrpc.MustNewServer(c.RpcServerConf, func(grpcServer *grpc.Server) {
		idgen.RegisterIdGenServer(grpcServer, server.NewIdGenServer(ctx))

		if c.Mode == service.DevMode || c.Mode == service.TestMode {
			reflection.Register(grpcServer)
		}
	})
	defer s.Stop()

	//rpc log
	s.AddUnaryInterceptors(rpctrace.UnaryServerInterceptor(), rpcserver.LoggerInterceptor)
	s.AddStreamInterceptors(rpctrace.StreamServerInterceptor(), rpcserver.StreamLoggerInterceptor)

	fmt.Printf("Starting rpc server at %s, node %d...\n", c.ListenOn, ctx.Sequencer.NodeID())
	s.Start()
}
