package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/decker502/fireworks/internal/cli"
	"github.com/decker502/fireworks/pkg/embedded"
)

func main() {
	// 必须在加载内置配置之前初始化嵌入资源
	embedded.Init(dataFS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
