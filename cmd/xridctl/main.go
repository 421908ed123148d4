// xridctl 是运行时标识库的命令行工具，用于生成、演示和检查标识。
//
// 用法:
//
//	xridctl <命令> [命令参数]
//
// 命令:
//
//	gen      生成若干根标识
//	nest     逐层嵌套作用域并打印每层标识
//	demo     在 xrun 任务组中运行多个 worker，日志携带各自的 runtime_id
//
// 退出码:
//
//	0: 成功
//	1: 运行失败（如 nest 达到深度上限）
//	2: 参数或配置错误
//
// 示例:
//
//	xridctl gen --count 3 --prefix api
//	xridctl gen --config app.yaml --config-key runtime_id
//	xridctl nest --levels 4 --max-depth 3
//	xridctl demo --workers 4 --log-format json --log-file /tmp/xrid-demo.log
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// createApp 创建 CLI 应用。
func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xridctl",
		Usage:     "运行时标识生成与演示工具",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Writer:    stdout,
		ErrWriter: stderr,
		Commands:  createCommands(),
		// 禁止 urfave/cli 直接调用 os.Exit，由 run 统一映射退出码
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				_, _ = fmt.Fprintln(stderr, err)
			}
		},
	}
}

// run 执行命令并返回退出码。
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)

	err := app.Run(ctx, args)
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		_, _ = fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	if isCLIUsageError(err) {
		return 2
	}
	_, _ = fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}
