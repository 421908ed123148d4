package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xrid/pkg/config/xconf"
	"github.com/omeyang/xrid/pkg/context/xrid"
)

// exitError 表示命令已完成输出，只需设置非零退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 表示参数或配置错误，退出码为 2。
type usageError struct {
	msg string
	err error
}

func (e *usageError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *usageError) Unwrap() error { return e.err }

// isCLIUsageError 判断错误是否来自 urfave/cli 的参数解析。
func isCLIUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{
		"flag provided but not defined",
		"flag needs an argument",
		"invalid value",
		"Required flag",
		"No help topic",
	} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createGenCommand(),
		createNestCommand(),
		createDemoCommand(),
	}
}

// guardFlags 是所有子命令共享的标识配置参数。
func guardFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "配置文件路径（.yaml/.yml/.json）"},
		&cli.StringFlag{Name: "config-key", Value: "runtime_id", Usage: "配置文件中标识配置所在的键，空字符串表示根"},
		&cli.IntFlag{Name: "length", Aliases: []string{"l"}, Usage: "每个片段的字符数"},
		&cli.BoolFlag{Name: "pid", Usage: "根标识以进程号开头"},
		&cli.StringFlag{Name: "prefix", Aliases: []string{"p"}, Usage: "根标识的静态前缀"},
		&cli.StringFlag{Name: "alphabet", Usage: "片段字符集"},
		&cli.StringFlag{Name: "sep", Usage: "片段分隔符"},
		&cli.IntFlag{Name: "max-depth", Usage: "作用域深度上限（含根）"},
	}
}

// guardOptions 先读取配置文件，再用显式给出的参数覆盖。
func guardOptions(cmd *cli.Command) ([]xrid.Option, error) {
	var opts []xrid.Option
	if path := cmd.String("config"); path != "" {
		cfg, err := xconf.New(path)
		if err != nil {
			return nil, &usageError{msg: "无法加载配置文件", err: err}
		}
		fileOpts, err := xrid.ParseConfig(cfg, cmd.String("config-key"))
		if err != nil {
			return nil, &usageError{msg: "配置文件无效", err: err}
		}
		opts = append(opts, fileOpts...)
	}

	if cmd.IsSet("length") {
		opts = append(opts, xrid.WithLength(cmd.Int("length")))
	}
	if cmd.IsSet("pid") {
		opts = append(opts, xrid.WithProcessIDPrefix(cmd.Bool("pid")))
	}
	if cmd.IsSet("prefix") {
		opts = append(opts, xrid.WithPrefix(cmd.String("prefix")))
	}
	if cmd.IsSet("alphabet") {
		opts = append(opts, xrid.WithAlphabet(cmd.String("alphabet")))
	}
	if cmd.IsSet("sep") {
		opts = append(opts, xrid.WithSeparator(cmd.String("sep")))
	}
	if cmd.IsSet("max-depth") {
		opts = append(opts, xrid.WithMaxDepth(cmd.Int("max-depth")))
	}
	return opts, nil
}

// newGuard 创建命令使用的 Guard，配置错误映射为 usageError。
func newGuard(cmd *cli.Command, extra ...xrid.Option) (*xrid.Guard, error) {
	opts, err := guardOptions(cmd)
	if err != nil {
		return nil, err
	}
	g, err := xrid.New(append(opts, extra...)...)
	if err != nil {
		return nil, &usageError{msg: "标识配置无效", err: err}
	}
	return g, nil
}

// quietLogger 丢弃 Guard 的内部日志，命令只输出结果。
func quietLogger() xrid.Option {
	return xrid.WithLogger(slog.New(slog.DiscardHandler))
}

// ----------------------------------------------------------------------------
// gen
// ----------------------------------------------------------------------------

func createGenCommand() *cli.Command {
	return &cli.Command{
		Name:  "gen",
		Usage: "生成若干根标识，每行一个",
		Flags: append([]cli.Flag{
			&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 1, Usage: "生成数量"},
		}, guardFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdGen(ctx, cmd, cmd.Root().Writer)
		},
	}
}

func cmdGen(ctx context.Context, cmd *cli.Command, w io.Writer) error {
	count := cmd.Int("count")
	if count < 0 {
		return &usageError{msg: fmt.Sprintf("--count 不能为负数: %d", count)}
	}
	g, err := newGuard(cmd, quietLogger())
	if err != nil {
		return err
	}

	for range count {
		err := g.Run(ctx, func(ctx context.Context) error {
			_, err := fmt.Fprintln(w, xrid.ID(ctx))
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ----------------------------------------------------------------------------
// nest
// ----------------------------------------------------------------------------

func createNestCommand() *cli.Command {
	return &cli.Command{
		Name:  "nest",
		Usage: "逐层嵌套作用域，打印每层的深度与标识",
		Flags: append([]cli.Flag{
			&cli.IntFlag{Name: "levels", Value: xrid.DefaultMaxDepth, Usage: "嵌套层数（含根）"},
		}, guardFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdNest(ctx, cmd, cmd.Root().Writer, cmd.Root().ErrWriter)
		},
	}
}

func cmdNest(ctx context.Context, cmd *cli.Command, w, errW io.Writer) error {
	levels := cmd.Int("levels")
	if levels <= 0 {
		return &usageError{msg: fmt.Sprintf("--levels 必须大于 0: %d", levels)}
	}
	g, err := newGuard(cmd, quietLogger())
	if err != nil {
		return err
	}

	err = nestLevels(ctx, g, w, levels)
	if errors.Is(err, xrid.ErrDepthExceeded) {
		_, _ = fmt.Fprintln(errW, err)
		return &exitError{code: 1}
	}
	return err
}

func nestLevels(ctx context.Context, g *xrid.Guard, w io.Writer, remaining int) error {
	if remaining == 0 {
		return nil
	}
	return g.Run(ctx, func(ctx context.Context) error {
		s, _ := xrid.Current(ctx)
		if _, err := fmt.Fprintf(w, "%d %s\n", s.Depth, s.ID); err != nil {
			return err
		}
		return nestLevels(ctx, g, w, remaining-1)
	})
}
