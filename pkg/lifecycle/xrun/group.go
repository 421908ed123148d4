package xrun

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xrid/pkg/context/xrid"
)

// Group 基于 errgroup + context 管理多个任务的并发运行和协调关闭。
//
// 当任一任务返回错误或 context 被取消时，所有任务都会收到取消信号。
// 配置了 [WithGuard] 时，每个任务在各自的标识作用域内运行，
// 任务之间互不可见对方的标识。
//
// Go、GoWithName、Cancel 可安全地从多个 goroutine 并发调用。
// Wait 应仅调用一次。
//
// 使用方式：
//
//	guard, _ := xrid.New(xrid.WithPrefix("worker"))
//	g, ctx := xrun.NewGroup(ctx, xrun.WithGuard(guard))
//	g.Go(func(ctx context.Context) error {
//	    slog.InfoContext(ctx, "working", "id", xrid.ID(ctx))
//	    return nil
//	})
//	if err := g.Wait(); err != nil {
//	    log.Fatal(err)
//	}
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	opts     *groupOptions
}

// NewGroup 创建新的 Group。
//
// 返回 Group 和派生的 context。当任一任务返回错误时，
// 返回的 context 会被取消。nil ctx 视为 context.Background()。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	options := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(options)
	}

	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)

	return &Group{
		eg:       eg,
		ctx:      egCtx,
		causeCtx: causeCtx,
		cancel:   cancel,
		opts:     options,
	}, egCtx
}

// Go 启动一个 goroutine 执行 fn。
//
// fn 应监听 ctx.Done() 以响应取消。fn 返回非 nil 错误时，
// 会触发所有其他任务的取消。
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		return g.run(fn)
	})
}

// GoWithName 与 Go 相同，但会在日志中记录任务名称。
//
// 配置了 guard 时，启停日志带有该任务的 runtime_id 与 runtime_depth。
func (g *Group) GoWithName(name string, fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}

		started := false
		err := g.run(func(ctx context.Context) error {
			started = true
			attrs := xrid.AppendAttrs([]slog.Attr{
				slog.String("group", g.opts.name),
				slog.String("task", name),
			}, ctx)

			g.opts.logger.LogAttrs(ctx, slog.LevelDebug, "task starting", attrs...)
			err := fn(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				g.opts.logger.LogAttrs(ctx, slog.LevelWarn, "task exited with error",
					append(attrs, slog.Any("error", err))...)
			} else {
				g.opts.logger.LogAttrs(ctx, slog.LevelDebug, "task stopped", attrs...)
			}
			return err
		})

		if !started && err != nil {
			g.opts.logger.Warn("task not started",
				slog.String("group", g.opts.name),
				slog.String("task", name),
				slog.Any("error", err),
			)
		}
		return err
	})
}

// run 在 guard 作用域内（若配置）执行 fn。
func (g *Group) run(fn func(ctx context.Context) error) error {
	if g.opts.guard == nil {
		return fn(g.ctx)
	}
	return g.opts.guard.Run(g.ctx, fn)
}

// Wait 等待所有任务完成。
//
// 返回第一个非 nil 错误。错误是 context.Canceled 且 Group 已被取消时，
// 返回 Cancel(cause) 或信号处理设置的退出原因；没有显式原因时返回 nil。
// 即使所有任务返回 nil，显式的退出原因仍然会被返回。
func (g *Group) Wait() error {
	defer g.cancel(nil)

	g.opts.logger.Debug("waiting for tasks",
		slog.String("group", g.opts.name),
	)

	err := g.eg.Wait()

	g.opts.logger.Debug("all tasks stopped",
		slog.String("group", g.opts.name),
	)

	// causeCtx 未被取消时，context.Canceled 来自任务内部，不过滤
	if errors.Is(err, context.Canceled) {
		if g.causeCtx.Err() != nil {
			return g.explicitCause()
		}
		return err
	}

	if err == nil && g.causeCtx.Err() != nil {
		return g.explicitCause()
	}
	return err
}

func (g *Group) explicitCause() error {
	if cause := context.Cause(g.causeCtx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}
	return nil
}

// Cancel 主动取消所有任务。
//
// cause 会作为 context 的取消原因并由 Wait 返回。cause 为 nil 时 Wait 返回 nil。
// cause 不应包装 context.Canceled，否则会被视为普通取消而过滤。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context 返回 Group 的 context。
func (g *Group) Context() context.Context {
	return g.ctx
}

// ----------------------------------------------------------------------------
// 便捷函数
// ----------------------------------------------------------------------------

// runGroup 是 Run/RunWithOptions 的共享实现。
//
// 默认注册信号监听任务：收到配置的信号时以 *SignalError 取消 Group。
// 信号监听任务不进入 guard 作用域。
func runGroup(ctx context.Context, opts []Option, tasks []func(ctx context.Context) error) error {
	g, _ := NewGroup(ctx, opts...)

	if !g.opts.noSignalHandler {
		signals := g.opts.signals
		// 空切片与 nil 等价；signal.Notify 无参调用会订阅所有信号
		if len(signals) == 0 {
			signals = DefaultSignals()
		}

		g.eg.Go(func() error {
			testc := testSigChan(g.ctx)
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, signals...)
			defer signal.Stop(sigCh)

			var sig os.Signal
			select {
			case sig = <-testc:
			case sig = <-sigCh:
			case <-g.ctx.Done():
				return g.ctx.Err()
			}

			g.opts.logger.Info("received signal",
				slog.String("group", g.opts.name),
				slog.String("signal", sig.String()),
			)
			g.cancel(&SignalError{Signal: sig})
			return nil
		})
	}

	for _, task := range tasks {
		g.Go(task)
	}
	return g.Wait()
}

// Run 监听信号并运行任务，直到全部任务退出或收到终止信号。
//
// 收到 SIGHUP/SIGINT/SIGTERM/SIGQUIT 时 ctx 被取消，Run 返回 *SignalError。
//
//	err := xrun.Run(context.Background(), worker1, worker2)
//	if errors.Is(err, xrun.ErrSignal) {
//	    log.Println("received signal, shutting down")
//	}
func Run(ctx context.Context, tasks ...func(ctx context.Context) error) error {
	return runGroup(ctx, nil, tasks)
}

// RunWithOptions 与 Run 相同，但支持配置选项。
func RunWithOptions(ctx context.Context, opts []Option, tasks ...func(ctx context.Context) error) error {
	return runGroup(ctx, opts, tasks)
}
