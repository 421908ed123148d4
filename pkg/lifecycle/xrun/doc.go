// Package xrun 提供基于 errgroup + context 的并发任务编排。
//
// # 概述
//
// xrun 基于 Go 官方扩展库 [errgroup] 构建，提供：
//   - 多任务并发运行和协调关闭
//   - 信号处理（SIGINT、SIGTERM 等）
//   - 每个任务独立的运行时标识作用域（通过 [WithGuard]）
//
// # 快速开始
//
//	guard, err := xrid.New(xrid.WithPrefix("job"))
//	if err != nil {
//	    return err
//	}
//	g, ctx := xrun.NewGroup(ctx, xrun.WithGuard(guard), xrun.WithLogger(logger))
//	for _, item := range items {
//	    g.GoWithName("process", func(ctx context.Context) error {
//	        return process(ctx, item) // ctx 携带该任务自己的 runtime id
//	    })
//	}
//	if err := g.Wait(); err != nil {
//	    return err
//	}
//
// 长驻进程可以使用 Run，收到终止信号时返回 *SignalError：
//
//	err := xrun.RunWithOptions(ctx, []xrun.Option{xrun.WithGuard(guard)}, worker)
//	var sigErr *xrun.SignalError
//	if errors.As(err, &sigErr) {
//	    log.Printf("received signal: %v", sigErr.Signal)
//	}
//
// # 错误处理
//
// Wait() 的错误处理遵循以下规则：
//   - 任务返回非 nil、非 context.Canceled 的错误时，Wait() 直接返回该错误
//   - 错误是 context.Canceled 且 Group 已被取消时，返回显式 cause，无 cause 时返回 nil
//   - context.Canceled 来自任务内部（Group 未被取消）时，原样返回
//   - 超出 guard 深度上限的任务以 *xrid.DepthError 失败，并取消整个 Group
//
// errgroup 只保留第一个错误；需要收集所有错误时，应在任务内部记录。
//
// 直接使用 NewGroup 时不包含信号处理。Run/RunWithOptions 默认监听
// DefaultSignals()，可通过 WithSignals 或 WithoutSignalHandler 调整。
//
// [errgroup]: https://pkg.go.dev/golang.org/x/sync/errgroup
package xrun
