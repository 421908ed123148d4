// Package xlog 基于 log/slog 的结构化日志库。
//
// # 创建 Logger
//
// Builder 模式配置输出目标、级别、格式、轮转与 runtime_id 注入，
// first-error-wins：第一个配置错误由 [Builder.Build] 返回。
//
//	logger, cleanup, err := xlog.New().
//		SetLevel(xlog.LevelDebug).
//		SetFormat("json").
//		SetRotation("/var/log/app.log").
//		Build()
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
//
// # 运行时标识
//
// 默认启用 [EnrichHandler]：每条日志都会带上 runtime_id 字段，
// 值取自 context 中由 xrid.Guard 建立的当前作用域，作用域外为 null。
// 字段名可通过 [Builder.SetRuntimeIDField] 修改，必须是合法标识符。
//
// 只接受 *slog.Logger 的组件可以通过 [Logger.Slog] 共享同一条 handler 链；
// 直接使用标准库 handler 时，可用 [NewRuntimeIDFilter] 与 [NewEnrichHandler] 自行装配。
//
// # 全局 Logger
//
// [Default]、[SetDefault]、[ResetDefault] 以及 [Debug]、[Info]、[Warn]、[Error]、[Stack]
// 便利函数，适用于脚手架与小工具。
//
// # 日志级别
//
// LevelDebug(-4)、LevelInfo(0)、LevelWarn(4)、LevelError(8)，
// 派生 logger（With/WithGroup）共享父级级别，SetLevel 同步生效。
//
// # 注意事项
//
// 对启用 enrich 的 logger 调用 WithGroup 后，runtime_id 会被归入该 group。
package xlog
