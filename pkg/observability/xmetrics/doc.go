// Package xmetrics 提供作用域级别的指标观测接口。
//
// # 设计理念
//
// xmetrics 仅定义最小化接口：Observer/Span/Attr，
// 业务代码只依赖接口；具体实现可替换。
// 默认实现基于 OpenTelemetry metric API，只记录计数类指标，不产生 trace span，
// 也不记录耗时。
//
// Span 在这里表示"一次受保护作用域的生命周期"：Start 对应进入，End 对应退出。
// 进入与退出必须成对出现，active 指标因此可以直接反映泄漏的作用域。
//
// # 使用示例
//
//	obs, _ := xmetrics.NewOTelObserver()
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "xrid",
//		Operation: "handle_order",
//	})
//	defer func() { span.End(xmetrics.Result{Err: err}) }()
//
// # 指标命名
//
//   - xrid.scope.total   (Counter)       属性：component / operation / status + 自定义属性
//   - xrid.scope.active  (UpDownCounter) 属性：component / operation
package xmetrics
