// Package xrid 提供基于 context 的运行时标识。
//
// # 概述
//
// Guard 为一段工作建立作用域：作用域内可以从 context 读取当前标识，
// 无需在函数签名中逐层传递。作用域可以嵌套，子标识总是
// "父标识 + 分隔符 + 新片段"，嵌套层数受 max_depth 限制。
//
//	g, err := xrid.New(xrid.WithPrefix("api"))
//	if err != nil {
//	    return err
//	}
//	err = g.Run(ctx, func(ctx context.Context) error {
//	    id := xrid.ID(ctx) // "api:q3k9x0ab"
//	    return handle(ctx)
//	})
//
// # 标识格式
//
//	[进程号 sep][前缀 sep]片段{sep 片段}
//
// 片段为从字符集中均匀随机抽取的定长字符串，默认长度 8、字符集 0-9a-z、分隔符 ":"。
// 标识仅用于日志关联，不具备密码学强度，也不保证全局唯一。
//
// # 深度
//
// 根作用域深度为 0，每嵌套一层加 1。max_depth 表示允许的层数（包含根），
// 默认 3 即深度 0、1、2。超限时返回 *DepthError，工作函数不会被调用。
//
// # 状态恢复
//
// 作用域存放在派生的子 context 中，调用方的 context 从未被修改。
// 工作函数正常返回、返回错误或 panic 时，调用方看到的都是进入前的状态；
// 错误原样透传，panic 继续向上传播。
//
// # 并发
//
// 每个 goroutine 使用自己的 context 链，不存在共享的可变状态。
// Go 在新 goroutine 中建立作用域，并通过 Future 返回结果。
//
// # 配置
//
// ParseConfig 从 xconf 配置读取 length、prefix_process_id、prefix、
// alphabet、max_depth、separator、name，所有约束在创建 Guard 时校验。
//
// # 日志
//
// AppendAttrs 与 Attrs 生成 runtime_id/runtime_depth 日志属性；
// xlog 包中的 RuntimeIDFilter 会为每条日志自动附加 runtime_id 字段。
package xrid
