// Package context 提供基于 context.Context 的运行时状态子包。
//
// 子包列表：
//   - xrid: 运行时标识，支持层级嵌套、深度上限与异步继承
//
// 设计原则：
//   - 所有运行时状态通过 context.Context 传递，不使用全局变量
//   - 进入作用域返回子 context，父 context 保持不变
package context
