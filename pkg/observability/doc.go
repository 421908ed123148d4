// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展，自动附加 runtime_id
//   - xmetrics: 作用域观测接口与 OpenTelemetry 计数器实现
//   - xrotate: 日志文件轮转
//
// 设计原则：
//   - 遵循 OpenTelemetry 语义规范
//   - 从 context 中提取运行时标识注入日志
package observability
