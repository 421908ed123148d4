// Package xrotate 提供日志文件轮转功能。
//
// Rotator 接口定义了轮转器的核心行为（Write/Close/Rotate），所有实现并发安全，
// 可直接作为 xlog 的输出目标（xlog.Builder.SetRotation）。
//
// # 当前实现
//
//   - [NewLumberjack]: 基于 lumberjack v2 的按大小轮转，自动创建父目录
//
// lumberjack 以 0600 权限创建日志文件；备份文件按数量与天数清理，至少保留一种清理策略。
package xrotate
