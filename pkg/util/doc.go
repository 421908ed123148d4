// Package util 提供通用工具子包。
//
// 子包列表：
//   - xproc: 进程信息（PID、进程名），用于运行时标识的进程前缀
package util
