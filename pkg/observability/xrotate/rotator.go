package xrotate

import "io"

var _ io.WriteCloser = (Rotator)(nil)

// Rotator 日志轮转器接口
//
// 实现必须并发安全；Close 之后的 Write 与 Rotate 返回 [ErrClosed]。
type Rotator interface {
	// Write 写入日志数据，达到轮转条件时自动轮转
	Write(p []byte) (n int, err error)

	// Close 关闭当前文件，重复调用返回 [ErrClosed]
	Close() error

	// Rotate 手动轮转：当前文件改名为备份，之后的写入进入新文件
	Rotate() error
}
