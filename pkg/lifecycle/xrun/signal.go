package xrun

import (
	"context"
	"errors"
	"os"
	"syscall"
)

var (
	// ErrSignal 是所有 *SignalError 匹配的哨兵错误。
	ErrSignal = errors.New("received signal")

	// ErrNilFunc 表示传入的任务函数为 nil。
	ErrNilFunc = errors.New("xrun: nil task func")
)

// SignalError 是 Run/RunWithOptions 因系统信号退出时返回的错误。
//
//	var sigErr *xrun.SignalError
//	if errors.As(err, &sigErr) {
//	    log.Printf("stopped by %v", sigErr.Signal)
//	}
type SignalError struct {
	Signal os.Signal
}

func (e *SignalError) Error() string {
	name := "<nil>"
	if e.Signal != nil {
		name = e.Signal.String()
	}
	return "received signal " + name
}

// Is 使 errors.Is(err, ErrSignal) 成立。
func (e *SignalError) Is(target error) bool { return target == ErrSignal }

// Unwrap 返回 ErrSignal。
func (e *SignalError) Unwrap() error { return ErrSignal }

// DefaultSignals 返回默认监听的信号：SIGHUP、SIGINT、SIGTERM、SIGQUIT。
// 每次调用返回新的切片。
func DefaultSignals() []os.Signal {
	return []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT}
}

// testSigChanKey 用于在测试中通过 context 注入信号通道，
// 避免测试向进程发送真实信号。
type testSigChanKey struct{}

// testSigChan 从 context 中获取测试信号通道（生产环境返回 nil）。
func testSigChan(ctx context.Context) <-chan os.Signal {
	c, _ := ctx.Value(testSigChanKey{}).(<-chan os.Signal)
	return c
}

func withTestSigChan(ctx context.Context, c <-chan os.Signal) context.Context {
	return context.WithValue(ctx, testSigChanKey{}, c)
}
