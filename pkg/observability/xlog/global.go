package xlog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// =============================================================================
// 全局 Logger
//
// 面向命令行工具与示例代码；库代码应接受注入的 Logger。
// =============================================================================

var (
	global   atomic.Pointer[LoggerWithLevel]
	globalMu sync.Mutex

	// newBuilder 是默认 logger 的构建器工厂，测试可替换
	newBuilder = New
)

// Default 返回全局 Logger。
//
// 未设置时在首次调用时创建：输出到 stderr，Info 级别，text 格式，附加 runtime_id。
func Default() LoggerWithLevel {
	if l := global.Load(); l != nil {
		return *l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if l := global.Load(); l != nil {
		return *l
	}
	l := buildDefault()
	global.Store(&l)
	return l
}

// buildDefault 构建失败时退化为直接写 stderr 的 text logger，不 panic
func buildDefault() LoggerWithLevel {
	l, _, err := newBuilder().Build()
	if err == nil {
		return l
	}
	fmt.Fprintf(os.Stderr, "xlog: failed to build default logger: %v, using fallback\n", err)
	return &xlogger{
		handler:        slog.NewTextHandler(os.Stderr, nil),
		levelVar:       new(slog.LevelVar),
		errorCount:     new(atomic.Uint64),
		inErrorHandler: new(atomic.Bool),
	}
}

// SetDefault 替换全局 Logger，nil 被忽略
func SetDefault(l LoggerWithLevel) {
	if l != nil {
		global.Store(&l)
	}
}

// ResetDefault 清除全局 Logger，下次 Default 重新创建（用于测试）
func ResetDefault() {
	globalMu.Lock()
	global.Store(nil)
	globalMu.Unlock()
}

// =============================================================================
// 包级函数
// =============================================================================

// globalLog 比实例方法多一层调用，xlogger 需要额外跳过 1 帧才能定位调用方
func globalLog(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	l := Default()
	if xl, ok := l.(*xlogger); ok {
		xl.logWithSkip(ctx, level, msg, attrs, 1)
		return
	}

	var emit func(context.Context, string, ...slog.Attr)
	switch level {
	case slog.LevelDebug:
		emit = l.Debug
	case slog.LevelInfo:
		emit = l.Info
	case slog.LevelWarn:
		emit = l.Warn
	default:
		emit = l.Error
	}
	emit(ctx, msg, attrs...)
}

// Debug 使用全局 Logger 记录 Debug 日志
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	globalLog(ctx, slog.LevelDebug, msg, attrs)
}

// Info 使用全局 Logger 记录 Info 日志
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	globalLog(ctx, slog.LevelInfo, msg, attrs)
}

// Warn 使用全局 Logger 记录 Warn 日志
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	globalLog(ctx, slog.LevelWarn, msg, attrs)
}

// Error 使用全局 Logger 记录 Error 日志
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	globalLog(ctx, slog.LevelError, msg, attrs)
}

// Stack 使用全局 Logger 记录带 goroutine 堆栈的错误日志
func Stack(ctx context.Context, msg string, attrs ...slog.Attr) {
	l := Default()
	if xl, ok := l.(*xlogger); ok {
		xl.stackWithSkip(ctx, msg, attrs, 0)
		return
	}
	l.Stack(ctx, msg, attrs...)
}
