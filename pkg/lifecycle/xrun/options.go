package xrun

import (
	"log/slog"
	"os"

	"github.com/omeyang/xrid/pkg/context/xrid"
)

// Option 配置 Group 的选项函数。
type Option func(*groupOptions)

type groupOptions struct {
	logger          *slog.Logger
	name            string
	guard           *xrid.Guard
	signals         []os.Signal
	noSignalHandler bool
}

func defaultOptions() *groupOptions {
	return &groupOptions{
		logger: slog.Default(),
		name:   "xrun",
	}
}

// WithLogger 设置记录任务启停的日志记录器，默认 slog.Default()。
func WithLogger(logger *slog.Logger) Option {
	return func(o *groupOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置 Group 名称，用于日志中区分不同的 Group。默认 "xrun"。
func WithName(name string) Option {
	return func(o *groupOptions) {
		if name != "" {
			o.name = name
		}
	}
}

// WithGuard 让每个任务在 guard 建立的独立标识作用域中运行。
//
// Group 的 context 不在作用域内时，每个任务获得各自的根标识；
// 已在作用域内时，每个任务获得当前标识下的子标识。
// 超出 guard 深度上限的任务不会执行，直接以 *xrid.DepthError 失败。
func WithGuard(guard *xrid.Guard) Option {
	return func(o *groupOptions) {
		o.guard = guard
	}
}

// WithSignals 设置 Run/RunWithOptions 监听的信号列表。
//
// 默认监听 DefaultSignals()（SIGHUP、SIGINT、SIGTERM、SIGQUIT）。
func WithSignals(signals []os.Signal) Option {
	copied := append([]os.Signal(nil), signals...)
	return func(o *groupOptions) {
		o.signals = copied
	}
}

// WithoutSignalHandler 禁用 Run/RunWithOptions 的自动信号处理。
func WithoutSignalHandler() Option {
	return func(o *groupOptions) {
		o.noSignalHandler = true
	}
}
