package xrid

import (
	"context"
	"log/slog"
)

// 日志字段名
const (
	KeyRuntimeID    = "runtime_id"
	KeyRuntimeDepth = "runtime_depth"
)

// AppendAttrs 将当前作用域的标识与深度追加到 attrs。
// 不在作用域内时原样返回 attrs。
func AppendAttrs(attrs []slog.Attr, ctx context.Context) []slog.Attr {
	s, ok := Current(ctx)
	if !ok {
		return attrs
	}
	return append(attrs,
		slog.String(KeyRuntimeID, s.ID),
		slog.Int(KeyRuntimeDepth, s.Depth),
	)
}

// Attrs 返回当前作用域的日志属性，不在作用域内时返回 nil。
func Attrs(ctx context.Context) []slog.Attr {
	return AppendAttrs(nil, ctx)
}
