package xlog

import (
	"context"
	"log/slog"

	"github.com/omeyang/xrid/pkg/context/xrid"
)

// DefaultRuntimeIDField 默认的日志字段名
const DefaultRuntimeIDField = xrid.KeyRuntimeID

// RuntimeIDFilter 为日志记录附加当前运行时标识
//
// 不在任何作用域内时字段值为 nil（JSON 输出为 null，text 输出为 <nil>），
// 字段总是存在，便于下游按固定 schema 解析。
// Filter 从不丢弃记录。
type RuntimeIDFilter struct {
	field string
}

// FilterOption 配置 RuntimeIDFilter
type FilterOption func(*RuntimeIDFilter)

// WithField 设置字段名，必须是合法标识符（字母或下划线开头，后接字母、数字、下划线）。
func WithField(name string) FilterOption {
	return func(f *RuntimeIDFilter) {
		f.field = name
	}
}

// NewRuntimeIDFilter 创建过滤器。字段名非法时返回 *xrid.ConfigError。
func NewRuntimeIDFilter(opts ...FilterOption) (*RuntimeIDFilter, error) {
	f := &RuntimeIDFilter{field: DefaultRuntimeIDField}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if !isIdentifier(f.field) {
		return nil, &xrid.ConfigError{Param: "field", Reason: "must be a valid identifier"}
	}
	return f, nil
}

// Field 返回字段名
func (f *RuntimeIDFilter) Field() string {
	return f.field
}

// Attr 返回当前 context 对应的日志属性
func (f *RuntimeIDFilter) Attr(ctx context.Context) slog.Attr {
	if id, ok := xrid.Lookup(ctx); ok {
		return slog.String(f.field, id)
	}
	return slog.Any(f.field, nil)
}

// Filter 把字段追加到 r，总是返回 true。
//
// slog.Record 共享属性存储，调用方如果还会把 r 交给其他 handler，应先 Clone。
func (f *RuntimeIDFilter) Filter(ctx context.Context, r *slog.Record) bool {
	if r != nil {
		r.AddAttrs(f.Attr(ctx))
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
