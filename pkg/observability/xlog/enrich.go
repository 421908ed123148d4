package xlog

import (
	"context"
	"errors"
	"log/slog"
)

// ErrNilHandler 当 NewEnrichHandler 的 base handler 为 nil 时返回
var ErrNilHandler = errors.New("xlog: base handler is nil")

// EnrichHandler 在每条记录上应用 RuntimeIDFilter 后转发给底层 handler
//
// 调用 WithGroup 后，runtime_id 会被归入 group 下，这是 slog handler 的固有行为。
type EnrichHandler struct {
	base   slog.Handler
	filter *RuntimeIDFilter
}

// NewEnrichHandler 创建 EnrichHandler，filter 为 nil 时使用默认字段名。
func NewEnrichHandler(base slog.Handler, filter *RuntimeIDFilter) (*EnrichHandler, error) {
	if base == nil {
		return nil, ErrNilHandler
	}
	if filter == nil {
		filter = &RuntimeIDFilter{field: DefaultRuntimeIDField}
	}
	return &EnrichHandler{base: base, filter: filter}, nil
}

// Enabled 委托给底层 handler
func (h *EnrichHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// Handle 根据 slog 契约先 Clone record 再追加字段
func (h *EnrichHandler) Handle(ctx context.Context, r slog.Record) error {
	r = r.Clone()
	h.filter.Filter(ctx, &r)
	return h.base.Handle(ctx, r)
}

// WithAttrs 返回带额外属性的新 handler
func (h *EnrichHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EnrichHandler{base: h.base.WithAttrs(attrs), filter: h.filter}
}

// WithGroup 返回带分组的新 handler
func (h *EnrichHandler) WithGroup(name string) slog.Handler {
	return &EnrichHandler{base: h.base.WithGroup(name), filter: h.filter}
}
