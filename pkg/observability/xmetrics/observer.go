package xmetrics

import "context"

// Observer 在作用域进入时被调用，返回的 Span 在作用域退出时结束。
//
// 实现必须并发安全：同一个 Observer 会被多个 goroutine 中的作用域共享。
type Observer interface {
	Start(ctx context.Context, opts SpanOptions) (context.Context, Span)
}

// Span 对应一次作用域的生命周期。End 只应生效一次。
type Span interface {
	End(result Result)
}

// SpanOptions 描述被观测的作用域。
type SpanOptions struct {
	// Component 组件名，多个库共用一个 Observer 时用于区分来源，空值记为 unknown。
	Component string
	// Operation 作用域名称，例如 Guard 的名称，空值记为 unknown。
	Operation string
	// Attrs 进入时已知的标签（如 kind=root），只出现在 total 指标上。
	Attrs []Attr
}

// Result 是作用域退出时的结果。
type Result struct {
	// Status 显式状态；为空时由 Err 推导。
	Status Status
	// Err 作用域内工作返回的错误，或异常退出的原因。
	Err error
	// Attrs 退出时才知道的标签（如 rejected=true）。
	Attrs []Attr
}

// status 返回最终状态：显式 Status 优先，其次按 Err 是否为 nil 推导。
func (r Result) status() Status {
	switch {
	case r.Status != "":
		return r.Status
	case r.Err != nil:
		return StatusError
	default:
		return StatusOK
	}
}

// Status 是 total 指标的 status 标签值。
type Status string

// 作用域的结束状态
const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// Attr 是一个指标标签。OTel 实现按 Go 类型映射，其余类型按 fmt.Sprint 转为字符串。
type Attr struct {
	Key   string
	Value any
}

// String 返回字符串标签。
func String(key, value string) Attr { return Attr{Key: key, Value: value} }

// Bool 返回布尔标签。
func Bool(key string, value bool) Attr { return Attr{Key: key, Value: value} }

// Int 返回整数标签。
func Int(key string, value int) Attr { return Attr{Key: key, Value: value} }

// Any 返回任意类型的标签。
func Any(key string, value any) Attr { return Attr{Key: key, Value: value} }

// Start 通过 observer 开始一次观测。
//
// 返回值总是非 nil：nil ctx 视为 context.Background()，
// nil observer 或返回 nil Span 的 observer 都退化为 NoopSpan。
func Start(ctx context.Context, observer Observer, opts SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if observer == nil {
		return ctx, NoopSpan{}
	}
	next, span := observer.Start(ctx, opts)
	if next == nil {
		next = ctx
	}
	if span == nil {
		span = NoopSpan{}
	}
	return next, span
}

// NoopObserver 不记录任何指标，是 Guard 的默认 Observer。
type NoopObserver struct{}

// Start 原样返回 ctx（nil 时返回 context.Background()）与 NoopSpan。
func (NoopObserver) Start(ctx context.Context, _ SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx, NoopSpan{}
}

// NoopSpan 的 End 什么也不做。
type NoopSpan struct{}

// End 实现 Span。
func (NoopSpan) End(Result) {}
