package xmetrics

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	defaultInstrumentationName = "github.com/omeyang/xrid/xmetrics"
	unknownComponent           = "unknown"
	unknownOperation           = "unknown"

	// MetricScopeTotal 已结束作用域的累计数量。
	MetricScopeTotal = "xrid.scope.total"
	// MetricScopeActive 当前尚未结束的作用域数量。
	MetricScopeActive = "xrid.scope.active"
)

type otelConfig struct {
	instrumentationName string
	meterProvider       metric.MeterProvider
}

// NewOTelObserver 返回的错误。
var (
	ErrCreateCounter       = errors.New("xmetrics: create counter failed")
	ErrCreateUpDownCounter = errors.New("xmetrics: create up-down counter failed")
)

// Option 定义 OTel Observer 的配置选项。
type Option func(*otelConfig)

// WithInstrumentationName 设置 OTel instrumentation 名称。
func WithInstrumentationName(name string) Option {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithMeterProvider 设置 MeterProvider，nil 时沿用全局 provider。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// NewOTelObserver 创建基于 OpenTelemetry metric API 的 Observer。
func NewOTelObserver(opts ...Option) (Observer, error) {
	cfg := &otelConfig{
		instrumentationName: defaultInstrumentationName,
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)

	total, err := meter.Int64Counter(
		MetricScopeTotal,
		metric.WithDescription("finished guarded scopes"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateCounter, err)
	}

	active, err := meter.Int64UpDownCounter(
		MetricScopeActive,
		metric.WithDescription("guarded scopes currently entered"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateUpDownCounter, err)
	}

	return &otelObserver{total: total, active: active}, nil
}

type otelObserver struct {
	total  metric.Int64Counter
	active metric.Int64UpDownCounter
}

// Start 开始一次观测跨度，active 计数加一。
func (o *otelObserver) Start(ctx context.Context, opts SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}

	component := opts.Component
	if component == "" {
		component = unknownComponent
	}
	operation := opts.Operation
	if operation == "" {
		operation = unknownOperation
	}

	scopeAttrs := []attribute.KeyValue{
		attribute.String("component", component),
		attribute.String("operation", operation),
	}
	o.active.Add(ctx, 1, metric.WithAttributes(scopeAttrs...))

	return ctx, &otelSpan{
		observer:   o,
		ctx:        ctx,
		scopeAttrs: scopeAttrs,
		startAttrs: attrsToOTel(opts.Attrs),
	}
}

type otelSpan struct {
	observer   *otelObserver
	ctx        context.Context
	scopeAttrs []attribute.KeyValue
	startAttrs []attribute.KeyValue
	endOnce    sync.Once
}

// End 结束观测并记录结果。
//
// End 是幂等的，多次调用只会记录一次，active 计数不会被重复扣减。
func (s *otelSpan) End(result Result) {
	if s == nil {
		return
	}
	s.endOnce.Do(func() {
		// 请求 ctx 可能已取消，记录指标不受影响
		metricsCtx := context.WithoutCancel(s.ctx)
		s.observer.active.Add(metricsCtx, -1, metric.WithAttributes(s.scopeAttrs...))

		attrs := make([]attribute.KeyValue, 0, len(s.scopeAttrs)+1+len(s.startAttrs)+len(result.Attrs))
		attrs = append(attrs, s.scopeAttrs...)
		attrs = append(attrs, attribute.String("status", string(result.status())))
		attrs = append(attrs, s.startAttrs...)
		attrs = append(attrs, attrsToOTel(result.Attrs)...)
		s.observer.total.Add(metricsCtx, 1, metric.WithAttributes(attrs...))
	})
}

func attrsToOTel(attrs []Attr) []attribute.KeyValue {
	if len(attrs) == 0 {
		return nil
	}
	converted := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if attr.Key == "" || attr.Value == nil {
			continue
		}
		converted = append(converted, toKeyValue(attr))
	}
	return converted
}

func toKeyValue(attr Attr) attribute.KeyValue {
	switch v := attr.Value.(type) {
	case string:
		return attribute.String(attr.Key, v)
	case bool:
		return attribute.Bool(attr.Key, v)
	case int:
		return attribute.Int(attr.Key, v)
	case int64:
		return attribute.Int64(attr.Key, v)
	case float64:
		return attribute.Float64(attr.Key, v)
	default:
		return attribute.String(attr.Key, fmt.Sprint(v))
	}
}
