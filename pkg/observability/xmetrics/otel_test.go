package xmetrics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// ============================================================================
// 测试辅助函数
// ============================================================================

// newTestMeterProvider 创建用于测试的 MeterProvider
func newTestMeterProvider(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return mp, reader
}

// sumValue 汇总指定指标中满足属性过滤条件的数据点。
func sumValue(t *testing.T, reader *sdkmetric.ManualReader, name string, match ...attribute.KeyValue) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				if hasAll(dp.Attributes, match) {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func hasAll(set attribute.Set, match []attribute.KeyValue) bool {
	for _, kv := range match {
		v, ok := set.Value(kv.Key)
		if !ok || v != kv.Value {
			return false
		}
	}
	return true
}

// ============================================================================
// NewOTelObserver 测试
// ============================================================================

func TestNewOTelObserver_Default(t *testing.T) {
	obs, err := NewOTelObserver()
	require.NoError(t, err)
	require.NotNil(t, obs)
}

func TestNewOTelObserver_NilOptions(t *testing.T) {
	obs, err := NewOTelObserver(nil, WithMeterProvider(nil), WithInstrumentationName(""))
	require.NoError(t, err)
	require.NotNil(t, obs)
}

// ============================================================================
// Start / End 测试
// ============================================================================

func TestOTelObserver_ActiveTracksOpenSpans(t *testing.T) {
	mp, reader := newTestMeterProvider(t)
	obs, err := NewOTelObserver(WithMeterProvider(mp))
	require.NoError(t, err)

	opts := SpanOptions{Component: "xrid", Operation: "checkout"}
	_, outer := obs.Start(context.Background(), opts)
	_, inner := obs.Start(context.Background(), opts)

	assert.Equal(t, int64(2), sumValue(t, reader, MetricScopeActive))

	inner.End(Result{})
	assert.Equal(t, int64(1), sumValue(t, reader, MetricScopeActive))

	outer.End(Result{Err: errors.New("boom")})
	assert.Equal(t, int64(0), sumValue(t, reader, MetricScopeActive))

	assert.Equal(t, int64(1), sumValue(t, reader, MetricScopeTotal, attribute.String("status", "ok")))
	assert.Equal(t, int64(1), sumValue(t, reader, MetricScopeTotal, attribute.String("status", "error")))
}

func TestOTelObserver_EndIsIdempotent(t *testing.T) {
	mp, reader := newTestMeterProvider(t)
	obs, err := NewOTelObserver(WithMeterProvider(mp))
	require.NoError(t, err)

	_, span := obs.Start(context.Background(), SpanOptions{Component: "xrid", Operation: "op"})
	span.End(Result{})
	span.End(Result{})
	span.End(Result{Err: errors.New("late")})

	assert.Equal(t, int64(0), sumValue(t, reader, MetricScopeActive))
	assert.Equal(t, int64(1), sumValue(t, reader, MetricScopeTotal))
}

func TestOTelObserver_DefaultsAndAttrs(t *testing.T) {
	mp, reader := newTestMeterProvider(t)
	obs, err := NewOTelObserver(WithMeterProvider(mp))
	require.NoError(t, err)

	var nilCtx context.Context
	ctx, span := obs.Start(nilCtx, SpanOptions{
		Attrs: []Attr{String("kind", "root"), Int("depth", 0), {Key: "", Value: "skip"}, {Key: "nil", Value: nil}},
	})
	require.NotNil(t, ctx)
	span.End(Result{Status: StatusError, Attrs: []Attr{Bool("rejected", true)}})

	assert.Equal(t, int64(1), sumValue(t, reader, MetricScopeTotal,
		attribute.String("component", unknownComponent),
		attribute.String("operation", unknownOperation),
		attribute.String("kind", "root"),
		attribute.Int("depth", 0),
		attribute.Bool("rejected", true),
		attribute.String("status", "error"),
	))
}

func TestToKeyValue(t *testing.T) {
	tests := []struct {
		name string
		attr Attr
		want attribute.KeyValue
	}{
		{"string", String("k", "v"), attribute.String("k", "v")},
		{"bool", Bool("k", true), attribute.Bool("k", true)},
		{"int", Int("k", 3), attribute.Int("k", 3)},
		{"int64", Any("k", int64(4)), attribute.Int64("k", 4)},
		{"float64", Any("k", 1.5), attribute.Float64("k", 1.5)},
		{"other", Any("k", []int{1}), attribute.String("k", "[1]")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toKeyValue(tt.attr))
		})
	}
}
