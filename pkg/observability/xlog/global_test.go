package xlog_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/omeyang/xrid/pkg/observability/xlog"
)

func setGlobal(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	logger, cleanup, err := xlog.New().SetOutput(buf).SetLevel(xlog.LevelDebug).Build()
	if err != nil {
		t.Fatal(err)
	}
	testCleanup(t, cleanup)
	xlog.SetDefault(logger)
	t.Cleanup(xlog.ResetDefault)
}

func TestDefault_LazyInit(t *testing.T) {
	xlog.ResetDefault()
	t.Cleanup(xlog.ResetDefault)

	first := xlog.Default()
	if first == nil {
		t.Fatal("Default() returned nil")
	}
	if xlog.Default() != first {
		t.Error("Default() should return the same instance")
	}
}

func TestSetDefault_Nil(t *testing.T) {
	var buf bytes.Buffer
	setGlobal(t, &buf)
	before := xlog.Default()

	xlog.SetDefault(nil)
	if xlog.Default() != before {
		t.Error("SetDefault(nil) should be ignored")
	}
}

func TestDefault_ConcurrencySafety(t *testing.T) {
	xlog.ResetDefault()
	t.Cleanup(xlog.ResetDefault)

	var wg sync.WaitGroup
	loggers := make([]xlog.LoggerWithLevel, 16)
	for i := range loggers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loggers[i] = xlog.Default()
		}()
	}
	wg.Wait()
	for _, l := range loggers {
		if l != loggers[0] {
			t.Fatal("concurrent Default() returned different instances")
		}
	}
}

func TestGlobal_ConvenienceFunctions(t *testing.T) {
	var buf bytes.Buffer
	setGlobal(t, &buf)

	inScope(t, func(ctx context.Context) {
		xlog.Debug(ctx, "g-debug")
		xlog.Info(ctx, "g-info")
		xlog.Warn(ctx, "g-warn")
		xlog.Error(ctx, "g-error")
		xlog.Stack(ctx, "g-stack")
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	for _, want := range []string{"g-debug", "g-info", "g-warn", "g-error", "g-stack"} {
		found := false
		for _, line := range lines {
			if strings.Contains(line, want) {
				found = true
				if !strings.Contains(line, "runtime_id=test:") {
					t.Errorf("%s line missing runtime_id: %s", want, line)
				}
			}
		}
		if !found {
			t.Errorf("output missing %q", want)
		}
	}
}

// recordingLogger 非 xlogger 实现，验证全局函数的 fallback 分支
type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (m *recordingLogger) add(msg string) {
	m.mu.Lock()
	m.msgs = append(m.msgs, msg)
	m.mu.Unlock()
}

func (m *recordingLogger) Debug(_ context.Context, msg string, _ ...slog.Attr) { m.add("D:" + msg) }
func (m *recordingLogger) Info(_ context.Context, msg string, _ ...slog.Attr)  { m.add("I:" + msg) }
func (m *recordingLogger) Warn(_ context.Context, msg string, _ ...slog.Attr)  { m.add("W:" + msg) }
func (m *recordingLogger) Error(_ context.Context, msg string, _ ...slog.Attr) { m.add("E:" + msg) }
func (m *recordingLogger) Stack(_ context.Context, msg string, _ ...slog.Attr) { m.add("S:" + msg) }
func (m *recordingLogger) With(...slog.Attr) xlog.Logger                       { return m }
func (m *recordingLogger) WithGroup(string) xlog.Logger                        { return m }
func (m *recordingLogger) Slog() *slog.Logger                                  { return slog.Default() }
func (m *recordingLogger) SetLevel(xlog.Level)                                 {}
func (m *recordingLogger) GetLevel() xlog.Level                                { return xlog.LevelDebug }
func (m *recordingLogger) Enabled(context.Context, xlog.Level) bool            { return true }

func TestGlobal_FallbackNonXlogger(t *testing.T) {
	rec := &recordingLogger{}
	xlog.SetDefault(rec)
	t.Cleanup(xlog.ResetDefault)

	ctx := context.Background()
	xlog.Debug(ctx, "a")
	xlog.Info(ctx, "b")
	xlog.Warn(ctx, "c")
	xlog.Error(ctx, "d")
	xlog.Stack(ctx, "e")

	want := []string{"D:a", "I:b", "W:c", "E:d", "S:e"}
	if strings.Join(rec.msgs, ",") != strings.Join(want, ",") {
		t.Errorf("msgs = %v, want %v", rec.msgs, want)
	}
}

func BenchmarkGlobal_Info(b *testing.B) {
	logger, _, err := xlog.New().SetOutput(&bytes.Buffer{}).Build()
	if err != nil {
		b.Fatal(err)
	}
	xlog.SetDefault(logger)
	b.Cleanup(xlog.ResetDefault)
	ctx := context.Background()

	b.ReportAllocs()
	for b.Loop() {
		xlog.Info(ctx, "bench")
	}
}
