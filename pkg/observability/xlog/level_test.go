package xlog_test

import (
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/omeyang/xrid/pkg/observability/xlog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    xlog.Level
		wantErr bool
	}{
		{"debug", xlog.LevelDebug, false},
		{"INFO", xlog.LevelInfo, false},
		{" warn ", xlog.LevelWarn, false},
		{"warning", xlog.LevelWarn, false},
		{"Error", xlog.LevelError, false},
		{"info+2", xlog.Level(slog.LevelInfo + 2), false},
		{"trace", xlog.LevelInfo, true},
		{"", xlog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := xlog.ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevel_String(t *testing.T) {
	tests := map[xlog.Level]string{
		xlog.LevelDebug: "DEBUG",
		xlog.LevelInfo:  "INFO",
		xlog.LevelWarn:  "WARN",
		xlog.LevelError: "ERROR",
		xlog.Level(slog.LevelInfo + 2): "INFO+2",
	}
	for level, want := range tests {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", int(level), got, want)
		}
	}
}

func TestLevel_TextRoundTrip(t *testing.T) {
	var cfg struct {
		Level xlog.Level `json:"level"`
	}
	if err := json.Unmarshal([]byte(`{"level":"warn"}`), &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Level != xlog.LevelWarn {
		t.Errorf("Level = %v, want WARN", cfg.Level)
	}
	out, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"level":"WARN"}` {
		t.Errorf("Marshal = %s", out)
	}
	if err := json.Unmarshal([]byte(`{"level":"loud"}`), &cfg); err == nil {
		t.Error("expected error for unknown level")
	}
}
