package xlog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level 日志级别，与 slog.Level 的取值一致
type Level slog.Level

// 日志级别常量
const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// ParseLevel 解析级别名称，规则同 slog.Level.UnmarshalText（大小写不敏感，
// 支持 "info+2" 一类的偏移），另外接受 "warning" 作为 "warn" 的别名。
// 失败时返回 LevelInfo 与错误。
func ParseLevel(s string) (Level, error) {
	name := strings.TrimSpace(s)
	if strings.EqualFold(name, "warning") {
		name = "warn"
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return LevelInfo, fmt.Errorf("xlog: unknown level %q", s)
	}
	return Level(l), nil
}

func (l Level) String() string { return slog.Level(l).String() }

// MarshalText 实现 encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText 实现 encoding.TextUnmarshaler，配置文件中的级别可直接解析
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
