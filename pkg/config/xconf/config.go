package xconf

import "errors"

// Config 是只读的配置视图。
//
// 键使用 Delim() 分隔的路径表示嵌套，例如 "runtime_id.max_depth"。
type Config interface {
	// Lookup 返回 key 处的原始值，不做类型转换；key 不存在时返回 (nil, false)。
	Lookup(key string) (any, bool)

	// Unmarshal 将 path 下的配置反序列化到 target，path 为空时使用整个配置。
	// 映射使用 koanf 结构体标签。
	Unmarshal(path string, target any) error

	// Path 返回来源文件路径，由字节数据创建时为空。
	Path() string

	// Format 返回数据格式。
	Format() Format

	// Delim 返回键路径分隔符。
	Delim() string
}

// Format 是配置数据格式。
type Format string

// 支持的格式
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// 加载错误
var (
	ErrEmptyPath         = errors.New("xconf: empty config path")
	ErrUnsupportedFormat = errors.New("xconf: unsupported config format")
	ErrLoadFailed        = errors.New("xconf: failed to load config")
	ErrParseFailed       = errors.New("xconf: failed to parse config")
	ErrUnmarshalFailed   = errors.New("xconf: failed to unmarshal config")
)

const defaultDelim = "."

// Option 配置加载选项。
type Option func(*options)

type options struct {
	delim string
}

// WithDelim 设置键路径分隔符，默认 "."。空字符串被忽略。
//
// 当键名本身含有 "." 时可改用其它分隔符，例如 "/"。
func WithDelim(delim string) Option {
	return func(o *options) {
		if delim != "" {
			o.delim = delim
		}
	}
}
