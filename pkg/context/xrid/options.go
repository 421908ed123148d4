package xrid

import (
	"log/slog"

	"github.com/omeyang/xrid/pkg/observability/xmetrics"
)

// 默认配置
const (
	DefaultLength    = 8
	DefaultAlphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
	DefaultMaxDepth  = 3
	DefaultSeparator = ":"
	DefaultName      = "xrid"
)

// Option 配置 Guard。
type Option func(*options)

type options struct {
	length    int
	pidPrefix bool
	prefix    string
	prefixSet bool
	alphabet  string
	maxDepth  int
	separator string
	name      string
	logger    *slog.Logger
	observer  xmetrics.Observer
	generator Generator
}

func defaultOptions() *options {
	return &options{
		length:    DefaultLength,
		alphabet:  DefaultAlphabet,
		maxDepth:  DefaultMaxDepth,
		separator: DefaultSeparator,
		name:      DefaultName,
		logger:    slog.Default(),
		observer:  xmetrics.NoopObserver{},
		generator: defaultGenerator,
	}
}

// WithLength 设置每个随机片段的字符数，必须大于 0。
func WithLength(n int) Option {
	return func(o *options) {
		o.length = n
	}
}

// WithProcessIDPrefix 设置根标识是否以当前进程号开头。
func WithProcessIDPrefix(enabled bool) Option {
	return func(o *options) {
		o.pidPrefix = enabled
	}
}

// WithPrefix 设置根标识的静态前缀。
// 一旦调用，前缀必须非空；不调用则没有前缀。
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
		o.prefixSet = true
	}
}

// WithAlphabet 设置随机片段的字符集，必须非空。
func WithAlphabet(alphabet string) Option {
	return func(o *options) {
		o.alphabet = alphabet
	}
}

// WithMaxDepth 设置允许的最大层数（包含根作用域），必须大于 0。
//
// 例如 WithMaxDepth(2) 允许深度 0 与 1，第三层返回 ErrDepthExceeded。
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithSeparator 设置片段之间的分隔符，必须非空。
func WithSeparator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}

// WithName 设置 Guard 名称，用于日志与指标的 operation 标签。
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger 设置日志记录器，nil 会被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver 设置作用域观测器，nil 表示不观测。
func WithObserver(observer xmetrics.Observer) Option {
	return func(o *options) {
		if observer == nil {
			o.observer = xmetrics.NoopObserver{}
			return
		}
		o.observer = observer
	}
}

// WithGenerator 替换随机片段生成器，主要用于测试。
func WithGenerator(gen Generator) Option {
	return func(o *options) {
		o.generator = gen
	}
}

// validate 按参数顺序检查约束，返回第一个违反项。
func (o *options) validate() error {
	switch {
	case o.length <= 0:
		return &ConfigError{Param: KeyLength, Reason: "must be an integer greater than 0"}
	case o.maxDepth <= 0:
		return &ConfigError{Param: KeyMaxDepth, Reason: "must be an integer greater than 0"}
	case o.alphabet == "":
		return &ConfigError{Param: KeyAlphabet, Reason: "must be a non-empty string"}
	case o.separator == "":
		return &ConfigError{Param: KeySeparator, Reason: "must be a non-empty string"}
	case o.prefixSet && o.prefix == "":
		return &ConfigError{Param: KeyPrefix, Reason: "must be a non-empty string when set"}
	case o.name == "":
		return &ConfigError{Param: KeyName, Reason: "must be a non-empty string"}
	case o.generator == nil:
		return &ConfigError{Param: "generator", Reason: "must not be nil"}
	}
	return nil
}

// Settings 是 Guard 生效配置的只读快照。
type Settings struct {
	Length          int
	ProcessIDPrefix bool
	// Prefix 为空表示没有静态前缀。
	Prefix    string
	Alphabet  string
	MaxDepth  int
	Separator string
	Name      string
}
