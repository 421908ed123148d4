package xrid

import (
	"math"

	"github.com/omeyang/xrid/pkg/config/xconf"
)

// 配置键（相对于 ParseConfig 的 path）
const (
	KeyLength          = "length"
	KeyProcessIDPrefix = "prefix_process_id"
	KeyPrefix          = "prefix"
	KeyAlphabet        = "alphabet"
	KeyMaxDepth        = "max_depth"
	KeySeparator       = "separator"
	KeyName            = "name"
)

// ParseConfig 读取 path 下的 Guard 配置并返回对应的 Option 列表。
//
// 每个值按原始类型校验：整数字段接受 YAML 整数与 JSON 中的整数值数字，
// 布尔字段只接受布尔值，字符串字段只接受字符串。未出现或为 null 的键保持默认。
// 取值约束（如 length > 0）同时在这里校验，返回 *ConfigError。
//
//	cfg, _ := xconf.New("app.yaml")
//	opts, err := xrid.ParseConfig(cfg, "runtime_id")
//	g, err := xrid.New(opts...)
func ParseConfig(cfg xconf.Config, path string) ([]Option, error) {
	if cfg == nil {
		return nil, nil
	}
	p := parser{cfg: cfg, path: path, delim: cfg.Delim()}

	var opts []Option
	if n, ok, err := p.positiveInt(KeyLength); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, WithLength(n))
	}
	if b, ok, err := p.boolean(KeyProcessIDPrefix); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, WithProcessIDPrefix(b))
	}
	if s, ok, err := p.nonEmpty(KeyPrefix); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, WithPrefix(s))
	}
	if s, ok, err := p.nonEmpty(KeyAlphabet); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, WithAlphabet(s))
	}
	if n, ok, err := p.positiveInt(KeyMaxDepth); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, WithMaxDepth(n))
	}
	if s, ok, err := p.nonEmpty(KeySeparator); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, WithSeparator(s))
	}
	if s, ok, err := p.nonEmpty(KeyName); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, WithName(s))
	}
	return opts, nil
}

// NewFromConfig 等价于 ParseConfig 后调用 New，extra 在配置项之后应用。
func NewFromConfig(cfg xconf.Config, path string, extra ...Option) (*Guard, error) {
	opts, err := ParseConfig(cfg, path)
	if err != nil {
		return nil, err
	}
	return New(append(opts, extra...)...)
}

type parser struct {
	cfg   xconf.Config
	path  string
	delim string
}

func (p parser) lookup(key string) (any, bool) {
	full := key
	if p.path != "" {
		full = p.path + p.delim + key
	}
	v, ok := p.cfg.Lookup(full)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (p parser) positiveInt(key string) (int, bool, error) {
	v, ok := p.lookup(key)
	if !ok {
		return 0, false, nil
	}
	invalid := &ConfigError{Param: key, Reason: "must be an integer greater than 0"}

	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case uint64:
		if x > math.MaxInt64 {
			return 0, false, invalid
		}
		n = int64(x)
	case float64:
		if x != math.Trunc(x) || x > math.MaxInt32 || x < math.MinInt32 {
			return 0, false, invalid
		}
		n = int64(x)
	default:
		return 0, false, invalid
	}
	if n <= 0 || n > math.MaxInt32 {
		return 0, false, invalid
	}
	return int(n), true, nil
}

func (p parser) boolean(key string) (bool, bool, error) {
	v, ok := p.lookup(key)
	if !ok {
		return false, false, nil
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, false, &ConfigError{Param: key, Reason: "must be a boolean"}
	}
	return b, true, nil
}

func (p parser) nonEmpty(key string) (string, bool, error) {
	v, ok := p.lookup(key)
	if !ok {
		return "", false, nil
	}
	s, isString := v.(string)
	if !isString || s == "" {
		return "", false, &ConfigError{Param: key, Reason: "must be a non-empty string"}
	}
	return s, true, nil
}
