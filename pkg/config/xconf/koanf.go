package xconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// unmarshalTag 是 Unmarshal 使用的结构体标签。
const unmarshalTag = "koanf"

type koanfConfig struct {
	k      *koanf.Koanf
	path   string
	format Format
	delim  string
}

// New 读取配置文件，格式由扩展名决定（.yaml/.yml 或 .json）。
func New(path string, opts ...Option) (Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	c, err := load(data, format, opts)
	if err != nil {
		return nil, err
	}
	c.path = path
	return c, nil
}

// NewFromBytes 从内存数据创建配置。空数据得到空配置，与读取空文件一致。
func NewFromBytes(data []byte, format Format, opts ...Option) (Config, error) {
	if parserFor(format) == nil {
		return nil, ErrUnsupportedFormat
	}
	return load(data, format, opts)
}

func load(data []byte, format Format, opts []Option) (*koanfConfig, error) {
	o := options{delim: defaultDelim}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	k := koanf.New(o.delim)
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parserFor(format)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
		}
	}
	return &koanfConfig{k: k, format: format, delim: o.delim}, nil
}

func (c *koanfConfig) Lookup(key string) (any, bool) {
	if !c.k.Exists(key) {
		return nil, false
	}
	return c.k.Get(key), true
}

func (c *koanfConfig) Unmarshal(path string, target any) error {
	err := c.k.UnmarshalWithConf(path, target, koanf.UnmarshalConf{Tag: unmarshalTag})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return nil
}

func (c *koanfConfig) Path() string   { return c.path }
func (c *koanfConfig) Format() Format { return c.format }
func (c *koanfConfig) Delim() string  { return c.delim }

// formatOf 按扩展名判断格式。
func formatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}

// parserFor 返回格式对应的解析器，不支持的格式返回 nil。
func parserFor(format Format) koanf.Parser {
	switch format {
	case FormatYAML:
		return yaml.Parser()
	case FormatJSON:
		return json.Parser()
	default:
		return nil
	}
}
