package xrid

import (
	"context"
	"log/slog"
	"strings"

	"github.com/omeyang/xrid/pkg/observability/xmetrics"
	"github.com/omeyang/xrid/pkg/util/xproc"
)

// 观测标签
const (
	componentName = "xrid"

	attrKind     = "kind"
	kindRoot     = "root"
	kindNested   = "nested"
	attrRejected = "rejected"
)

// Guard 为工作函数建立标识作用域。
//
// Guard 创建后不可变，可在多个 goroutine 间共享。
// 一个 Guard 可以嵌套在另一个 Guard 之内，深度上限由内层 Guard 的配置决定。
type Guard struct {
	opts *options
}

// New 校验配置并创建 Guard。配置非法时返回 *ConfigError。
func New(opts ...Option) (*Guard, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &Guard{opts: o}, nil
}

// Options 返回生效配置的快照。
func (g *Guard) Options() Settings {
	return Settings{
		Length:          g.opts.length,
		ProcessIDPrefix: g.opts.pidPrefix,
		Prefix:          g.opts.prefix,
		Alphabet:        g.opts.alphabet,
		MaxDepth:        g.opts.maxDepth,
		Separator:       g.opts.separator,
		Name:            g.opts.name,
	}
}

// Run 在新作用域中执行 fn。
//
// 不在任何作用域内时建立根作用域；否则在当前标识后追加一个片段。
// 若新作用域会达到最大深度，返回 *DepthError 且不调用 fn。
// fn 返回的错误原样透传；fn panic 时先恢复状态再继续向上 panic。
func (g *Guard) Run(ctx context.Context, fn func(context.Context) error) (err error) {
	if g == nil {
		return ErrNilGuard
	}
	if ctx == nil {
		return ErrNilContext
	}
	if fn == nil {
		return ErrNilFunc
	}

	inner, tok, err := g.enter(ctx)
	if err != nil {
		return err
	}

	// 不使用 recover：panic 与 runtime.Goexit 原样向上传播，
	// finished 仅用于区分观测结果。
	finished := false
	defer func() {
		if !finished {
			tok.detach(errAbnormalExit)
			return
		}
		tok.detach(err)
	}()

	err = fn(inner)
	finished = true
	return err
}

// Wrap 返回在新作用域中执行 fn 的函数。
// fn 为 nil 时返回的函数总是返回 ErrNilFunc。
func (g *Guard) Wrap(fn func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		return g.Run(ctx, fn)
	}
}

// enter 计算新作用域并安装，返回子 context 与恢复令牌。
func (g *Guard) enter(parent context.Context) (context.Context, *token, error) {
	cur, nested := Current(parent)

	var next Scope
	kind := kindRoot
	if nested {
		kind = kindNested
		if cur.Depth+1 >= g.opts.maxDepth {
			err := &DepthError{MaxDepth: g.opts.maxDepth, ID: cur.ID, Depth: cur.Depth}
			g.reject(parent, err)
			return nil, nil, err
		}
		next = Scope{
			ID:    cur.ID + g.opts.separator + g.segment(),
			Depth: cur.Depth + 1,
		}
	} else {
		next = Scope{ID: g.rootID(), Depth: 0}
	}

	_, span := xmetrics.Start(parent, g.opts.observer, xmetrics.SpanOptions{
		Component: componentName,
		Operation: g.opts.name,
		Attrs:     []xmetrics.Attr{xmetrics.String(attrKind, kind)},
	})
	inner, tok := attach(parent, next, func(cause error) {
		span.End(xmetrics.Result{Err: cause})
		g.opts.logger.DebugContext(parent, "runtime id scope exited",
			slog.String("guard", g.opts.name),
			slog.String("scope_id", next.ID),
			slog.Int("scope_depth", next.Depth),
			slog.Bool("failed", cause != nil),
		)
	})

	g.opts.logger.DebugContext(parent, "runtime id scope entered",
		slog.String("guard", g.opts.name),
		slog.String("scope_id", next.ID),
		slog.Int("scope_depth", next.Depth),
	)
	return inner, tok, nil
}

// reject 记录一次被深度上限拒绝的进入尝试。
func (g *Guard) reject(parent context.Context, err *DepthError) {
	_, span := xmetrics.Start(parent, g.opts.observer, xmetrics.SpanOptions{
		Component: componentName,
		Operation: g.opts.name,
		Attrs:     []xmetrics.Attr{xmetrics.String(attrKind, kindNested)},
	})
	span.End(xmetrics.Result{Err: err, Attrs: []xmetrics.Attr{xmetrics.Bool(attrRejected, true)}})

	g.opts.logger.WarnContext(parent, "runtime id max depth reached",
		slog.String("guard", g.opts.name),
		slog.String("scope_id", err.ID),
		slog.Int("scope_depth", err.Depth),
		slog.Int("max_depth", err.MaxDepth),
	)
}

// rootID 生成根标识：[进程号 分隔符][前缀 分隔符]片段。
func (g *Guard) rootID() string {
	var sb strings.Builder
	if g.opts.pidPrefix {
		sb.WriteString(xproc.ProcessIDString())
		sb.WriteString(g.opts.separator)
	}
	if g.opts.prefixSet {
		sb.WriteString(g.opts.prefix)
		sb.WriteString(g.opts.separator)
	}
	sb.WriteString(g.segment())
	return sb.String()
}

func (g *Guard) segment() string {
	return g.opts.generator.Segment(g.opts.length, g.opts.alphabet)
}
