package xrid

import "context"

// Func 是带返回值的工作函数。
type Func[T any] func(ctx context.Context) (T, error)

// Do 在 g 的新作用域中执行 fn，并原样返回 fn 的结果。
// 作用域建立失败时返回 T 的零值与对应错误。
func Do[T any](ctx context.Context, g *Guard, fn Func[T]) (T, error) {
	var out T
	if fn == nil {
		return out, ErrNilFunc
	}
	err := g.Run(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}

// Wrap 用给定配置创建 Guard，返回在新作用域中执行 fn 的函数。
//
// 配置在这里一次性校验，非法时返回 *ConfigError，之后每次调用都不会再因配置失败。
func Wrap[T any](fn Func[T], opts ...Option) (Func[T], error) {
	g, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, ErrNilFunc
	}
	return func(ctx context.Context) (T, error) {
		return Do(ctx, g, fn)
	}, nil
}

// WrapArg 与 Wrap 相同，但透传一个参数。
//
//	lookup, err := xrid.WrapArg(func(ctx context.Context, key string) (string, error) {
//	    return store.Get(ctx, key)
//	}, xrid.WithPrefix("store"))
func WrapArg[A, T any](fn func(context.Context, A) (T, error), opts ...Option) (func(context.Context, A) (T, error), error) {
	g, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, ErrNilFunc
	}
	return func(ctx context.Context, arg A) (T, error) {
		return Do(ctx, g, func(ctx context.Context) (T, error) {
			return fn(ctx, arg)
		})
	}, nil
}
