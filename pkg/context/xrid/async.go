package xrid

import (
	"context"
	"runtime/debug"
)

// Future 是异步工作的结果句柄。
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go 在新 goroutine 中执行 fn，作用域覆盖 fn 的整个生命周期。
//
// 作用域在新 goroutine 内建立，只在 fn 返回（或 panic）后释放；
// 深度超限、fn 的错误与 fn 的 panic（包装为 *PanicError）都通过 Future 返回。
//
// 新 goroutine 继承调用时 ctx 中的标识，与调用方此后的状态互不影响。
func Go[T any](ctx context.Context, g *Guard, fn Func[T]) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = &PanicError{Value: r, Stack: debug.Stack()}
			}
		}()
		f.value, f.err = Do(ctx, g, fn)
	}()
	return f
}

// Done 返回在工作结束后关闭的 channel。
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait 等待工作结束并返回其结果。
//
// ctx 被取消时立即返回 ctx.Err()；工作本身不受影响，其作用域仍会在结束时释放。
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
