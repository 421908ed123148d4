package xrid

import (
	"context"
	"sync"
)

// contextKey 包私有的 context key 类型，字符串值便于调试时识别。
type contextKey string

// keyScope 标识与深度存放在同一个值里，二者总是一起压栈、一起恢复。
const keyScope = contextKey("xrid:scope")

// Scope 当前作用域的快照。
type Scope struct {
	// ID 完整标识，例如 "12345:api:q3k9x0ab:7fz2m1cd"。
	ID string
	// Depth 根作用域为 0，每嵌套一层加 1。
	Depth int
}

// IsRoot 报告该作用域是否为根作用域。
func (s Scope) IsRoot() bool {
	return s.Depth == 0
}

// =============================================================================
// 读取
// =============================================================================

// Current 返回 ctx 中的当前作用域；没有处于任何作用域时返回 (Scope{}, false)。
// ctx 为 nil 时视为不在作用域内。
func Current(ctx context.Context) (Scope, bool) {
	if ctx == nil {
		return Scope{}, false
	}
	s, ok := ctx.Value(keyScope).(Scope)
	if !ok || s.ID == "" {
		return Scope{}, false
	}
	return s, true
}

// Lookup 返回当前标识；不在作用域内时返回 ("", false)。
func Lookup(ctx context.Context) (string, bool) {
	s, ok := Current(ctx)
	return s.ID, ok
}

// ID 返回当前标识，不存在时返回空字符串。
func ID(ctx context.Context) string {
	s, _ := Current(ctx)
	return s.ID
}

// Depth 返回当前深度，不在作用域内时返回 0。
func Depth(ctx context.Context) int {
	s, _ := Current(ctx)
	return s.Depth
}

// Require 返回当前标识，不存在时返回 ErrNotSet。
// 如果 ctx 为 nil，返回 ErrNilContext。
func Require(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", ErrNilContext
	}
	s, ok := Current(ctx)
	if !ok {
		return "", ErrNotSet
	}
	return s.ID, nil
}

// =============================================================================
// 安装与恢复
// =============================================================================

// token 记录一次 attach 之前的状态。
//
// context 值不可变，调用方持有的父 context 从未被修改，
// 因此"恢复"等价于继续使用 parent；token 负责的是把退出通知精确地执行一次。
type token struct {
	parent   context.Context
	scope    Scope
	once     sync.Once
	onDetach func(error)
}

// attach 在 parent 之上安装新作用域，返回子 context 与恢复令牌。
// 只有 Guard 调用它，业务代码无法直接改写当前标识。
func attach(parent context.Context, s Scope, onDetach func(error)) (context.Context, *token) {
	return context.WithValue(parent, keyScope, s), &token{
		parent:   parent,
		scope:    s,
		onDetach: onDetach,
	}
}

// detach 恢复到 attach 之前的 context，并触发一次退出通知。
// 重复调用是空操作，返回值不变。
func (t *token) detach(cause error) context.Context {
	t.once.Do(func() {
		if t.onDetach != nil {
			t.onDetach(cause)
		}
	})
	return t.parent
}
