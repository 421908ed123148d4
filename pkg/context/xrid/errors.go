package xrid

import (
	"errors"
	"fmt"
)

// =============================================================================
// 哨兵错误
// =============================================================================

var (
	// ErrNilContext 表示传入的 context 为 nil。
	ErrNilContext = errors.New("xrid: nil context")

	// ErrNilGuard 表示传入的 *Guard 为 nil。
	ErrNilGuard = errors.New("xrid: nil guard")

	// ErrNilFunc 表示被包装的工作函数为 nil。
	ErrNilFunc = errors.New("xrid: nil func")

	// ErrInvalidConfig 配置非法，具体参数见 *ConfigError。
	ErrInvalidConfig = errors.New("xrid: invalid configuration")

	// ErrDepthExceeded 嵌套深度达到上限，具体信息见 *DepthError。
	ErrDepthExceeded = errors.New("xrid: max depth reached")

	// ErrNotSet 当前 context 中没有运行时标识。
	ErrNotSet = errors.New("xrid: runtime id is required but it was not set")
)

// errAbnormalExit 标记工作函数以 panic 或 runtime.Goexit 退出，仅用于观测结果。
var errAbnormalExit = errors.New("xrid: work exited abnormally")

// =============================================================================
// 结构化错误
// =============================================================================

// ConfigError 描述某个配置参数违反约束。
//
// 使用 errors.Is(err, ErrInvalidConfig) 判断类别，
// 使用 errors.As 获取参数名：
//
//	var cfgErr *xrid.ConfigError
//	if errors.As(err, &cfgErr) {
//	    fmt.Println(cfgErr.Param)
//	}
type ConfigError struct {
	// Param 参数名，与配置键保持一致（如 "length"、"max_depth"）。
	Param string
	// Reason 违反的约束。
	Reason string
}

// Error 实现 error 接口。
func (e *ConfigError) Error() string {
	return fmt.Sprintf("xrid: invalid configuration: %s %s", e.Param, e.Reason)
}

// Is 支持 errors.Is(err, ErrInvalidConfig)。
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// DepthError 表示进入嵌套作用域会超过最大深度。
// 返回此错误时没有安装任何新状态，工作函数也未被调用。
type DepthError struct {
	// MaxDepth 配置的最大深度。
	MaxDepth int
	// ID 拒绝时的当前标识。
	ID string
	// Depth 拒绝时的当前深度。
	Depth int
}

// Error 实现 error 接口。
func (e *DepthError) Error() string {
	return fmt.Sprintf("xrid: max depth of %d is reached, current id %s, depth %d", e.MaxDepth, e.ID, e.Depth)
}

// Is 支持 errors.Is(err, ErrDepthExceeded)。
func (e *DepthError) Is(target error) bool {
	return target == ErrDepthExceeded
}

// PanicError 包装异步工作中的 panic，通过 Future 返回给等待方。
type PanicError struct {
	// Value recover() 得到的原始值。
	Value any
	// Stack panic 发生时的 goroutine 堆栈。
	Stack []byte
}

// Error 实现 error 接口。
func (e *PanicError) Error() string {
	return fmt.Sprintf("xrid: async work panicked: %v", e.Value)
}

// Unwrap 当 panic 值本身是 error 时返回它。
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
