package xproc

import "sync"

// ResetProcessName 丢弃缓存的进程名，下次 ProcessName 重新解析。
func ResetProcessName() {
	processName = sync.OnceValue(resolveProcessName)
}
