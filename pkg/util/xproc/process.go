package xproc

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// 测试替换点
var (
	osExecutable = os.Executable
	osGetpid     = os.Getpid
)

// processName 首次调用时解析进程名并缓存，避免重复 readlink
var processName = sync.OnceValue(resolveProcessName)

// ProcessID 返回当前进程 ID。
func ProcessID() int {
	return osGetpid()
}

// ProcessIDString 返回十进制的当前进程 ID，作为根标识的进程前缀。
//
// 每次调用都重新读取：fork 出的子进程 PID 不同。
func ProcessIDString() string {
	return strconv.Itoa(osGetpid())
}

// ProcessName 返回当前可执行文件的基础名称（不含目录）。
//
// 优先取 os.Executable，失败时回退到 os.Args[0]；都不可用时返回空字符串。
func ProcessName() string {
	return processName()
}

func resolveProcessName() string {
	if exe, err := osExecutable(); err == nil {
		if name := baseName(exe); name != "" {
			return name
		}
	}
	if len(os.Args) == 0 {
		return ""
	}
	return baseName(os.Args[0])
}

// baseName 返回 path 的最后一段；空路径及 "."、".."、根目录这类
// filepath.Base 的特殊结果都视为无名称。
func baseName(path string) string {
	if path == "" {
		return ""
	}
	switch name := filepath.Base(path); name {
	case ".", "..", string(filepath.Separator):
		return ""
	default:
		return name
	}
}
