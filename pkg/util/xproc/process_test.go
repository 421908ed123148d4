package xproc

import (
	"errors"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessID(t *testing.T) {
	pid := ProcessID()
	assert.Greater(t, pid, 0)
	assert.Equal(t, os.Getpid(), pid)
}

func TestProcessIDString(t *testing.T) {
	assert.Equal(t, strconv.Itoa(os.Getpid()), ProcessIDString())

	orig := osGetpid
	defer func() { osGetpid = orig }()
	osGetpid = func() int { return 4242 }
	assert.Equal(t, "4242", ProcessIDString())
	assert.Equal(t, 4242, ProcessID())
}

func TestProcessName(t *testing.T) {
	ResetProcessName()
	name := ProcessName()
	assert.NotEmpty(t, name)
	assert.NotContains(t, name, string(os.PathSeparator))
}

// 以下测试修改全局 os.Args 与 osExecutable，不可使用 t.Parallel()。
func TestResolveProcessName_Fallback(t *testing.T) {
	origExec := osExecutable
	origArgs := os.Args
	defer func() {
		osExecutable = origExec
		os.Args = origArgs
	}()
	osExecutable = func() (string, error) { return "", errors.New("not supported") }

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"nil args", nil, ""},
		{"empty arg0", []string{""}, ""},
		{"absolute", []string{"/usr/bin/myapp"}, "myapp"},
		{"relative", []string{"./relative/path/app"}, "app"},
		{"root", []string{"/"}, ""},
		{"dot", []string{"."}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.want, resolveProcessName())
		})
	}
}

func TestResolveProcessName_Executable(t *testing.T) {
	origExec := osExecutable
	defer func() { osExecutable = origExec }()

	osExecutable = func() (string, error) { return "/opt/bin/xridctl", nil }
	assert.Equal(t, "xridctl", resolveProcessName())
}
