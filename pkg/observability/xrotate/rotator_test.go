package xrotate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRotator(t *testing.T, opts ...Option) (Rotator, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "dir", "app.log")
	r, err := NewLumberjack(path, opts...)
	require.NoError(t, err)
	return r, path
}

func TestNewLumberjack_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"zero size", []Option{WithMaxSize(0)}, ErrInvalidMaxSize},
		{"huge size", []Option{WithMaxSize(maxSizeMB + 1)}, ErrInvalidMaxSize},
		{"negative backups", []Option{WithMaxBackups(-1)}, ErrInvalidMaxBackups},
		{"too many backups", []Option{WithMaxBackups(maxBackups + 1)}, ErrInvalidMaxBackups},
		{"negative age", []Option{WithMaxAge(-1)}, ErrInvalidMaxAge},
		{"no cleanup", []Option{WithMaxBackups(0), WithMaxAge(0)}, ErrNoCleanupPolicy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLumberjack(filepath.Join(t.TempDir(), "a.log"), tt.opts...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := NewLumberjack("")
	assert.ErrorIs(t, err, ErrEmptyFilename)
}

func TestNewLumberjack_InvalidDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := NewLumberjack(filepath.Join(blocker, "sub", "a.log"))
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLumberjack_WriteCreatesFile(t *testing.T) {
	r, path := newTestRotator(t, WithCompress(false), WithLocalTime(true), nil)

	n, err := r.Write([]byte("hello\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	require.NoError(t, r.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestLumberjack_Rotate(t *testing.T) {
	r, path := newTestRotator(t, WithCompress(false))

	_, err := r.Write([]byte("before\n"))
	require.NoError(t, err)
	require.NoError(t, r.Rotate())
	_, err = r.Write([]byte("after\n"))
	require.NoError(t, err)
	require.NoError(t, r.Close())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "after\n", string(data))
}

func TestLumberjack_Closed(t *testing.T) {
	r, _ := newTestRotator(t)

	require.NoError(t, r.Close())
	assert.ErrorIs(t, r.Close(), ErrClosed)
	_, err := r.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, r.Rotate(), ErrClosed)
}

func TestLumberjack_ConcurrentWrite(t *testing.T) {
	r, path := newTestRotator(t, WithCompress(false))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if _, err := r.Write([]byte("line\n")); err != nil && !errors.Is(err, ErrClosed) {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()
	require.NoError(t, r.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 400, strings.Count(string(data), "line\n"))
}
