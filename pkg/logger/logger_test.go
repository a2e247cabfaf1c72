package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withoutGlobal runs fn as if Get had never been called.
func withoutGlobal(t *testing.T, fn func()) {
	t.Helper()
	Get(0, io.Discard)
	saved := global
	global = nil
	t.Cleanup(func() { global = saved })
	fn()
}

func TestGetConfiguresOnce(t *testing.T) {
	first := Get(0, io.Discard)
	require.NotNil(t, first)
	assert.Same(t, first, Get(-1, os.Stderr))
}

func TestGetWithoutGlobalDiscards(t *testing.T) {
	withoutGlobal(t, func() {
		assert.Same(t, &discard, Get(0, io.Discard))
		assert.Same(t, &discard, FromContext(context.Background()))
	})
}

func TestContextLogger(t *testing.T) {
	l := Get(0, io.Discard)
	assert.Same(t, l, FromContext(context.Background()))

	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
	assert.Equal(t, ctx, WithLogger(ctx, l))

	other := logr.Discard()
	assert.Same(t, &other, FromContext(WithLogger(ctx, &other)))
}

func TestWithValuesCopies(t *testing.T) {
	l := Get(0, io.Discard)
	child := WithValues(l, PathKey, "doc.json")
	require.NotNil(t, child)
	assert.NotSame(t, l, child)
}

func TestSyncWithoutLogger(t *testing.T) {
	saved := base
	base = nil
	t.Cleanup(func() { base = saved })
	assert.NotPanics(t, Sync)
}

func TestBenignSyncError(t *testing.T) {
	assert.True(t, benignSyncError(&os.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.EINVAL}))
	assert.True(t, benignSyncError(syscall.ENOTTY))
	assert.True(t, benignSyncError(&os.PathError{Op: "sync", Err: os.ErrInvalid, Path: "The handle is invalid"}))
	assert.False(t, benignSyncError(os.ErrPermission))
}

func TestOpenSink(t *testing.T) {
	w, closeFn, err := OpenSink("  ")
	require.NoError(t, err)
	assert.Equal(t, io.Discard, w)
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "logs", "jsonexplorer.log")
	for range 2 {
		w, closeFn, err = OpenSink(path)
		require.NoError(t, err)
		_, err = io.WriteString(w, "{}\n")
		require.NoError(t, err)
		require.NoError(t, closeFn())
	}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n{}\n", string(data), "appends rather than truncates")
}
