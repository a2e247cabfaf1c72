// Package logger configures the process-wide zap logger behind a logr
// interface and carries loggers through contexts.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oakwood-commons/jsonexplorer/pkg/settings"
)

// Field names shared by every log line.
const (
	RootCommandKey = "root_command"
	SubCommandKey  = "sub_command"
	CommitKey      = "commit"
	VersionKey     = "version"
	BuildTimeKey   = "build_time"
	GoVersionKey   = "go_version"
	TimeStampKey   = "timestamp"
	MessageKey     = "message"
)

// Field names used when loading documents.
const (
	PathKey     = "path"
	BytesKey    = "bytes"
	NodesKey    = "nodes"
	DurationKey = "duration_ms"
	ErrorKind   = "error_kind"
)

type ctxKey struct{}

var (
	initOnce sync.Once
	base     *zap.Logger
	global   *logr.Logger
	discard  = logr.Discard()
)

// Get configures the global logger on first use, writing JSON lines at
// level and above to sink (stderr when nil). Later calls ignore their
// arguments and return the same logger.
func Get(level int8, sink io.Writer) *logr.Logger {
	initOnce.Do(func() {
		if sink == nil {
			sink = os.Stderr
		}
		base = zap.New(newCore(level, sink),
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
			zap.WithFatalHook(zapcore.WriteThenPanic),
		)
		l := zapr.NewLogger(base)
		global = &l
	})
	if global == nil {
		return &discard
	}
	return global
}

func newCore(level int8, sink io.Writer) zapcore.Core {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = TimeStampKey
	enc.MessageKey = MessageKey
	enc.EncodeTime = zapcore.ISO8601TimeEncoder

	goVersion := "unknown"
	if bi, ok := debug.ReadBuildInfo(); ok {
		goVersion = bi.GoVersion
	}
	v := settings.VersionInformation
	return zapcore.NewCore(
		zapcore.NewJSONEncoder(enc),
		zapcore.Lock(zapcore.AddSync(sink)),
		zap.NewAtomicLevelAt(zapcore.Level(level)),
	).With([]zapcore.Field{
		zap.String(CommitKey, v.Commit),
		zap.String(VersionKey, v.BuildVersion),
		zap.String(BuildTimeKey, v.BuildTime),
		zap.String(GoVersionKey, goVersion),
	})
}

// OpenSink opens path for appending, creating missing directories. A blank
// path discards output.
func OpenSink(path string) (io.Writer, func() error, error) {
	if strings.TrimSpace(path) == "" {
		return io.Discard, func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}

// WithLogger stores l in ctx. ctx comes back unchanged when it already
// holds l.
func WithLogger(ctx context.Context, l *logr.Logger) context.Context {
	if cur, ok := ctx.Value(ctxKey{}).(*logr.Logger); ok && cur == l {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger in ctx, falling back to the global logger
// and then to one that discards.
func FromContext(ctx context.Context) *logr.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*logr.Logger); ok {
		return l
	}
	if global != nil {
		return global
	}
	return &discard
}

// WithValues returns a child of l with extra key/value pairs.
func WithValues(l *logr.Logger, kv ...any) *logr.Logger {
	child := l.WithValues(kv...)
	return &child
}

// Sync flushes the global logger before exit.
func Sync() {
	if base == nil {
		return
	}
	if err := base.Sync(); err != nil && !benignSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync logger: %v\n", err)
	}
}

// benignSyncError reports errors from syncing terminals and pipes. Windows
// consoles report an invalid handle that only matches by text.
func benignSyncError(err error) bool {
	for _, errno := range []error{syscall.ENOTTY, syscall.EINVAL, syscall.EIO, syscall.EBADF} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}
