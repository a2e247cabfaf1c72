// Package settings holds build metadata and the options of one run, and
// carries them through a context.
package settings

import "context"

// CliBinaryName names the binary in help text, logs and the snapshot header.
const CliBinaryName = "jsonexplorer"

// VersionInfo describes the running build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// VersionInformation is overridden with -ldflags at release time.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// InputSettings names the document opened at startup.
type InputSettings struct {
	Path  string // empty starts the viewer with nothing loaded
	Watch bool   // reload Path when it changes on disk
}

// Run is the resolved flag and config state of one invocation.
type Run struct {
	MinLogLevel int8
	LogFile     string
	NoColor     bool
	Input       InputSettings
}

// NewRun returns the state before flags and config apply: info level
// logging to no file, with colors.
func NewRun() *Run {
	return &Run{}
}

type runKey struct{}

// IntoContext returns ctx carrying r.
func IntoContext(ctx context.Context, r *Run) context.Context {
	return context.WithValue(ctx, runKey{}, r)
}

// FromContext returns the Run stored by IntoContext.
func FromContext(ctx context.Context) (*Run, bool) {
	r, ok := ctx.Value(runKey{}).(*Run)
	return r, ok
}
