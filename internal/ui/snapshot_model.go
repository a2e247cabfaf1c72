package ui

import "context"

// RenderSnapshot renders one frame without starting a program: load, replay
// startup keys, draw. File watching is disabled.
func RenderSnapshot(ctx context.Context, opts Options) string {
	opts.Watch = false
	m := New(ctx, opts)
	m.width, m.height = resolveSize(opts.Width, opts.Height)
	m.layout()
	m.Preload()
	ApplyStartupKeys(m, opts.StartKeys)
	return m.Render()
}
