package ui

import (
	"context"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// Default window size used when the terminal size cannot be detected.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Run starts the Bubble Tea program. The start path is loaded before the
// first frame and startup keys are replayed against the loaded document.
// Width/height of 0 auto-detect the terminal size.
func Run(ctx context.Context, opts Options, progOpts ...tea.ProgramOption) error {
	m := New(ctx, opts)

	if opts.Width > 0 || opts.Height > 0 {
		w, h := resolveSize(opts.Width, opts.Height)
		m.width, m.height = w, h
		m.layout()
		progOpts = append(progOpts, tea.WithWindowSize(w, h))
	}

	m.Preload()
	ApplyStartupKeys(m, opts.StartKeys)
	if m.quitting {
		m.closeWatcher()
		return nil
	}

	all := append([]tea.ProgramOption{tea.WithContext(ctx)}, progOpts...)
	prog := tea.NewProgram(m, all...)
	_, err := prog.Run()
	m.closeWatcher()
	return err
}

// resolveSize fills a zero dimension from the terminal, then from the
// defaults.
func resolveSize(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}
