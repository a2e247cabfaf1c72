package ui

import "github.com/atotto/clipboard"

// copyToClipboardFn is the active clipboard implementation. Tests replace
// it via StubPlatformActions to prevent side effects.
var copyToClipboardFn = clipboard.WriteAll

// CopyToClipboard copies text to the system clipboard.
func CopyToClipboard(text string) error { return copyToClipboardFn(text) }

// StubPlatformActions replaces the clipboard with fn and returns a restore
// function. A nil fn discards the text.
func StubPlatformActions(fn func(string) error) (restore func()) {
	orig := copyToClipboardFn
	if fn == nil {
		fn = func(string) error { return nil }
	}
	copyToClipboardFn = fn
	return func() { copyToClipboardFn = orig }
}
