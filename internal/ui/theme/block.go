package theme

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Fit clips or pads s to exactly width columns and height lines. Escape
// sequences are preserved and not counted.
func Fit(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		lines[i] = PadRight(line, width)
	}
	return strings.Join(lines, "\n")
}

// PadRight truncates line to width columns, then pads it with spaces.
func PadRight(line string, width int) string {
	if ansi.StringWidth(line) > width {
		line = ansi.Truncate(line, width, "")
	}
	if pad := width - ansi.StringWidth(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return line
}
