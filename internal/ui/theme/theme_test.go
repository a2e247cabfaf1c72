package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jsonexplorer/internal/config"
)

func TestFromConfig(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	th := FromConfig(cfg.Themes["dark"], false)
	assert.NotNil(t, th.Accent)
	assert.NotNil(t, th.SelectedBG)
	assert.Equal(t, "rounded", th.BorderStyle)
	assert.Equal(t, "dracula", th.Syntax)
	assert.False(t, th.NoColor)
}

func TestFromConfig_NoColorDropsColors(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	th := FromConfig(cfg.Themes["warm"], true)
	assert.Nil(t, th.Accent)
	assert.Nil(t, th.Key)
	assert.True(t, th.NoColor)
	assert.Equal(t, "normal", th.BorderStyle)
	assert.Equal(t, "monokai", th.Syntax)
}

func TestPlain(t *testing.T) {
	th := Plain()
	assert.Equal(t, DefaultSyntax, th.Syntax)
	assert.Equal(t, "x", Fg(th.Key).Render("x"))
}

func TestFit(t *testing.T) {
	out := Fit("short\na much longer line that overflows\n3\n4", 10, 3)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, 10, ansi.StringWidth(l))
	}
	assert.Equal(t, "short     ", lines[0])
	assert.Equal(t, "a much lon", lines[1])

	padded := strings.Split(Fit("one", 4, 3), "\n")
	assert.Equal(t, []string{"one ", "    ", "    "}, padded)

	assert.Empty(t, Fit("x", 0, 3))
}

func TestFit_KeepsEscapes(t *testing.T) {
	styled := "\x1b[31mred text\x1b[0m"
	out := Fit(styled, 3, 1)
	assert.Equal(t, 3, ansi.StringWidth(out))
	assert.Equal(t, "red", ansi.Strip(out))
}
