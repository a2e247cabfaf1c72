package editors

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jsonexplorer/internal/tree"
	"github.com/oakwood-commons/jsonexplorer/internal/ui/theme"
)

// BoolView is a checkbox for a boolean value.
type BoolView struct {
	value   bool
	focused bool
}

// SetValue pre-populates the checkbox.
func (v *BoolView) SetValue(b bool) { v.value = b }

// Value returns the current state.
func (v *BoolView) Value() bool { return v.value }

// Toggle flips the value.
func (v *BoolView) Toggle() { v.value = !v.value }

func (v *BoolView) update(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "space", "enter", "t", "x":
		v.Toggle()
	}
}

func (v *BoolView) view(th theme.Theme) string {
	box := "[ ]"
	label := "False"
	if v.value {
		box = "[x]"
		label = "True"
	}
	if v.focused {
		box = th.Selected().Render(box)
	}
	return box + " " + theme.Fg(th.Value).Render(label)
}

// newInput builds the single-line field shared by the number and text views.
func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.SetWidth(40)
	return ti
}

// NumberView is a numeric field. Input that does not parse as a number is
// flagged but kept.
type NumberView struct {
	input textinput.Model
}

func newNumberView() *NumberView {
	return &NumberView{input: newInput("number")}
}

// SetValue pre-populates the field with f in display notation.
func (v *NumberView) SetValue(f float64) {
	v.input.SetValue(tree.FormatNumber(f))
	v.input.CursorEnd()
}

// Text returns the raw field contents.
func (v *NumberView) Text() string { return v.input.Value() }

// Float parses the field.
func (v *NumberView) Float() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(v.input.Value()), 64)
}

// Valid reports whether the field holds a number.
func (v *NumberView) Valid() bool {
	_, err := v.Float()
	return err == nil
}

func (v *NumberView) view(th theme.Theme) string {
	out := v.input.View()
	if !v.Valid() {
		out += "\n" + theme.Fg(th.StatusError).Render("not a number")
	}
	return out
}

// TextView is a string field.
type TextView struct {
	input textinput.Model
}

func newTextView() *TextView {
	return &TextView{input: newInput("text")}
}

// SetValue pre-populates the field.
func (v *TextView) SetValue(s string) {
	v.input.SetValue(s)
	v.input.CursorEnd()
}

// Text returns the field contents.
func (v *TextView) Text() string { return v.input.Value() }

func (v *TextView) view(theme.Theme) string {
	return v.input.View()
}
