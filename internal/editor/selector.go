// Package editor decides which of the five value editors is on screen.
//
// The editors are mutually exclusive. Visibility is a single state
// variable changed only through Switcher.Activate, so there is never a
// moment with zero or two editors showing.
package editor

import (
	"errors"
	"fmt"

	"github.com/oakwood-commons/jsonexplorer/internal/document"
)

// Slot identifies one editor view.
type Slot int

const (
	SlotBool Slot = iota
	SlotNumber
	SlotString
	SlotArray
	SlotObject
)

// SlotCount is the number of editor views.
const SlotCount = 5

// ErrNoEditor is returned for value kinds that have no dedicated editor
// (null, undefined and anything unrecognized).
var ErrNoEditor = errors.New("no editor for value type")

func (s Slot) String() string {
	switch s {
	case SlotBool:
		return "bool"
	case SlotNumber:
		return "number"
	case SlotString:
		return "string"
	case SlotArray:
		return "array"
	case SlotObject:
		return "object"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Valid reports whether s names one of the five editors.
func (s Slot) Valid() bool { return s >= 0 && s < SlotCount }

// Clamp pulls s into the valid slot range.
func Clamp(s Slot) Slot {
	if s < 0 {
		return 0
	}
	if s >= SlotCount {
		return SlotCount - 1
	}
	return s
}

// Select maps a value kind to its editor. Bool..Object map to slots
// 0..4 (kind - 1); every other kind is rejected with ErrNoEditor.
func Select(kind document.Kind) (Slot, error) {
	switch kind {
	case document.KindBool, document.KindNumber, document.KindString,
		document.KindArray, document.KindObject:
		return Slot(kind) - 1, nil
	case document.KindNull, document.KindUndefined, document.KindInvalid:
		return 0, fmt.Errorf("%w: %s", ErrNoEditor, kind)
	default:
		return 0, fmt.Errorf("%w: %s", ErrNoEditor, kind)
	}
}

// Switcher holds the currently visible editor.
type Switcher struct {
	active Slot
}

// NewSwitcher starts with the bool editor showing.
func NewSwitcher() *Switcher {
	return &Switcher{active: SlotBool}
}

// Active returns the visible slot.
func (s *Switcher) Active() Slot { return s.active }

// Visible reports whether slot is the one on screen.
func (s *Switcher) Visible(slot Slot) bool { return slot == s.active }

// VisibleSlots lists every slot currently on screen. It always has length one.
func (s *Switcher) VisibleSlots() []Slot {
	out := make([]Slot, 0, 1)
	for slot := Slot(0); slot < SlotCount; slot++ {
		if s.Visible(slot) {
			out = append(out, slot)
		}
	}
	return out
}

// Activate hides the current editor and shows slot, clamping out-of-range
// values. It reports whether the visible editor changed; activating the
// already visible slot is a no-op.
func (s *Switcher) Activate(slot Slot) bool {
	slot = Clamp(slot)
	if slot == s.active {
		return false
	}
	s.active = slot
	return true
}

// ActivateFor selects and activates the editor for kind. On ErrNoEditor the
// visible slot is left unchanged.
func (s *Switcher) ActivateFor(kind document.Kind) (Slot, error) {
	slot, err := Select(kind)
	if err != nil {
		return s.active, err
	}
	s.Activate(slot)
	return slot, nil
}
